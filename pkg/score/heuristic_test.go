package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/oddscope/pkg/domain"
)

func TestHeuristic(t *testing.T) {
	t.Run("florida man scores high", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "Florida man arrested after riding alligator to grocery store",
			SourceType: domain.SourceReddit,
			SourceName: "Reddit - r/FloridaMan",
			Signals: domain.Signals{
				Upvotes:     5000,
				UpvoteRatio: 0.95,
				Comments:    300,
				Awards:      4,
			},
		}
		s := Heuristic(raw)
		assert.Greater(t, s, Default, "absurd community content should beat the midpoint")
		assert.LessOrEqual(t, s, Max)
	})

	t.Run("plain item lands near source base", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "Quarterly results announced by regional utility provider",
			SourceType: domain.SourceRSS,
			SourceName: "Some Business Wire",
		}
		assert.Equal(t, 55, Heuristic(raw))
	})

	t.Run("deterministic", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "Bizarre vintage broadcast discovered on VHS tape",
			SourceType: domain.SourceArchive,
			SourceName: "Internet Archive",
			Signals:    domain.Signals{Views: 42, Year: 1953},
		}
		first := Heuristic(raw)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Heuristic(raw))
		}
	})

	t.Run("never exceeds bounds", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "bizarre weird absurd ridiculous hilarious wtf cursed liminal unsettling disturbing eerie haunting strange",
			SourceType: domain.SourceReddit,
			SourceName: "clickhole",
			Signals: domain.Signals{
				UpvoteRatio: 0.99,
				Comments:    10000,
				Awards:      50,
				Views:       10,
				Year:        1910,
				DurationSec: 2,
			},
		}
		s := Heuristic(raw)
		assert.Equal(t, Max, s)
	})

	t.Run("heavy downvoting drags score down", func(t *testing.T) {
		base := domain.RawItem{
			Title:      "A reasonably long title about nothing in particular",
			SourceType: domain.SourceTwitter,
			SourceName: "@someone",
		}
		downvoted := base
		downvoted.Signals.UpvoteRatio = 0.4
		assert.Less(t, Heuristic(downvoted), Heuristic(base))
	})

	t.Run("obscure low-view video gets a boost", func(t *testing.T) {
		base := domain.RawItem{
			Title:      "Unlabeled footage from an unknown event",
			SourceType: domain.SourceYouTube,
			SourceName: "some channel",
		}
		obscure := base
		obscure.Signals.Views = 37
		popular := base
		popular.Signals.Views = 5_000_000
		assert.Greater(t, Heuristic(obscure), Heuristic(popular))
	})

	t.Run("unknown source type uses default", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "Completely ordinary title with no keywords",
			SourceType: domain.SourceType("telegraph"),
		}
		assert.Equal(t, Default, Heuristic(raw))
	})
}

func TestTags(t *testing.T) {
	t.Run("lexicon matches from text", func(t *testing.T) {
		raw := domain.RawItem{
			Title:      "Bizarre glitch in vintage Florida broadcast",
			SourceType: domain.SourceArchive,
		}
		tags := Tags(raw)
		assert.Contains(t, tags, "bizarre")
		assert.Contains(t, tags, "glitch")
		assert.Contains(t, tags, "vintage")
		assert.Contains(t, tags, "florida-man")
	})

	t.Run("adapter tags come first", func(t *testing.T) {
		raw := domain.RawItem{
			Title: "weird thing happened",
			Tags:  []string{"NotTheOnion"},
		}
		tags := Tags(raw)
		assert.Equal(t, "nottheonion", tags[0])
	})

	t.Run("capped and deduplicated", func(t *testing.T) {
		raw := domain.RawItem{
			Title: "bizarre weird strange wtf absurd funny cursed glitch experimental ambient vintage eerie noise",
			Tags:  []string{"bizarre", "Bizarre", "BIZARRE"},
		}
		tags := Tags(raw)
		assert.LessOrEqual(t, len(tags), MaxTags)
		seen := map[string]bool{}
		for _, tag := range tags {
			assert.False(t, seen[tag], "duplicate tag %s", tag)
			seen[tag] = true
		}
	})
}

func TestMergeTags(t *testing.T) {
	t.Run("keeps order and drops duplicates", func(t *testing.T) {
		merged := MergeTags([]string{"bizarre", "viral"}, []string{"Viral", "humor"})
		assert.Equal(t, []string{"bizarre", "viral", "humor"}, merged)
	})

	t.Run("enforces cap", func(t *testing.T) {
		existing := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
		merged := MergeTags(existing, []string{"b1", "b2", "b3"})
		assert.Len(t, merged, MaxTags)
		assert.Equal(t, "b1", merged[MaxTags-1])
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, MergeTags(nil, nil))
		assert.Equal(t, []string{"x"}, MergeTags(nil, []string{"x", ""}))
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Min, Clamp(-5))
	assert.Equal(t, Min, Clamp(0))
	assert.Equal(t, 1, Clamp(1))
	assert.Equal(t, 50, Clamp(50))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, Max, Clamp(250))
}
