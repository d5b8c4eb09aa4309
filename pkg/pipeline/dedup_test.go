package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/oddscope/pkg/domain"
)

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "HTTP://X.COM/A", "http://x.com/a"},
		{"strips trailing slash", "http://x.com/a/", "http://x.com/a"},
		{"strips fragment", "http://x.com/a#section", "http://x.com/a"},
		{"keeps query", "http://x.com/a?utm_source=feed", "http://x.com/a?utm_source=feed"},
		{"bare host", "http://x.com/", "http://x.com"},
		{"trims whitespace", "  http://x.com/a  ", "http://x.com/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalURL(tt.in))
		})
	}
}

func TestCanonicalURL_Idempotent(t *testing.T) {
	urls := []string{
		"HTTP://X.COM/A/",
		"https://example.com/path?a=1#frag",
		"https://www.reddit.com/r/nottheonion/comments/abc/",
	}
	for _, u := range urls {
		once := CanonicalURL(u)
		assert.Equal(t, once, CanonicalURL(once))
	}
}

func TestDedupe(t *testing.T) {
	t.Run("keeps first occurrence", func(t *testing.T) {
		items := []domain.RawItem{
			{Title: "first", URL: "http://x.com/a"},
			{Title: "second", URL: "HTTP://X.COM/A/"},
			{Title: "third", URL: "http://x.com/b"},
		}
		result := Dedupe(items)
		assert.Len(t, result, 2)
		assert.Equal(t, "first", result[0].Title)
		assert.Equal(t, "third", result[1].Title)
	})

	t.Run("preserves order", func(t *testing.T) {
		items := []domain.RawItem{
			{Title: "c", URL: "http://x.com/c"},
			{Title: "a", URL: "http://x.com/a"},
			{Title: "b", URL: "http://x.com/b"},
		}
		result := Dedupe(items)
		assert.Equal(t, []string{"c", "a", "b"}, []string{result[0].Title, result[1].Title, result[2].Title})
	})

	t.Run("drops empty urls", func(t *testing.T) {
		items := []domain.RawItem{
			{Title: "no url", URL: ""},
			{Title: "good", URL: "http://x.com/a"},
		}
		result := Dedupe(items)
		assert.Len(t, result, 1)
		assert.Equal(t, "good", result[0].Title)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Dedupe(nil))
	})
}
