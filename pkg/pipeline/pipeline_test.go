package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/oddscope/pkg/config"
	"github.com/umputun/oddscope/pkg/domain"
	"github.com/umputun/oddscope/pkg/pipeline/mocks"
	"github.com/umputun/oddscope/pkg/scraper"
)

// fakeAdapter returns canned raw items
type fakeAdapter struct {
	name  domain.SourceType
	items []domain.RawItem
	err   error
}

func (f *fakeAdapter) Name() domain.SourceType { return f.name }

func (f *fakeAdapter) Fetch(_ context.Context, _ string, _ int) ([]domain.RawItem, error) {
	return f.items, f.err
}

func rawItems(source domain.SourceType, n int) []domain.RawItem {
	items := make([]domain.RawItem, n)
	for i := range items {
		items[i] = domain.RawItem{
			Title:      fmt.Sprintf("title number %d with enough length", i),
			URL:        fmt.Sprintf("https://example.com/%s/%d", source, i),
			SourceType: source,
			SourceName: string(source),
		}
	}
	return items
}

func okStore() *mocks.StoreMock {
	return &mocks.StoreMock{
		CreateItemFunc: func(_ context.Context, item *domain.Item) (bool, error) {
			return true, nil
		},
		CreateRelationshipFunc: func(_ context.Context, _ *domain.Relationship) error {
			return nil
		},
		GetItemsFunc: func(_ context.Context, _ domain.ItemFilter, _, _ int) ([]domain.Item, error) {
			return nil, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	cfg := config.Default().GetPipelineConfig()

	t.Run("all stored", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 4)})

		store := okStore()
		p := New(registry, nil, store, cfg)

		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Total)
		assert.Equal(t, 4, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, result.Total, result.Succeeded+result.Failed)
		assert.Len(t, store.CreateItemCalls(), 4)
	})

	t.Run("partial failures counted", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 10)})

		store := okStore()
		calls := 0
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			calls++
			if calls%4 == 0 { // inserts 4 and 8 fail
				return false, fmt.Errorf("disk full")
			}
			if calls == 5 { // insert 5 is a duplicate
				return false, nil
			}
			return true, nil
		}
		p := New(registry, nil, store, cfg)

		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, result.Total)
		assert.Equal(t, 7, result.Succeeded)
		assert.Equal(t, 3, result.Failed)
		assert.Equal(t, result.Total, result.Succeeded+result.Failed)
		assert.Len(t, result.Errors, 3)
	})

	t.Run("duplicates within batch removed before counting", func(t *testing.T) {
		items := rawItems(domain.SourceReddit, 3)
		items = append(items, items[0]) // exact duplicate URL
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: items})

		store := okStore()
		p := New(registry, nil, store, cfg)

		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 3, result.Succeeded)
	})

	t.Run("no content", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: nil})

		p := New(registry, nil, okStore(), cfg)
		result, err := p.Run(context.Background(), "", 10)
		require.ErrorIs(t, err, ErrNoContent)
		assert.Nil(t, result)
	})

	t.Run("no store", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 1)})

		p := New(registry, nil, nil, cfg)
		result, err := p.Run(context.Background(), "", 10)
		require.ErrorIs(t, err, ErrStoreNotConfigured)
		assert.Nil(t, result)
	})

	t.Run("unknown source", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 1)})

		p := New(registry, nil, okStore(), cfg)
		_, err := p.Run(context.Background(), domain.SourceYouTube, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown source")
	})

	t.Run("single source selection", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})
		registry.Register(&fakeAdapter{name: domain.SourceArchive, items: rawItems(domain.SourceArchive, 3)})

		p := New(registry, nil, okStore(), cfg)
		result, err := p.Run(context.Background(), domain.SourceArchive, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
	})

	t.Run("failing adapter does not block others", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, err: fmt.Errorf("rate limited")})
		registry.Register(&fakeAdapter{name: domain.SourceArchive, items: rawItems(domain.SourceArchive, 2)})

		p := New(registry, nil, okStore(), cfg)
		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("relationships rebuilt after persist", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})

		store := okStore()
		store.GetItemsFunc = func(_ context.Context, _ domain.ItemFilter, _, _ int) ([]domain.Item, error) {
			return []domain.Item{
				{ID: 1, Title: "matching story with shared words", SourceName: "same", Tags: []string{"bizarre"}},
				{ID: 2, Title: "matching story with shared words", SourceName: "same", Tags: []string{"bizarre"}},
			}, nil
		}
		p := New(registry, nil, store, cfg)

		_, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.NotEmpty(t, store.CreateRelationshipCalls())
	})

	t.Run("items persisted this run get related even when the listing misses them", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})

		store := okStore()
		var nextID int64
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			nextID++
			item.ID = nextID
			return true, nil
		}
		// recent listing knows nothing about the items just stored
		store.GetItemsFunc = func(_ context.Context, _ domain.ItemFilter, _, _ int) ([]domain.Item, error) {
			return nil, nil
		}
		p := New(registry, nil, store, cfg)

		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Succeeded)

		calls := store.CreateRelationshipCalls()
		require.NotEmpty(t, calls, "same-source near-duplicates from this run must be related")
		assert.Equal(t, int64(1), calls[0].Rel.SourceID)
		assert.Equal(t, int64(2), calls[0].Rel.TargetID)
	})

	t.Run("this-run items merge with recent window without doubling", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 1)})

		store := okStore()
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			item.ID = 7
			return true, nil
		}
		// recent listing already includes the just-stored item
		store.GetItemsFunc = func(_ context.Context, _ domain.ItemFilter, _, _ int) ([]domain.Item, error) {
			return []domain.Item{
				{ID: 7, Title: "title number 0 with enough length", SourceName: "reddit"},
			}, nil
		}
		p := New(registry, nil, store, cfg)

		_, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Empty(t, store.CreateRelationshipCalls(), "an item must not be related to its own listed copy")
	})

	t.Run("relationship store failures land in the error list", func(t *testing.T) {
		registry := scraper.NewRegistry()
		registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})

		store := okStore()
		var nextID int64
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			nextID++
			item.ID = nextID
			return true, nil
		}
		store.CreateRelationshipFunc = func(_ context.Context, _ *domain.Relationship) error {
			return fmt.Errorf("disk full")
		}
		p := New(registry, nil, store, cfg)

		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Succeeded, "item counts unaffected by relationship failures")
		assert.Equal(t, 0, result.Failed)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0], "disk full")
	})
}

func TestPipeline_RunWithEnhancer(t *testing.T) {
	cfg := config.Default().GetPipelineConfig()
	registry := scraper.NewRegistry()
	registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})

	t.Run("ai blended into score", func(t *testing.T) {
		enhancer := &mocks.EnhancerMock{
			AvailableFunc: func() bool { return true },
			ScoreContentFunc: func(_ context.Context, _, _, _ string, _ []string) (int, bool) {
				return 100, true
			},
			SuggestTagsFunc: func(_ context.Context, _, _, _ string) []string {
				return []string{"ai-tag"}
			},
			AnalyzeFunc: func(_ context.Context, _, _ string, _ []string) string {
				return "an amused analysis"
			},
		}

		var stored []domain.Item
		store := okStore()
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			stored = append(stored, *item)
			return true, nil
		}

		p := New(registry, enhancer, store, cfg)
		result, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Succeeded)

		require.Len(t, stored, 2)
		for _, item := range stored {
			// heuristic base for reddit is 60, ai says 100, mean is 80
			assert.Equal(t, 80, item.Score)
			assert.True(t, item.Metadata.AIEnhanced)
			assert.Equal(t, 100, item.Metadata.AIScore)
			assert.NotNil(t, item.Metadata.EnhancedAt)
			assert.Contains(t, item.Tags, "ai-tag")
			assert.Equal(t, "an amused analysis", item.Summary)
		}
	})

	t.Run("unavailable enhancer leaves heuristic", func(t *testing.T) {
		enhancer := &mocks.EnhancerMock{
			AvailableFunc: func() bool { return false },
		}

		var stored []domain.Item
		store := okStore()
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			stored = append(stored, *item)
			return true, nil
		}

		p := New(registry, enhancer, store, cfg)
		_, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)

		require.Len(t, stored, 2)
		for _, item := range stored {
			assert.Equal(t, 60, item.Score)
			assert.False(t, item.Metadata.AIEnhanced)
		}
		assert.Empty(t, enhancer.ScoreContentCalls())
	})

	t.Run("failed ai score keeps heuristic but still tags", func(t *testing.T) {
		enhancer := &mocks.EnhancerMock{
			AvailableFunc: func() bool { return true },
			ScoreContentFunc: func(_ context.Context, _, _, _ string, _ []string) (int, bool) {
				return 0, false
			},
			SuggestTagsFunc: func(_ context.Context, _, _, _ string) []string { return nil },
			AnalyzeFunc:     func(_ context.Context, _, _ string, _ []string) string { return "" },
		}

		var stored []domain.Item
		store := okStore()
		store.CreateItemFunc = func(_ context.Context, item *domain.Item) (bool, error) {
			stored = append(stored, *item)
			return true, nil
		}

		p := New(registry, enhancer, store, cfg)
		_, err := p.Run(context.Background(), "", 10)
		require.NoError(t, err)

		require.Len(t, stored, 2)
		for _, item := range stored {
			assert.Equal(t, 60, item.Score)
			assert.Equal(t, 0, item.Metadata.AIScore)
			assert.True(t, item.Metadata.AIEnhanced)
		}
	})
}

func TestPipeline_Status(t *testing.T) {
	registry := scraper.NewRegistry()
	registry.Register(&fakeAdapter{name: domain.SourceReddit, items: rawItems(domain.SourceReddit, 2)})

	p := New(registry, nil, okStore(), config.Default().GetPipelineConfig())
	assert.Equal(t, StageIdle, p.Status().Stage)
	assert.False(t, p.Status().Running)

	result, err := p.Run(context.Background(), "", 10)
	require.NoError(t, err)

	status := p.Status()
	assert.Equal(t, StageIdle, status.Stage)
	assert.False(t, status.Running)
	assert.False(t, status.LastRun.IsZero())
	require.NotNil(t, status.LastResult)
	assert.Equal(t, result.Total, status.LastResult.Total)
	assert.Equal(t, []string{"reddit"}, status.Sources)
	assert.False(t, status.AIAvailable, "no enhancer wired")
	assert.True(t, status.StoreReady)
}
