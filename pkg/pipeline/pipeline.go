package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/oddscope/pkg/config"
	"github.com/umputun/oddscope/pkg/domain"
	"github.com/umputun/oddscope/pkg/score"
	"github.com/umputun/oddscope/pkg/scraper"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/enhancer.go -pkg mocks -skip-ensure -fmt goimports . Enhancer

// sentinel errors callers can categorize on
var (
	ErrNoContent          = errors.New("no content scraped")
	ErrStoreNotConfigured = errors.New("database not configured")
)

// Store persists items and relationships
type Store interface {
	CreateItem(ctx context.Context, item *domain.Item) (created bool, err error)
	CreateRelationship(ctx context.Context, rel *domain.Relationship) error
	GetItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error)
}

// Enhancer adds AI analysis on top of heuristic scoring, all methods
// degrade gracefully when the backing model is unavailable
type Enhancer interface {
	Available() bool
	Analyze(ctx context.Context, title, source string, tags []string) string
	SuggestTags(ctx context.Context, title, source, summary string) []string
	ScoreContent(ctx context.Context, title, source, summary string, tags []string) (int, bool)
}

// Stage names for the status surface
const (
	StageIdle      = "idle"
	StageFetching  = "fetching"
	StageScoring   = "scoring"
	StageEnhancing = "enhancing"
	StagePersist   = "persisting"
	StageRelating  = "relating"
)

// Status is a snapshot of the last or current run plus what the pipeline
// has to work with
type Status struct {
	Stage       string              `json:"stage"`
	Running     bool                `json:"running"`
	Sources     []string            `json:"sources"`
	AIAvailable bool                `json:"ai_available"`
	StoreReady  bool                `json:"store_ready"`
	LastRun     time.Time           `json:"last_run,omitempty"`
	LastResult  *domain.BatchResult `json:"last_result,omitempty"`
}

// Pipeline fetches raw items from the registered adapters, scores and
// enhances them, deduplicates, persists, and rebuilds relationships.
type Pipeline struct {
	registry *scraper.Registry
	enhancer Enhancer
	store    Store
	builder  *Builder
	cfg      config.PipelineConfig
	limiter  *rate.Limiter

	mu     sync.Mutex
	status Status
}

// New creates a pipeline, store may be nil when persistence is disabled
func New(registry *scraper.Registry, enhancer Enhancer, store Store, cfg config.PipelineConfig) *Pipeline {
	return &Pipeline{
		registry: registry,
		enhancer: enhancer,
		store:    store,
		builder:  NewBuilder(cfg),
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Every(cfg.RateLimit), 1),
		status:   Status{Stage: StageIdle},
	}
}

// Status returns a copy of the current run status
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := p.status
	status.Sources = make([]string, 0, len(p.registry.All()))
	for _, a := range p.registry.All() {
		status.Sources = append(status.Sources, string(a.Name()))
	}
	status.AIAvailable = p.enhancer != nil && p.enhancer.Available()
	status.StoreReady = p.store != nil
	return status
}

func (p *Pipeline) setStage(stage string, running bool) {
	p.mu.Lock()
	p.status.Stage = stage
	p.status.Running = running
	p.mu.Unlock()
}

// Run executes a full scrape cycle. Empty source means all registered
// adapters. Individual item failures are absorbed into the result
// counters, only whole-run problems come back as errors.
func (p *Pipeline) Run(ctx context.Context, source domain.SourceType, maxPerSource int) (*domain.BatchResult, error) {
	if p.store == nil {
		return nil, ErrStoreNotConfigured
	}
	if maxPerSource <= 0 {
		maxPerSource = p.cfg.MaxPerSource
	}

	p.setStage(StageFetching, true)
	defer p.setStage(StageIdle, false)

	raw, err := p.fetch(ctx, source, maxPerSource)
	if err != nil {
		return nil, err
	}
	raw = Dedupe(raw)
	if len(raw) == 0 {
		return nil, ErrNoContent
	}
	lgr.Printf("[INFO] fetched %d unique items", len(raw))

	p.setStage(StageScoring, true)
	result := &domain.BatchResult{Total: len(raw)}
	items := p.process(ctx, raw)

	p.setStage(StagePersist, true)
	stored := p.persist(ctx, items, result)

	p.setStage(StageRelating, true)
	if err := p.rebuildRelationships(ctx, stored, result); err != nil {
		lgr.Printf("[WARN] relationship rebuild failed: %v", err)
	}

	p.mu.Lock()
	p.status.LastRun = time.Now()
	p.status.LastResult = result
	p.mu.Unlock()

	lgr.Printf("[INFO] run complete: %d total, %d stored, %d failed", result.Total, len(stored), result.Failed)
	return result, nil
}

// fetch fans out over the adapters with a bounded worker pool. Per-adapter
// failures are logged and skipped, only an empty registry or a cancelled
// context fails the run.
func (p *Pipeline) fetch(ctx context.Context, source domain.SourceType, maxPerSource int) ([]domain.RawItem, error) {
	adapters := p.registry.All()
	if source != "" {
		adapter, ok := p.registry.Get(source)
		if !ok {
			return nil, fmt.Errorf("unknown source %q", source)
		}
		adapters = []scraper.Adapter{adapter}
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no adapters registered")
	}

	var mu sync.Mutex
	var all []domain.RawItem

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxWorkers)
	for _, adapter := range adapters {
		g.Go(func() error {
			items, err := adapter.Fetch(gctx, "", maxPerSource)
			if err != nil {
				lgr.Printf("[WARN] fetch failed for %s: %v", adapter.Name(), err)
				return nil
			}
			lgr.Printf("[DEBUG] %s returned %d items", adapter.Name(), len(items))
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

// process turns raw items into scored items, blending in AI enhancement
// when available. Items move through in small batches with a pause
// between batches to stay polite to the model endpoint.
func (p *Pipeline) process(ctx context.Context, raw []domain.RawItem) []domain.Item {
	useAI := p.enhancer != nil && p.enhancer.Available()
	if useAI {
		p.setStage(StageEnhancing, true)
	}

	items := make([]domain.Item, 0, len(raw))
	for start := 0; start < len(raw); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(raw) {
			end = len(raw)
		}
		for _, r := range raw[start:end] {
			items = append(items, p.enrich(ctx, r, useAI))
		}
		if useAI && end < len(raw) {
			if err := p.limiter.Wait(ctx); err != nil {
				lgr.Printf("[WARN] enhancement interrupted: %v", err)
				useAI = false
			}
		}
	}
	return items
}

// enrich scores one raw item and optionally blends in the AI verdict
func (p *Pipeline) enrich(ctx context.Context, r domain.RawItem, useAI bool) domain.Item {
	heuristic := score.Heuristic(r)
	tags := score.Tags(r)
	meta := r.Metadata

	final := heuristic
	summary := r.Summary
	if useAI {
		if aiScore, ok := p.enhancer.ScoreContent(ctx, r.Title, r.SourceName, r.Summary, tags); ok {
			ai := float64(aiScore)
			final = int(score.Combine(float64(heuristic), &ai, score.PrecisionInteger))
			meta.AIScore = aiScore
		}
		tags = score.MergeTags(tags, p.enhancer.SuggestTags(ctx, r.Title, r.SourceName, r.Summary))
		if analysis := p.enhancer.Analyze(ctx, r.Title, r.SourceName, tags); analysis != "" {
			summary = analysis
		}
		now := time.Now()
		meta.AIEnhanced = true
		meta.EnhancedAt = &now
	}

	return domain.Item{
		Title:        r.Title,
		CanonicalURL: CanonicalURL(r.URL),
		SourceType:   r.SourceType,
		SourceName:   r.SourceName,
		Summary:      summary,
		Tags:         tags,
		Score:        score.Clamp(final),
		Published:    r.Published,
		Metadata:     meta,
	}
}

// persist stores items one by one, counting successes and failures.
// A duplicate already in the database counts as failed.
func (p *Pipeline) persist(ctx context.Context, items []domain.Item, result *domain.BatchResult) []domain.Item {
	stored := make([]domain.Item, 0, len(items))
	for i := range items {
		created, err := p.store.CreateItem(ctx, &items[i])
		switch {
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", items[i].CanonicalURL, err))
		case !created:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate", items[i].CanonicalURL))
		default:
			result.Succeeded++
			stored = append(stored, items[i])
		}
	}
	return stored
}

// rebuildRelationships recomputes pairwise links over the items persisted
// in this run plus a bounded window of recent stored items, so fresh items
// always get related while older ones can still link to them. Persistence
// failures go into the result error list without touching the item counts.
func (p *Pipeline) rebuildRelationships(ctx context.Context, stored []domain.Item, result *domain.BatchResult) error {
	recent, err := p.store.GetItems(ctx, domain.ItemFilter{}, p.cfg.MaxRelateItems, 0)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	seen := make(map[int64]struct{}, len(stored))
	items := make([]domain.Item, 0, len(stored)+len(recent))
	for _, item := range stored {
		if item.ID == 0 { // not assigned an id by the store, can't be related
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	for _, item := range recent {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		items = append(items, item)
	}

	rels := p.builder.Build(items)
	for i := range rels {
		if err := p.store.CreateRelationship(ctx, &rels[i]); err != nil {
			lgr.Printf("[WARN] failed to store relationship %d-%d: %v", rels[i].SourceID, rels[i].TargetID, err)
			result.Errors = append(result.Errors, fmt.Sprintf("relationship %d-%d: %v", rels[i].SourceID, rels[i].TargetID, err))
		}
	}
	lgr.Printf("[DEBUG] rebuilt %d relationships from %d items", len(rels), len(items))
	return nil
}
