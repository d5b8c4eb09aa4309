package scraper

import (
	"context"
	"net/http"
	"time"

	"github.com/umputun/oddscope/pkg/domain"
)

// Adapter fetches candidate items from one external content source.
// Implementations normalize source payloads into domain.RawItem and must
// return an empty slice, not an error, for empty results. A returned error
// means the whole fetch failed; the caller decides whether the run continues.
type Adapter interface {
	Name() domain.SourceType
	Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error)
}

// Registry holds the enabled source adapters in registration order
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter. Registering the same source twice replaces the
// earlier adapter.
func (r *Registry) Register(a Adapter) {
	for i, existing := range r.adapters {
		if existing.Name() == a.Name() {
			r.adapters[i] = a
			return
		}
	}
	r.adapters = append(r.adapters, a)
}

// Get returns the adapter for a source type
func (r *Registry) Get(name domain.SourceType) (Adapter, bool) {
	for _, a := range r.adapters {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// All returns adapters in registration order
func (r *Registry) All() []Adapter {
	return r.adapters
}

const userAgent = "Oddscope/1.0 (+https://github.com/umputun/oddscope)"

// newHTTPClient builds the shared client used by adapters
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// truncate shortens free text to max runes, appending an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
