package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/oddscope/pkg/domain"
	"github.com/umputun/oddscope/pkg/graph"
	"github.com/umputun/oddscope/pkg/pipeline"
)

const (
	defaultItemsLimit = 50
	maxItemsLimit     = 200
	graphItemsLimit   = 100
	graphEdgesLimit   = 200
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// scrapeRequest is the optional body for a scrape trigger
type scrapeRequest struct {
	Source string `json:"source"`
	Limit  int    `json:"limit"`
}

// scrapeHandler triggers a pipeline run for one source or all of them
func (s *Server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
			return
		}
	}
	if src := r.URL.Query().Get("source"); src != "" {
		req.Source = src
	}

	source := domain.SourceType(req.Source)
	if req.Source != "" && !source.Valid() {
		renderError(w, r, fmt.Errorf("unknown source %q", req.Source), http.StatusBadRequest)
		return
	}

	result, err := s.scraper.Run(r.Context(), source, req.Limit)
	switch {
	case errors.Is(err, pipeline.ErrNoContent):
		renderError(w, r, err, http.StatusNotFound)
		return
	case errors.Is(err, pipeline.ErrStoreNotConfigured):
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	case err != nil:
		lgr.Printf("[ERROR] scrape run failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, result)
}

// scrapeStatusHandler reports the current or last pipeline run
func (s *Server) scrapeStatusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.scraper.Status())
}

// itemsHandler lists stored items with optional filters
func (s *Server) itemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := domain.ItemFilter{
		SourceType: domain.SourceType(q.Get("source")),
		Tag:        q.Get("tag"),
	}
	if filter.SourceType != "" && !filter.SourceType.Valid() {
		renderError(w, r, fmt.Errorf("unknown source %q", filter.SourceType), http.StatusBadRequest)
		return
	}
	if minScore := q.Get("min_score"); minScore != "" {
		n, err := strconv.Atoi(minScore)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid min_score"), http.StatusBadRequest)
			return
		}
		filter.MinScore = n
	}

	limit := defaultItemsLimit
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = min(n, maxItemsLimit)
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 {
			renderError(w, r, fmt.Errorf("invalid offset"), http.StatusBadRequest)
			return
		}
		offset = n
	}

	items, err := s.db.GetItems(ctx, filter, limit, offset)
	if err != nil {
		lgr.Printf("[ERROR] failed to get items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	total, err := s.db.CountItems(ctx, filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to count items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// itemHandler returns a single item by ID
func (s *Server) itemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid item ID"), http.StatusBadRequest)
		return
	}

	item, err := s.db.GetItem(r.Context(), id)
	if err != nil {
		renderError(w, r, fmt.Errorf("item not found"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// voteHandler records an up or down vote on an item
func (s *Server) voteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid item ID"), http.StatusBadRequest)
		return
	}

	direction := r.URL.Query().Get("direction")
	if direction != "up" && direction != "down" {
		renderError(w, r, fmt.Errorf("direction must be up or down"), http.StatusBadRequest)
		return
	}

	if err := s.db.UpdateVotes(ctx, id, direction == "up"); err != nil {
		lgr.Printf("[ERROR] failed to record vote: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	item, err := s.db.GetItem(ctx, id)
	if err != nil {
		renderError(w, r, fmt.Errorf("item not found"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// graphHandler assembles the relationship graph over recent items
func (s *Server) graphHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minStrength := 0.0
	if ms := r.URL.Query().Get("min_strength"); ms != "" {
		n, err := strconv.ParseFloat(ms, 64)
		if err != nil || n < 0 || n > 1 {
			renderError(w, r, fmt.Errorf("invalid min_strength"), http.StatusBadRequest)
			return
		}
		minStrength = n
	}

	items, err := s.db.GetItems(ctx, domain.ItemFilter{}, graphItemsLimit, 0)
	if err != nil {
		lgr.Printf("[ERROR] failed to get items for graph: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	rels, err := s.db.GetRelationships(ctx, minStrength, graphEdgesLimit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get relationships: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, graph.Assemble(items, rels))
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
