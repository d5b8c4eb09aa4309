package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/oddscope/pkg/domain"
	"github.com/umputun/oddscope/pkg/pipeline"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	db      Database
	scraper Scraper
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	GetItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	CountItems(ctx context.Context, filter domain.ItemFilter) (int, error)
	UpdateVotes(ctx context.Context, id int64, up bool) error
	GetRelationships(ctx context.Context, minStrength float64, limit int) ([]domain.Relationship, error)
}

// Scraper interface for on-demand pipeline runs
type Scraper interface {
	Run(ctx context.Context, source domain.SourceType, maxPerSource int) (*domain.BatchResult, error)
	Status() pipeline.Status
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, scraper Scraper, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		db:      db,
		scraper: scraper,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("oddscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /status", s.statusHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /scrape", s.scrapeHandler)
		r.HandleFunc("GET /scrape", s.scrapeStatusHandler)
		r.HandleFunc("GET /items", s.itemsHandler)
		r.HandleFunc("GET /items/{id}", s.itemHandler)
		r.HandleFunc("POST /items/{id}/vote", s.voteHandler)
		r.HandleFunc("GET /graph", s.graphHandler)
	})
}
