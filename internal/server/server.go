// Package server implements the strandplot HTTP drawing API.
//
// The server exposes a single drawing endpoint that accepts dot-bracket
// notation and returns the rendered artifact, plus a health check:
//
//	POST /api/v1/draw
//	GET  /healthz
//
// Requests are tagged with a UUID request ID and logged via
// charmbracelet/log. Results are cached through the pipeline runner
// using an "api:" scoped keyer so CLI and API entries never collide.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/strandlab/strandplot/pkg/cache"
	"github.com/strandlab/strandplot/pkg/pipeline"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Cache backs the pipeline runner. Nil disables caching.
	Cache cache.Cache
	// Logger receives request and pipeline logs. Nil discards them.
	Logger *log.Logger
	// MaxBodyBytes caps request body size. Zero means the default 1 MiB.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 1 << 20

// Server wraps the router and the pipeline runner.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	router chi.Router
	http   *http.Server
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api")
	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(cfg.Cache, keyer, cfg.Logger),
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/draw", s.handleDraw)
	})

	s.router = r
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.http.ListenAndServe()
	}()

	s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.runner.Close()
		return ctx.Err()
	}
}
