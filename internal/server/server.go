// Package server exposes the conversion pipeline as an HTTP service.
//
// The service accepts design descriptions, runs the full parse →
// generate → resolve → assemble → render pipeline, and stores the
// result in a catalog for later retrieval.
//
// # Endpoints
//
//	POST   /api/v1/convert       convert a YAML design, store and return the result
//	GET    /api/v1/designs       list stored conversions
//	GET    /api/v1/designs/{id}  fetch one stored conversion
//	DELETE /api/v1/designs/{id}  remove a stored conversion
//	GET    /api/v1/components    list supported component generators
//	GET    /api/v1/technologies  list registered technologies
//	GET    /healthz              liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rfgds/rfgds/pkg/catalog"
	"github.com/rfgds/rfgds/pkg/pipeline"
)

// Timeouts for the HTTP server.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 120 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server hosts the conversion service.
type Server struct {
	runner *pipeline.Runner
	store  catalog.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the catalog endpoints'
// persistence by falling back to an in-memory store.
func New(runner *pipeline.Runner, store catalog.Store, logger *log.Logger) *Server {
	if store == nil {
		store = catalog.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: store, logger: logger}
}

// Router builds the chi route tree with middleware applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/designs", s.handleListDesigns)
		r.Get("/designs/{id}", s.handleGetDesign)
		r.Delete("/designs/{id}", s.handleDeleteDesign)
		r.Get("/components", s.handleListComponents)
		r.Get("/technologies", s.handleListTechnologies)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
