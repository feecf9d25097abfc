package api

import (
	"context"
	"net/http"
	"time"

	"github.com/timalander/cuebox-takehome/internal/config"
	"github.com/timalander/cuebox-takehome/internal/reconcile"
)

// Server wraps the HTTP server and its router.
type Server struct {
	router http.Handler
	server *http.Server
}

// NewServer creates the API server around a reconciliation engine.
func NewServer(engine *reconcile.Engine, cfg config.UploadConfig) *Server {
	h := NewHandlers(engine, cfg.MaxBytes())
	return &Server{router: SetupRoutes(h)}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the router, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
