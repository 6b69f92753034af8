// Package webserver exposes a read-only HTTP API over a directory of
// saved decision files.
package webserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/decisionlab/compass/internal/webapi"
)

// Config holds the HTTP server configuration.
type Config struct {
	Addr         string
	DecisionsDir string
	Logger       *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.DecisionsDir == "" {
		cfg.DecisionsDir = "."
	}

	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, webapi.NewFileStore(cfg.DecisionsDir))

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr)

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
