package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/lattice/internal/config"
	"github.com/MeKo-Tech/lattice/internal/pipeline"
)

// Server exposes page processing over HTTP: POST a page image plus
// recognizer results, receive the fused markup.
type Server struct {
	cfg        config.ServerConfig
	pipeline   *pipeline.Pipeline
	httpServer *http.Server
}

// NewServer creates a server around an initialized pipeline.
func NewServer(cfg config.ServerConfig, pl *pipeline.Pipeline) *Server {
	s := &Server{cfg: cfg, pipeline: pl}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.withObservability(s.handleHealth))
	mux.HandleFunc("/v1/page", s.withObservability(s.handlePage))
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, used by tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
