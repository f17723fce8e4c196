package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/showcase"
	"github.com/thep200/github-showcase/pkg/log"
)

// Server serves the showcase JSON API.
type Server struct {
	Logger   log.Logger
	Config   *cfg.Config
	Showcase *showcase.Showcase
	Archive  CardArchive
	server   *http.Server
	port     int
}

// NewServer builds a server. archive may be nil when no database is set up.
func NewServer(logger log.Logger, config *cfg.Config, sc *showcase.Showcase, archive CardArchive, port int) (*Server, error) {
	if port <= 0 {
		port = config.Server.Port
	}
	return &Server{
		Logger:   logger,
		Config:   config,
		Showcase: sc,
		Archive:  archive,
		port:     port,
	}, nil
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	handler := NewHandler(s.Logger, s.Config, s.Showcase, s.Archive)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(context.Background(), "Starting showcase server on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.Logger.Info(ctx, "Shutting down showcase server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
