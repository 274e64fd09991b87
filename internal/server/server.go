// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package server exposes the analysis pipeline over HTTP. One endpoint
// starts a run and streams its progress as server-sent events; a health
// endpoint reports liveness.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/repolens/repolens/internal/githost"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

// Analyzer runs one analysis and reports through the stream.
// *pipeline.Runner is the production implementation.
type Analyzer interface {
	Run(ctx context.Context, req pipeline.Request, s *stream.Stream) (*report.Report, error)
}

var _ Analyzer = (*pipeline.Runner)(nil)

// Defaults supply request fields the query string leaves out. The serve
// command resolves them from flags, config files, and the environment.
type Defaults struct {
	// Token authenticates host API calls for requests that carry none.
	Token string

	// Provider turns enrichment on for requests that do not pick their own.
	// Empty leaves enrichment off unless the request asks for it.
	Provider string

	// APIKey and Model belong to Provider. They apply only when the resolved
	// provider matches; a request that picks a different provider brings its
	// own key.
	APIKey string
	Model  string

	// HostOptions carry the configured fetch caps into every run.
	HostOptions []githost.Option
}

// Server hosts the analyze and health endpoints.
type Server struct {
	analyzer   Analyzer
	defaults   Defaults
	httpServer *http.Server
}

// New builds a Server listening on addr.
func New(addr string, analyzer Analyzer, defaults Defaults) *Server {
	s := &Server{analyzer: analyzer, defaults: defaults}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: an analyze response streams until its run ends.
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return withCORS(mux)
}

// Handler returns the root handler, middleware included. Tests drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start listens and serves until Shutdown. A close during graceful shutdown
// is not an error.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and waits for in-flight requests until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
