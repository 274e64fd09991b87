// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/redact"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

// handleAnalyze runs one analysis and streams it as server-sent events.
// Rejections before the stream opens are plain JSON; once the stream is
// open, failures travel as the error event.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	req, err := s.buildRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	logger := slog.With("request_id", uuid.NewString(), "repo", req.Ref)
	logger.Info("analysis request accepted", "enrich", req.Enrich != nil)

	sink, err := stream.NewSSESink(w)
	if err != nil {
		logger.Error("event streaming unsupported", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "event streaming unsupported"})
		return
	}

	start := time.Now()
	st := stream.New(&redactingSink{next: sink, token: req.Token})
	if _, err := s.analyzer.Run(r.Context(), req, st); err != nil {
		logger.Warn("analysis failed", "error", redact.String(err.Error(), req.Token), "duration", time.Since(start))
		return
	}
	logger.Info("analysis served", "duration", time.Since(start))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildRequest assembles a pipeline request from query parameters, filling
// gaps from the server defaults.
func (s *Server) buildRequest(q url.Values) (pipeline.Request, error) {
	repo := q.Get("repo")
	if repo == "" {
		return pipeline.Request{}, errors.New("repo parameter is required")
	}

	req := pipeline.Request{
		Ref:         repo,
		Token:       firstNonEmpty(q.Get("token"), s.defaults.Token),
		Branch:      q.Get("branch"),
		HostOptions: s.defaults.HostOptions,
	}

	provider := firstNonEmpty(q.Get("provider"), s.defaults.Provider)
	if provider == "" {
		return req, nil
	}
	cfg := llm.Config{
		Provider: provider,
		APIKey:   q.Get("api_key"),
		Model:    q.Get("model"),
	}
	// The default key and model belong to the default provider only.
	if provider == s.defaults.Provider {
		cfg.APIKey = firstNonEmpty(cfg.APIKey, s.defaults.APIKey)
		cfg.Model = firstNonEmpty(cfg.Model, s.defaults.Model)
	}
	req.Enrich = &cfg
	return req, nil
}

// redactingSink scrubs request-scoped secrets from error payloads before
// they reach the wire. Progress and complete events carry no secrets: the
// report never embeds credentials.
type redactingSink struct {
	next  stream.Sink
	token string
}

var _ stream.Sink = (*redactingSink)(nil)

func (rs *redactingSink) Progress(e stream.Event)     { rs.next.Progress(e) }
func (rs *redactingSink) Complete(rep *report.Report) { rs.next.Complete(rep) }

func (rs *redactingSink) Error(msg string) {
	rs.next.Error(redact.String(msg, rs.token))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
