// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package enrich runs the optional generative stage of an analysis: it asks
// a configured llm.Provider for narrative and structured additions to an
// otherwise complete report. Every failure here degrades to an absent field;
// enrichment can never fail a run.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/report"
)

const (
	// defaultAttempts bounds provider calls per task, first try included.
	defaultAttempts = 4

	// defaultBackoff is the base delay; it doubles after each failed attempt.
	defaultBackoff = 500 * time.Millisecond

	// textMaxTokens caps narrative responses.
	textMaxTokens = 1024

	// jsonMaxTokens caps structured responses, which enumerate items and
	// need more room.
	jsonMaxTokens = 4096
)

// ErrUnavailable reports that no provider is configured. Callers treat it
// as "skip enrichment", not as a failure.
var ErrUnavailable = errors.New("enrich: no provider configured")

// Orchestrator drives the enrichment tasks against one provider.
type Orchestrator struct {
	provider llm.Provider
	name     string
	attempts int
	backoff  time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAttempts overrides the per-task attempt budget.
func WithAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// WithBackoff overrides the base retry delay.
func WithBackoff(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.backoff = d
		}
	}
}

// New creates an orchestrator around provider. providerID is recorded in
// the report so readers know which service produced the text. A nil
// provider is valid and makes Enrich return ErrUnavailable.
func New(provider llm.Provider, providerID string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		name:     providerID,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// task is one enrichment unit. Tasks run in a fixed order so reports are
// reproducible for identical provider output.
type task struct {
	name string
	run  func(ctx context.Context, rep *report.Report, enr *report.Enrichment) error
}

// Enrich produces the generative sections for rep. Task failures are logged
// and leave their field empty. The returned error is only ErrUnavailable
// (no provider) or a context error (caller cancelled); provider failures
// never surface.
func (o *Orchestrator) Enrich(ctx context.Context, rep *report.Report) (*report.Enrichment, error) {
	if o == nil || o.provider == nil {
		return nil, ErrUnavailable
	}

	enr := &report.Enrichment{Provider: o.name}

	tasks := []task{
		{"summary", o.summarize},
		{"architecture", o.describeArchitecture},
		{"security_narrative", o.narrateSecurity},
		{"roadmap", o.buildRoadmap},
		{"function_docs", o.documentFunctions},
		{"complexity_estimates", o.estimateComplexity},
	}

	for _, t := range tasks {
		err := t.run(ctx, rep, enr)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("enrichment task failed, leaving field empty", "task", t.name, "error", err)
		if abortsRemaining(err) {
			slog.Warn("provider rejected configuration, skipping remaining enrichment tasks", "task", t.name)
			break
		}
	}

	return enr, nil
}

// abortsRemaining reports whether err would fail every subsequent call the
// same way. A malformed request is specific to one prompt, so it does not
// qualify; credential and model problems do.
func abortsRemaining(err error) bool {
	var perr *llm.Error
	if !errors.As(err, &perr) {
		return false
	}
	switch perr.Class {
	case llm.ClassInvalidCredential, llm.ClassPermissionDenied, llm.ClassModelNotFound:
		return true
	default:
		return false
	}
}

func (o *Orchestrator) summarize(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: narrativeSystemPrompt,
		Prompt:       buildSummaryPrompt(rep),
		MaxTokens:    textMaxTokens,
	})
	if err != nil {
		return err
	}
	enr.Summary = resp.Content
	return nil
}

func (o *Orchestrator) describeArchitecture(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: narrativeSystemPrompt,
		Prompt:       buildArchitecturePrompt(rep),
		MaxTokens:    textMaxTokens,
	})
	if err != nil {
		return err
	}
	enr.Architecture = resp.Content
	return nil
}

func (o *Orchestrator) narrateSecurity(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: narrativeSystemPrompt,
		Prompt:       buildSecurityPrompt(rep),
		MaxTokens:    textMaxTokens,
	})
	if err != nil {
		return err
	}
	enr.SecurityNarrative = resp.Content
	return nil
}

func (o *Orchestrator) buildRoadmap(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: jsonSystemPrompt,
		Prompt:       buildRoadmapPrompt(rep),
		MaxTokens:    jsonMaxTokens,
	})
	if err != nil {
		return err
	}
	items, err := parseRoadmap(resp.Content)
	if err != nil {
		return err
	}
	enr.Roadmap = items
	return nil
}

func (o *Orchestrator) documentFunctions(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	prompt, ok := buildFunctionDocsPrompt(rep)
	if !ok {
		// Nothing worth explaining; not a failure.
		return nil
	}
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: jsonSystemPrompt,
		Prompt:       prompt,
		MaxTokens:    jsonMaxTokens,
	})
	if err != nil {
		return err
	}
	docs, err := parseFunctionDocs(resp.Content)
	if err != nil {
		return err
	}
	enr.Functions = docs
	return nil
}

func (o *Orchestrator) estimateComplexity(ctx context.Context, rep *report.Report, enr *report.Enrichment) error {
	prompt, ok := buildComplexityPrompt(rep)
	if !ok {
		return nil
	}
	resp, err := o.complete(ctx, enr, llm.Request{
		SystemPrompt: jsonSystemPrompt,
		Prompt:       prompt,
		MaxTokens:    jsonMaxTokens,
	})
	if err != nil {
		return err
	}
	estimates, err := parseComplexityEstimates(resp.Content)
	if err != nil {
		return err
	}
	enr.ComplexityEstimates = estimates
	return nil
}

// complete runs one provider call through the retry policy and records the
// serving model on first success.
func (o *Orchestrator) complete(ctx context.Context, enr *report.Enrichment, req llm.Request) (*llm.Response, error) {
	resp, err := o.completeWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	if enr.Model == "" {
		enr.Model = resp.Model
	}
	return resp, nil
}
