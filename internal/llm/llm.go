// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package llm provides a provider-agnostic completion client used by the
// enrichment stage, with Anthropic and Gemini implementations.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider abstracts an LLM API behind a single synchronous completion method.
type Provider interface {
	// Complete sends a prompt to the model and returns the response.
	// Implementations must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message to send.
	Prompt string

	// Model overrides the provider's default model. If empty, the provider
	// uses its configured default.
	Model string

	// MaxTokens limits the response length. If zero, the provider uses its
	// own default.
	MaxTokens int

	// Temperature controls randomness. If nil, the provider uses its default.
	Temperature *float64

	// SystemPrompt sets the system instruction for the completion.
	SystemPrompt string
}

// Response holds the result of a completion call.
type Response struct {
	// Content is the text returned by the model.
	Content string

	// Model is the model that actually served the request (may differ from
	// the requested model if the provider remapped it).
	Model string

	// Usage reports token consumption.
	Usage Usage
}

// Usage tracks input and output token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ErrUnknownProvider is returned by New for a provider id outside the
// supported set.
var ErrUnknownProvider = errors.New("llm: unknown provider")

// Config selects and configures a concrete provider.
type Config struct {
	// Provider is the provider id: "anthropic" or "gemini".
	Provider string

	// APIKey authenticates requests. If empty, the provider falls back to
	// its environment variable (ANTHROPIC_API_KEY or GEMINI_API_KEY).
	APIKey string

	// Model overrides the provider's default model.
	Model string
}

// New constructs the provider named by cfg.Provider. The provider set is
// closed: an unrecognized id fails here rather than at first use, wrapping
// ErrUnknownProvider.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		opts := []AnthropicOption{}
		if cfg.APIKey != "" {
			opts = append(opts, WithAPIKey(cfg.APIKey))
		}
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		return NewAnthropicProvider(opts...)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %q (supported: anthropic, gemini)", ErrUnknownProvider, cfg.Provider)
	}
}
