// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/repolens/repolens/internal/llm"
)

// completeWithRetry calls the provider up to o.attempts times, sleeping
// backoff*2^n between attempts. Failures classified as non-retryable
// return immediately; waiting would not change the outcome.
func (o *Orchestrator) completeWithRetry(ctx context.Context, req llm.Request) (*llm.Response, error) {
	var lastErr error
	for attempt := 0; attempt < o.attempts; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, o.backoff<<(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := o.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		if llm.IsNonRetryable(err) {
			return nil, err
		}

		lastErr = err
		slog.Debug("provider call failed", "attempt", attempt+1, "of", o.attempts, "error", err)
	}
	return nil, fmt.Errorf("enrich: %d attempts exhausted: %w", o.attempts, lastErr)
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
