package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/repolens/repolens/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWithRetry_SucceedsFirstTry(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "ok"})
	o := New(mock, "anthropic", WithBackoff(time.Millisecond))

	resp, err := o.completeWithRetry(context.Background(), llm.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 1, mock.CallCount())
}

func TestCompleteWithRetry_ExhaustsAttempts(t *testing.T) {
	transient := errors.New("connection reset")
	mock := llm.NewMockProvider(llm.MockResponse{Err: transient})
	o := New(mock, "anthropic", WithAttempts(4), WithBackoff(time.Millisecond))

	resp, err := o.completeWithRetry(context.Background(), llm.Request{Prompt: "p"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, transient)
	assert.Contains(t, err.Error(), "4 attempts")
	assert.Equal(t, 4, mock.CallCount())
}

func TestCompleteWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.Error{Provider: "anthropic", Class: llm.ClassMalformedRequest, Status: 400},
	})
	o := New(mock, "anthropic", WithAttempts(4), WithBackoff(time.Millisecond))

	_, err := o.completeWithRetry(context.Background(), llm.Request{Prompt: "p"})
	require.Error(t, err)
	assert.True(t, llm.IsNonRetryable(err))
	assert.Equal(t, 1, mock.CallCount())
}

func TestCompleteWithRetry_RecoversMidway(t *testing.T) {
	transient := &llm.Error{Provider: "gemini", Class: llm.ClassTransient, Status: 503}
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: transient},
		llm.MockResponse{Content: "second try"},
	)
	o := New(mock, "gemini", WithBackoff(time.Millisecond))

	resp, err := o.completeWithRetry(context.Background(), llm.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "second try", resp.Content)
	assert.Equal(t, 2, mock.CallCount())
}

func TestCompleteWithRetry_CancelledDuringBackoff(t *testing.T) {
	transient := errors.New("overloaded")
	mock := llm.NewMockProvider(llm.MockResponse{Err: transient})
	o := New(mock, "anthropic", WithBackoff(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := o.completeWithRetry(ctx, llm.Request{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second, "cancellation must cut the backoff sleep short")
	assert.Equal(t, 1, mock.CallCount())
}

func TestSleepContext(t *testing.T) {
	err := sleepContext(context.Background(), time.Millisecond)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sleepContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaults(t *testing.T) {
	o := New(llm.NewMockProvider(), "anthropic")
	assert.Equal(t, defaultAttempts, o.attempts)
	assert.Equal(t, defaultBackoff, o.backoff)

	o = New(llm.NewMockProvider(), "anthropic", WithAttempts(0), WithBackoff(0))
	assert.Equal(t, defaultAttempts, o.attempts, "non-positive attempts are ignored")
	assert.Equal(t, defaultBackoff, o.backoff, "non-positive backoff is ignored")
}
