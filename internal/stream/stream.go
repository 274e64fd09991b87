// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package stream defines how a pipeline run reports progress to its single
// caller: zero or more progress events followed by exactly one terminal
// event, either a completed report or an error.
package stream

import (
	"sync"

	"github.com/repolens/repolens/internal/report"
)

// Event is one progress update. Progress is 0-100 and non-decreasing
// across a run.
type Event struct {
	Step     string `json:"step"`
	Progress int    `json:"progress"`
}

// Sink receives the events of one run. Implementations only see a valid
// sequence: Stream enforces the terminal-once rule before forwarding.
type Sink interface {
	Progress(e Event)
	Complete(rep *report.Report)
	Error(msg string)
}

// Stream wraps a Sink and enforces the protocol: events arriving after a
// terminal are dropped, and only the first terminal wins. Safe for
// concurrent use.
type Stream struct {
	mu   sync.Mutex
	sink Sink
	done bool
}

// New returns a Stream forwarding to sink.
func New(sink Sink) *Stream {
	return &Stream{sink: sink}
}

// Progress reports a step update. Dropped after a terminal event.
func (s *Stream) Progress(step string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.sink.Progress(Event{Step: step, Progress: progress})
}

// Complete sends the successful terminal event with the final report.
// Only the first terminal call has any effect.
func (s *Stream) Complete(rep *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true
	s.sink.Complete(rep)
}

// Fail sends the error terminal event. Only the first terminal call has
// any effect.
func (s *Stream) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true
	s.sink.Error(err.Error())
}

// Terminated reports whether a terminal event has been sent.
func (s *Stream) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}

// FuncSink adapts plain functions to the Sink interface; nil fields are
// skipped. The CLI uses it to print progress lines without an HTTP layer.
type FuncSink struct {
	OnProgress func(Event)
	OnComplete func(*report.Report)
	OnError    func(string)
}

var _ Sink = (*FuncSink)(nil)

func (f *FuncSink) Progress(e Event) {
	if f.OnProgress != nil {
		f.OnProgress(e)
	}
}

func (f *FuncSink) Complete(rep *report.Report) {
	if f.OnComplete != nil {
		f.OnComplete(rep)
	}
}

func (f *FuncSink) Error(msg string) {
	if f.OnError != nil {
		f.OnError(msg)
	}
}
