// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package render turns an analysis report into terminal output. Each section
// consumes one slice of the report and renders a focused segment; the JSON
// renderer emits the report verbatim for machine consumers.
package render

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/repolens/repolens/internal/report"
)

// ErrNoData indicates a section has nothing to show for this report,
// typically because the run degraded or the feature was not requested.
// Such sections are omitted from the rendered output.
var ErrNoData = errors.New("no data to report")

// Section is a pluggable report section that analyzes one report and
// renders a focused segment of terminal output.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "hotspots").
	Name() string

	// Description returns a human-readable description of what this section shows.
	Description() string

	// Analyze prepares internal state for rendering.
	// Returns ErrNoData (possibly wrapped) if the section should be omitted.
	Analyze(rep *report.Report) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
)

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("render section already registered: %s", name))
	}
	registry[name] = s
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Section)
}
