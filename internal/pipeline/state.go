// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package pipeline

// State identifies where a run is in its lifecycle. Transitions are strictly
// forward; a run ends in exactly one of Completed or Aborted.
type State int

const (
	StateIdle State = iota
	StateFetchingCore
	StateComputingMetrics
	StateEnriching
	StateFinalizing
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingCore:
		return "fetching_core"
	case StateComputingMetrics:
		return "computing_metrics"
	case StateEnriching:
		return "enriching"
	case StateFinalizing:
		return "finalizing"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
