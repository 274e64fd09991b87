// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"sort"

	"github.com/repolens/repolens/internal/report"
)

// Bus factor thresholds over contribution shares. Comparisons are strict:
// a top share of exactly 0.5 does not qualify for the middle bucket.
const (
	busTopShareLow  = 0.3 // top contributor below this: healthy spread
	busTopShareMid  = 0.5 // top contributor below this: moderate concentration
	busTop3ShareMid = 0.7 // top three below this, together with the above
)

// BusFactor estimates how many contributors the project can afford to lose,
// bucketed 1 to 3. Concentration is measured as the share of total
// contributions held by the top contributor (s1) and the top three (s3):
//
//	s1 < 0.3                 -> 3
//	s1 < 0.5 and s3 < 0.7    -> 2
//	otherwise                -> 1
//
// No contributors or zero recorded contributions count as maximal
// concentration.
func BusFactor(contributors []report.Contributor) int {
	total := 0
	for _, c := range contributors {
		total += c.Contributions
	}
	if total == 0 {
		return 1
	}

	// The host orders by contributions descending, but do not rely on it.
	counts := make([]int, len(contributors))
	for i, c := range contributors {
		counts[i] = c.Contributions
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	s1 := float64(counts[0]) / float64(total)
	top3 := 0
	for i := 0; i < len(counts) && i < 3; i++ {
		top3 += counts[i]
	}
	s3 := float64(top3) / float64(total)

	switch {
	case s1 < busTopShareLow:
		return 3
	case s1 < busTopShareMid && s3 < busTop3ShareMid:
		return 2
	default:
		return 1
	}
}
