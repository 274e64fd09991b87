// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"fmt"
	"sort"

	"github.com/repolens/repolens/internal/report"
)

const (
	// hotspotComplexityMin is the complexity score at which a file becomes
	// a hotspot candidate.
	hotspotComplexityMin = 60

	// hotspotMax caps how many hotspots the report carries.
	hotspotMax = 10

	// hotspotSizeDivisor converts file size to score points: one point per
	// 4 KiB, capped below.
	hotspotSizeDivisor = 4096
	hotspotSizeCap     = 20
)

// Hotspots ranks analyzed files by concentration of risk. Commit history
// from the host carries no per-file churn, so risk is approximated from
// complexity and size. Sorted by score descending, ties by path, capped.
func Hotspots(files []report.FileRecord) []report.Hotspot {
	var spots []report.Hotspot
	for _, f := range files {
		if f.Content == "" || f.Complexity < hotspotComplexityMin {
			continue
		}

		sizeBonus := int(f.Size / hotspotSizeDivisor)
		if sizeBonus > hotspotSizeCap {
			sizeBonus = hotspotSizeCap
		}
		score := f.Complexity + sizeBonus
		if score > 100 {
			score = 100
		}

		spots = append(spots, report.Hotspot{
			File:       f.Path,
			Score:      score,
			Complexity: f.Complexity,
			Size:       f.Size,
			Reason:     fmt.Sprintf("complexity %d in a %d byte file", f.Complexity, f.Size),
		})
	}

	sort.Slice(spots, func(a, b int) bool {
		if spots[a].Score != spots[b].Score {
			return spots[a].Score > spots[b].Score
		}
		return spots[a].File < spots[b].File
	})
	if len(spots) > hotspotMax {
		spots = spots[:hotspotMax]
	}
	return spots
}
