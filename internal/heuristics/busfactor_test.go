// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repolens/repolens/internal/report"
)

func contributorsWith(counts ...int) []report.Contributor {
	out := make([]report.Contributor, len(counts))
	for i, n := range counts {
		out[i] = report.Contributor{Login: string(rune('a' + i)), Contributions: n}
	}
	return out
}

func TestBusFactor(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   int
	}{
		{name: "empty", counts: nil, want: 1},
		{name: "all zero contributions", counts: []int{0, 0}, want: 1},
		{name: "single contributor", counts: []int{100}, want: 1},
		{name: "even spread", counts: []int{25, 25, 25, 25}, want: 3},
		{name: "ten even contributors", counts: []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}, want: 3},
		{name: "moderate concentration", counts: []int{35, 15, 15, 15, 10, 10}, want: 2},
		{name: "dominant top contributor", counts: []int{80, 10, 10}, want: 1},
		{name: "top three dominate", counts: []int{30, 30, 30, 10}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusFactor(contributorsWith(tt.counts...)))
		})
	}
}

func TestBusFactor_BoundariesAreStrict(t *testing.T) {
	// Top share of exactly 0.5 fails the s1 < 0.5 test: the classic
	// 50/30/20 split lands in the lowest bucket even though the top three
	// obviously cover everything.
	assert.Equal(t, 1, BusFactor(contributorsWith(50, 30, 20)))

	// Top share of exactly 0.3 fails s1 < 0.3.
	got := BusFactor(contributorsWith(30, 20, 15, 15, 10, 10))
	assert.NotEqual(t, 3, got)

	// Just under both boundaries qualifies.
	assert.Equal(t, 2, BusFactor(contributorsWith(48, 10, 10, 8, 8, 8, 8)))
}

func TestBusFactor_MonotoneUnderConcentration(t *testing.T) {
	// Same total, increasingly concentrated at the top. The factor must
	// never increase along the way.
	distributions := [][]int{
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
		{20, 10, 10, 10, 10, 10, 10, 10, 5, 5},
		{35, 15, 15, 15, 10, 10},
		{45, 15, 10, 10, 10, 10},
		{60, 20, 10, 10},
		{100},
	}

	prev := 3
	for _, counts := range distributions {
		got := BusFactor(contributorsWith(counts...))
		assert.LessOrEqual(t, got, prev, "distribution %v", counts)
		prev = got
	}
}

func TestBusFactor_OrderIndependent(t *testing.T) {
	assert.Equal(t,
		BusFactor(contributorsWith(50, 30, 20)),
		BusFactor(contributorsWith(20, 50, 30)))
}
