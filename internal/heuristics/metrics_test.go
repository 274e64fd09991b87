// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/report"
)

func analyzedFixture() []report.FileRecord {
	return []report.FileRecord{
		{Path: "main.go", Language: "Go", Size: 600, Content: "package main\n\nfunc main() {\n\tif run() && ok() {\n\t\tprintln(1)\n\t}\n}\n"},
		{Path: "engine.go", Language: "Go", Size: 90000},
		{Path: "engine_test.go", Language: "Go", Size: 1500, IsTest: true},
		{Path: "README.md", Language: "Markdown", Size: 900, Content: "# hi\n"},
		{Path: "config.yaml", Language: "YAML", Size: 120, Content: "addr: :8080\n"},
	}
}

func TestComputeMetrics_Totals(t *testing.T) {
	contributors := contributorsWith(50, 30, 20)
	commits := make([]report.Commit, 7)
	files := analyzedFixture()
	res := AnalyzeFiles(files)

	m := ComputeMetrics(contributors, commits, files, res)

	assert.Equal(t, 7, m.TotalCommits)
	assert.Equal(t, 3, m.TotalContributors)
	assert.Equal(t, 5, m.TotalFiles)
	assert.Equal(t, 1, m.BusFactor)
	// main.go content has 8 lines; engine.go and engine_test.go estimate
	// from size (90000/30 + 1500/30); non-code files do not count.
	assert.Equal(t, 8+3000+50, m.LinesOfCode)
}

func TestComputeMetrics_ScoresInRange(t *testing.T) {
	files := analyzedFixture()
	res := AnalyzeFiles(files)
	m := ComputeMetrics(nil, nil, files, res)

	for name, score := range map[string]int{
		"quality":     m.QualityScore,
		"security":    m.SecurityScore,
		"performance": m.PerformanceScore,
		"debt":        m.DebtScore,
	} {
		assert.GreaterOrEqual(t, score, 0, name)
		assert.LessOrEqual(t, score, 100, name)
	}
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	files := analyzedFixture()
	first := ComputeMetrics(contributorsWith(10, 5), nil, files, AnalyzeFiles(files))
	second := ComputeMetrics(contributorsWith(10, 5), nil, files, AnalyzeFiles(files))
	assert.Equal(t, first, second)
}

func TestEstimateCoverage(t *testing.T) {
	files := []report.FileRecord{
		{Path: "a.go", Language: "Go"},
		{Path: "b.go", Language: "Go"},
		{Path: "c.go", Language: "Go"},
		{Path: "d.go", Language: "Go"},
		{Path: "a_test.go", Language: "Go", IsTest: true},
		{Path: "README.md", Language: "Markdown"},
	}
	// 1 test to 4 source files: 100 * 0.25 * 0.8 = 20.
	assert.Equal(t, 20, estimateCoverage(files))
}

func TestEstimateCoverage_NoTests(t *testing.T) {
	files := []report.FileRecord{{Path: "a.go", Language: "Go"}}
	assert.Equal(t, 0, estimateCoverage(files))
}

func TestEstimateCoverage_Capped(t *testing.T) {
	files := []report.FileRecord{
		{Path: "a.go", Language: "Go"},
		{Path: "a_test.go", Language: "Go", IsTest: true},
		{Path: "b_test.go", Language: "Go", IsTest: true},
		{Path: "c_test.go", Language: "Go", IsTest: true},
	}
	assert.Equal(t, 95, estimateCoverage(files))
}

func TestSecurityScore_Deductions(t *testing.T) {
	issues := []report.SecurityIssue{
		{Severity: report.SeverityCritical},
		{Severity: report.SeverityHigh},
		{Severity: report.SeverityMedium},
	}
	assert.Equal(t, 100-25-15-8, securityScore(issues))
	assert.Equal(t, 100, securityScore(nil))
}

func TestSecurityScore_Floor(t *testing.T) {
	issues := make([]report.SecurityIssue, 10)
	for i := range issues {
		issues[i] = report.SecurityIssue{Severity: report.SeverityCritical}
	}
	assert.Equal(t, 0, securityScore(issues))
}

func TestHotspots(t *testing.T) {
	files := []report.FileRecord{
		{Path: "calm.go", Language: "Go", Size: 4000, Content: "x", Complexity: 10},
		{Path: "busy.go", Language: "Go", Size: 8192, Content: "x", Complexity: 80},
		{Path: "wild.go", Language: "Go", Size: 40960, Content: "x", Complexity: 95},
		{Path: "nofetch.go", Language: "Go", Size: 90000, Complexity: 0},
	}

	got := Hotspots(files)

	require.Len(t, got, 2)
	assert.Equal(t, "wild.go", got[0].File)
	assert.Equal(t, 100, got[0].Score, "95 complexity + 10 size points, clamped")
	assert.Equal(t, "busy.go", got[1].File)
	assert.Equal(t, 82, got[1].Score)
}

func TestAnalyzeFiles_FillsComplexityInPlace(t *testing.T) {
	files := analyzedFixture()
	AnalyzeFiles(files)

	assert.Greater(t, files[0].Complexity, 0, "code file with content gets scored")
	assert.Zero(t, files[1].Complexity, "no content, no score")
	assert.Zero(t, files[3].Complexity, "markdown is not code")
}

func TestAnalyzeFiles_SecurityCoversConfigFiles(t *testing.T) {
	files := []report.FileRecord{
		{Path: "deploy.yaml", Language: "YAML", Content: "password: \"hunter22\"\n"},
	}
	res := AnalyzeFiles(files)

	require.Len(t, res.Security, 1)
	assert.Equal(t, "hardcoded-password", res.Security[0].Rule)
}

func TestAnalyzeFiles_Idempotent(t *testing.T) {
	content := "func a() {\n\tif x {\n\t\teval(y)\n\t}\n}\n// TODO: cleanup\n" +
		strings.Repeat("call(normalize(value), options, extra)\n", 5)
	files := []report.FileRecord{{Path: "a.go", Language: "Go", Size: 300, Content: content}}

	first := AnalyzeFiles(files)
	second := AnalyzeFiles(files)
	assert.Equal(t, first, second)
}
