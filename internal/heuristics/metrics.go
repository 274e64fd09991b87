// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"math"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

// Lines-of-code estimation for files whose content was not fetched: assume
// this many bytes per line of source.
const bytesPerLineEstimate = 30

// severityWeights deduct from the security score per finding.
var severityWeights = map[string]int{
	report.SeverityCritical: 25,
	report.SeverityHigh:     15,
	report.SeverityMedium:   8,
	report.SeverityLow:      3,
}

// perfWeights deduct from the performance score per note kind.
var perfWeights = map[string]int{
	"nested-loop":   12,
	"sleep-in-loop": 8,
}

// ComputeMetrics aggregates totals and composite scores from the fetched
// data and the findings. Pure and deterministic like the rest of the
// package.
func ComputeMetrics(contributors []report.Contributor, commits []report.Commit, files []report.FileRecord, res Results) report.Metrics {
	m := report.Metrics{
		TotalCommits:      len(commits),
		TotalContributors: len(contributors),
		TotalFiles:        len(files),
		LinesOfCode:       estimateLines(files),
		BusFactor:         BusFactor(contributors),
		TestCoverage:      estimateCoverage(files),
	}

	m.QualityScore = qualityScore(files, res.Debt)
	m.SecurityScore = securityScore(res.Security)
	m.PerformanceScore = performanceScore(res.PerfNotes)
	m.DebtScore = debtScore(files, res.Debt)
	return m
}

// estimateLines counts lines where content is available and approximates
// from size elsewhere, code files only.
func estimateLines(files []report.FileRecord) int {
	total := 0
	for _, f := range files {
		if !codeLanguages[f.Language] {
			continue
		}
		if f.Content != "" {
			total += strings.Count(f.Content, "\n") + 1
		} else {
			total += int(f.Size / bytesPerLineEstimate)
		}
	}
	return total
}

// estimateCoverage guesses a test-coverage percentage from the ratio of
// test files to source files. A convention-level signal, not a measurement:
// capped at 95 and scaled down since test presence overstates coverage.
func estimateCoverage(files []report.FileRecord) int {
	source, tests := 0, 0
	for _, f := range files {
		if !codeLanguages[f.Language] {
			continue
		}
		if f.IsTest {
			tests++
		} else {
			source++
		}
	}
	if source == 0 || tests == 0 {
		return 0
	}

	pct := int(math.Round(100 * float64(tests) / float64(source) * 0.8))
	if pct > 95 {
		pct = 95
	}
	return pct
}

func qualityScore(files []report.FileRecord, debt []report.DebtItem) int {
	sum, analyzed := 0, 0
	for _, f := range files {
		if f.Content != "" && codeLanguages[f.Language] {
			sum += f.Complexity
			analyzed++
		}
	}
	avg := 0.0
	if analyzed > 0 {
		avg = float64(sum) / float64(analyzed)
	}

	debtPenalty := 2 * len(debt)
	if debtPenalty > 30 {
		debtPenalty = 30
	}
	return clampScore(100 - int(math.Round(avg/2)) - debtPenalty)
}

func securityScore(issues []report.SecurityIssue) int {
	score := 100
	for _, issue := range issues {
		score -= severityWeights[issue.Severity]
	}
	return clampScore(score)
}

func performanceScore(notes []report.PerfNote) int {
	score := 100
	for _, note := range notes {
		w, ok := perfWeights[note.Kind]
		if !ok {
			w = 8
		}
		score -= w
	}
	return clampScore(score)
}

// debtScore normalizes debt volume against the number of analyzed files:
// three debt items per analyzed file zeroes the score.
func debtScore(files []report.FileRecord, debt []report.DebtItem) int {
	analyzed := 0
	for _, f := range files {
		if f.Content != "" && codeLanguages[f.Language] {
			analyzed++
		}
	}
	if analyzed == 0 {
		analyzed = 1
	}
	penalty := int(math.Round(100 * float64(len(debt)) / float64(3*analyzed)))
	return clampScore(100 - penalty)
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
