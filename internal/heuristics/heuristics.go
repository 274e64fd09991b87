// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package heuristics computes code metrics and findings from already-fetched
// repository data. Everything here is pure: no I/O, no clocks, no shared
// state. Identical inputs produce identical outputs in identical order, so
// results are reproducible and directly comparable between runs.
//
// All detection is lexical (regex over source text). That trades precision
// for zero build requirements: scanning never needs a checkout, a compiler,
// or a language runtime, and a false positive costs a reader a glance.
package heuristics

import (
	"github.com/repolens/repolens/internal/report"
)

// codeLanguages are languages whose files get complexity scoring, debt
// detection, endpoint extraction, and performance notes.
var codeLanguages = map[string]bool{
	"Go":         true,
	"TypeScript": true,
	"JavaScript": true,
	"Python":     true,
	"Ruby":       true,
	"Rust":       true,
	"Java":       true,
	"Kotlin":     true,
	"C":          true,
	"C++":        true,
	"C#":         true,
	"PHP":        true,
	"Swift":      true,
	"Scala":      true,
	"Shell":      true,
	"SQL":        true,
}

// configLanguages additionally get the security scan: secrets live in
// config files as often as in code.
var configLanguages = map[string]bool{
	"YAML": true,
	"TOML": true,
	"JSON": true,
}

// Results holds every finding produced by an analysis pass.
type Results struct {
	Security  []report.SecurityIssue
	Debt      []report.DebtItem
	Endpoints []report.APIEndpoint
	PerfNotes []report.PerfNote
	Hotspots  []report.Hotspot
}

// AnalyzeFiles scores complexity for every file whose content was fetched
// and collects findings across all of them. The Complexity field of
// analyzed files is filled in place. Findings keep input order per file and
// line order within a file.
func AnalyzeFiles(files []report.FileRecord) Results {
	var res Results

	for i := range files {
		f := &files[i]
		if f.Content == "" {
			continue
		}

		code := codeLanguages[f.Language]
		config := configLanguages[f.Language]

		if code || config {
			res.Security = append(res.Security, ScanSecurity(f.Path, f.Content)...)
		}
		if !code {
			continue
		}

		f.Complexity = Complexity(f.Content)
		res.Debt = append(res.Debt, DetectDebt(f.Path, f.Content)...)
		res.Endpoints = append(res.Endpoints, ExtractEndpoints(f.Path, f.Content)...)
		res.PerfNotes = append(res.PerfNotes, ScanPerformance(f.Path, f.Content)...)
	}

	res.Hotspots = Hotspots(files)
	return res
}
