// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"math"
	"regexp"
	"strings"
)

// branchPattern matches control flow keywords across supported languages.
// Whole words only, so identifiers like "notify" never count as "if".
var branchPattern = regexp.MustCompile(
	`\b(?:if|else\s+if|elif|elsif|for|while|switch|case|catch|except|guard|when|unless)\b`)

// logicalOpPattern matches && and || operators for branch counting.
var logicalOpPattern = regexp.MustCompile(`&&|\|\|`)

// declPattern matches function, class, and interface declarations.
var declPattern = regexp.MustCompile(
	`\b(?:func|function|def|fn|class|interface|struct|trait|impl)\b`)

// Complexity weights and bounds.
const (
	branchWeight  = 2.0
	declWeight    = 3.0
	linesPerPoint = 50.0
	maxComplexity = 100
)

// Complexity scores source text 0-100. The score is a weighted count of
// branch tokens (including boolean operators), declarations, and raw length:
//
//	2*branches + lines/50 + 3*declarations
//
// rounded and clamped to 100. Purely lexical: a keyword inside a string
// literal counts like any other. Empty content scores 0.
func Complexity(content string) int {
	if content == "" {
		return 0
	}

	branches := len(branchPattern.FindAllStringIndex(content, -1)) +
		len(logicalOpPattern.FindAllStringIndex(content, -1))
	decls := len(declPattern.FindAllStringIndex(content, -1))
	lines := strings.Count(content, "\n") + 1

	score := branchWeight*float64(branches) +
		float64(lines)/linesPerPoint +
		declWeight*float64(decls)

	rounded := int(math.Round(score))
	if rounded > maxComplexity {
		return maxComplexity
	}
	return rounded
}
