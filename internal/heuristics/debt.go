// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

const (
	// longFunctionLines is the non-blank body size past which a function
	// counts as a complexity debt item.
	longFunctionLines = 50

	// duplicateLineMin is how often a normalized line must repeat within a
	// file to count as duplication.
	duplicateLineMin = 5

	// duplicateLineLen filters out trivially repeating short lines like
	// closing braces and bare returns.
	duplicateLineLen = 20
)

// todoPattern matches TODO-style comments in common languages: //, #, /*,
// *, and -- prefixes, an optional (author), and an optional separator.
var todoPattern = regexp.MustCompile(
	`(?i)(?://|#|/\*|\*|--)\s*` +
		`(TODO|FIXME|HACK|XXX)\b` +
		`(?:\([^)]*\))?` +
		`\s*[:>\-]?\s*` +
		`(.*)`)

// commentLinePattern matches lines that are purely comments; those are
// excluded from duplication counting.
var commentLinePattern = regexp.MustCompile(`^\s*(?://|#|/\*|\*\s|\*/|--)\s*`)

// importLinePattern matches import-style statements, which legitimately
// repeat across a file's preamble.
var importLinePattern = regexp.MustCompile(
	`(?i)^\s*(?:import\s|from\s\S+\s+import|require\s*\(|include\s|using\s|#include\s|use\s)`)

// DetectDebt finds technical-debt markers in a single file: oversized
// functions (kind "complexity"), TODO-style comments (kind "smell"), and
// heavily repeated lines (kind "duplication"). Items are ordered complexity,
// smell, duplication, each ascending by line.
func DetectDebt(path, content string) []report.DebtItem {
	var items []report.DebtItem

	lang := languageOfPath(path)
	for _, span := range functionSpans(content, lang) {
		if span.Lines <= longFunctionLines {
			continue
		}
		items = append(items, report.DebtItem{
			Kind: report.DebtComplexity,
			File: path,
			Line: span.StartLine,
			Description: fmt.Sprintf("function %s spans %d lines (threshold %d)",
				span.Name, span.Lines, longFunctionLines),
		})
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		m := todoPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		keyword := strings.ToUpper(m[1])
		msg := strings.TrimSpace(m[2])
		desc := keyword
		if msg != "" {
			desc = keyword + ": " + truncate(msg, 120)
		}
		items = append(items, report.DebtItem{
			Kind:        report.DebtSmell,
			File:        path,
			Line:        i + 1,
			Description: desc,
		})
	}

	items = append(items, duplicatedLines(path, lines)...)
	return items
}

// duplicatedLines reports lines that repeat at least duplicateLineMin times
// after whitespace normalization. One item per distinct line, at its first
// occurrence.
func duplicatedLines(path string, lines []string) []report.DebtItem {
	type dup struct {
		count     int
		firstLine int
	}
	seen := make(map[string]*dup)

	for i, raw := range lines {
		if commentLinePattern.MatchString(raw) || importLinePattern.MatchString(raw) {
			continue
		}
		norm := strings.Join(strings.Fields(raw), " ")
		if len(norm) < duplicateLineLen {
			continue
		}
		if d, ok := seen[norm]; ok {
			d.count++
		} else {
			seen[norm] = &dup{count: 1, firstLine: i + 1}
		}
	}

	var items []report.DebtItem
	for norm, d := range seen {
		if d.count < duplicateLineMin {
			continue
		}
		items = append(items, report.DebtItem{
			Kind:        report.DebtDuplication,
			File:        path,
			Line:        d.firstLine,
			Description: fmt.Sprintf("line repeated %d times: %s", d.count, truncate(norm, 80)),
		})
	}
	sort.Slice(items, func(a, b int) bool { return items[a].Line < items[b].Line })
	return items
}

// languageOfPath is a minimal extension-to-language lookup for span
// detection. The authoritative mapping lives with the file lister; this one
// only needs to agree on the languages that have function specs.
func languageOfPath(path string) string {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return ""
	}
	switch strings.ToLower(path[dot:]) {
	case ".go":
		return "Go"
	case ".py":
		return "Python"
	case ".js", ".jsx", ".mjs":
		return "JavaScript"
	case ".ts", ".tsx":
		return "TypeScript"
	case ".rs":
		return "Rust"
	case ".java":
		return "Java"
	case ".kt":
		return "Kotlin"
	case ".c", ".h":
		return "C"
	case ".cpp", ".cc", ".hpp":
		return "C++"
	case ".cs":
		return "C#"
	case ".php":
		return "PHP"
	case ".swift":
		return "Swift"
	case ".scala":
		return "Scala"
	default:
		return ""
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
