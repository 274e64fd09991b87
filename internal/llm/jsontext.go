// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports a model response that could not be reduced to valid
// JSON. Snippet holds the start of the offending text for diagnostics.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm: response is not valid JSON: %.160s", e.Snippet)
}

// trailingCommaPattern matches a comma that directly precedes a closing
// brace or bracket, which models emit often enough to be worth repairing.
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// ExtractJSON pulls the JSON document out of a model response. Models wrap
// JSON in markdown fences and prose despite instructions not to, so the
// text is cleaned in stages: strip code fences, cut to the outermost
// object or array, and if that still fails to parse, remove trailing
// commas and try once more. The returned string is valid JSON.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &ParseError{Snippet: raw}
	}

	if strings.Contains(s, "```") {
		s = stripFences(s)
	}

	candidate := outermostDocument(s)
	if candidate == "" {
		return "", &ParseError{Snippet: snippet(s)}
	}

	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	repaired := trailingCommaPattern.ReplaceAllString(candidate, "$1")
	if json.Valid([]byte(repaired)) {
		return repaired, nil
	}

	return "", &ParseError{Snippet: snippet(candidate)}
}

// stripFences keeps only the lines inside markdown code fences, dropping
// the fence markers themselves and any prose outside them.
func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	inBlock := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inBlock = !inBlock
			continue
		}
		if inBlock {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return s
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// outermostDocument cuts s down to the span from the first opening brace
// or bracket to the last matching closer. Returns "" when no plausible
// document is present.
func outermostDocument(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

func snippet(s string) string {
	if len(s) > 160 {
		return s[:160]
	}
	return s
}
