package heuristics

import (
	"regexp"
	"strings"
)

// funcSpan is one detected function-like block.
type funcSpan struct {
	Name      string
	StartLine int // 1-based
	Lines     int // non-blank body lines
}

type endMode int

const (
	endBraceDepth endMode = iota
	endDedent
)

// funcSpec describes how to find functions and their boundaries in a
// language.
type funcSpec struct {
	start   *regexp.Regexp
	endMode endMode
}

// funcSpecs maps display language names to detection rules. Languages
// without an entry still get line-level checks, just no span analysis.
var funcSpecs = map[string]*funcSpec{
	"Go": {
		start:   regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s+)?(\w+)\s*\(`),
		endMode: endBraceDepth,
	},
	"Python": {
		start:   regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`),
		endMode: endDedent,
	},
	"Rust": {
		start:   regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)`),
		endMode: endBraceDepth,
	},
	"Java": {
		start: regexp.MustCompile(
			`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized)\s+)*\w[\w<>\[\],\s]*\s+(\w+)\s*\(`),
		endMode: endBraceDepth,
	},
	"PHP": {
		start: regexp.MustCompile(
			`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*function\s+(\w+)\s*\(`),
		endMode: endBraceDepth,
	},
	"Swift": {
		start: regexp.MustCompile(
			`^\s*(?:(?:public|private|fileprivate|internal|open|static|class|override|mutating)\s+)*func\s+(\w+)`),
		endMode: endBraceDepth,
	},
}

// jsFuncSpec covers the JavaScript family's three declaration shapes:
// function statements, arrow assignments, and object/class methods.
var jsFuncSpec = &funcSpec{
	start: regexp.MustCompile(
		`(?:^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\()` +
			`|(?:^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[^=])\s*=>)` +
			`|(?:^\s*(?:async\s+)?(\w+)\s*\([^)]*\)\s*\{)`),
	endMode: endBraceDepth,
}

func init() {
	funcSpecs["JavaScript"] = jsFuncSpec
	funcSpecs["TypeScript"] = jsFuncSpec
	for _, lang := range []string{"Kotlin", "C", "C++", "C#", "Scala"} {
		funcSpecs[lang] = funcSpecs["Java"]
	}
}

// functionSpans finds function-like blocks in content. Returns nil when the
// language has no detection rule.
func functionSpans(content, language string) []funcSpan {
	spec := funcSpecs[language]
	if spec == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	var spans []funcSpan
	i := 0
	for i < len(lines) {
		name := matchFuncStart(lines[i], spec)
		if name == "" {
			i++
			continue
		}

		var body []string
		var endIdx int
		switch spec.endMode {
		case endBraceDepth:
			body, endIdx = braceBody(lines, i)
		case endDedent:
			body, endIdx = dedentBody(lines, i)
		}

		spans = append(spans, funcSpan{
			Name:      name,
			StartLine: i + 1,
			Lines:     countNonBlank(body),
		})

		if endIdx > i {
			i = endIdx + 1
		} else {
			i++
		}
	}
	return spans
}

// matchFuncStart returns the first non-empty capture group, or "".
func matchFuncStart(line string, spec *funcSpec) string {
	matches := spec.start.FindStringSubmatch(line)
	if matches == nil {
		return ""
	}
	for _, m := range matches[1:] {
		if m != "" {
			return m
		}
	}
	return ""
}

// braceBody extracts a function body by brace depth tracking, starting at
// the signature line. Returns the body lines and the index of the closing
// line.
func braceBody(lines []string, startIdx int) ([]string, int) {
	depth := 0
	started := false

	for i := startIdx; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				started = true
			case '}':
				depth--
			}
		}
		if started && depth <= 0 {
			bodyStart := startIdx + 1
			if bodyStart > i {
				return nil, i
			}
			return lines[bodyStart:i], i
		}
	}

	// No closing brace found, take the rest.
	if startIdx+1 < len(lines) {
		return lines[startIdx+1:], len(lines) - 1
	}
	return nil, startIdx
}

// dedentBody extracts an indentation-delimited body (Python).
func dedentBody(lines []string, startIdx int) ([]string, int) {
	defIndent := leadingSpaces(lines[startIdx])
	bodyStart := startIdx + 1
	if bodyStart >= len(lines) {
		return nil, startIdx
	}

	bodyIndent := -1
	for i := bodyStart; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || trimmed == "#" {
			continue
		}
		bodyIndent = leadingSpaces(lines[i])
		break
	}
	if bodyIndent <= defIndent {
		return nil, startIdx
	}

	var body []string
	endIdx := startIdx
	for i := bodyStart; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			body = append(body, lines[i])
			endIdx = i
			continue
		}
		if leadingSpaces(lines[i]) <= defIndent {
			break
		}
		body = append(body, lines[i])
		endIdx = i
	}
	return body, endIdx
}

func leadingSpaces(line string) int {
	n := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

func countNonBlank(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
