// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package heuristics

import (
	"regexp"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

// secretRule is one entry of the ordered secret table. Order matters: the
// first matching rule wins for a given line, so the most specific and most
// severe rules come first.
type secretRule struct {
	name        string
	severity    string
	pattern     *regexp.Regexp
	description string
}

// secretRules is scanned in order per line. The patterns are intentionally
// loose string matches; a credential-shaped assignment is worth flagging
// even when it turns out to be a fixture.
var secretRules = []secretRule{
	{
		name:        "private-key",
		severity:    report.SeverityCritical,
		pattern:     regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY`),
		description: "private key material embedded in source",
	},
	{
		name:        "aws-access-key",
		severity:    report.SeverityCritical,
		pattern:     regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		description: "AWS access key ID embedded in source",
	},
	{
		// No leading \b: "db_password" has no word boundary before "pass".
		name:        "hardcoded-password",
		severity:    report.SeverityCritical,
		pattern:     regexp.MustCompile(`(?i)pass(?:word|wd)?\s*[:=]+\s*["'][^"']{4,}["']`),
		description: "possible hardcoded password",
	},
	{
		name:        "api-key",
		severity:    report.SeverityHigh,
		pattern:     regexp.MustCompile(`(?i)api[_-]?key\s*[:=]+\s*["'][^"']{8,}["']`),
		description: "possible hardcoded API key",
	},
	{
		name:        "auth-token",
		severity:    report.SeverityHigh,
		pattern:     regexp.MustCompile(`(?i)(?:auth[_-]?token|access[_-]?token|token)\s*[:=]+\s*["'][^"']{8,}["']`),
		description: "possible hardcoded auth token",
	},
	{
		name:        "hardcoded-secret",
		severity:    report.SeverityHigh,
		pattern:     regexp.MustCompile(`(?i)secret(?:[_-]?key)?\s*[:=]+\s*["'][^"']{8,}["']`),
		description: "possible hardcoded secret",
	},
}

// structuralRules flag risky constructs rather than credentials. Unlike
// secret rules these can stack with other findings on the same line.
var structuralRules = []secretRule{
	{
		name:        "dynamic-eval",
		severity:    report.SeverityHigh,
		pattern:     regexp.MustCompile(`\beval\s*\(`),
		description: "dynamic code evaluation",
	},
	{
		name:        "dom-injection",
		severity:    report.SeverityMedium,
		pattern:     regexp.MustCompile(`\.innerHTML\s*=|document\.write\s*\(`),
		description: "unescaped DOM sink",
	},
}

// ScanSecurity scans a file line by line. Each line yields at most one
// secret finding (first matching rule wins) plus any structural findings.
// Output order follows line order.
func ScanSecurity(path, content string) []report.SecurityIssue {
	var issues []report.SecurityIssue

	for i, line := range strings.Split(content, "\n") {
		for _, rule := range secretRules {
			if rule.pattern.MatchString(line) {
				issues = append(issues, report.SecurityIssue{
					Rule:        rule.name,
					Severity:    rule.severity,
					File:        path,
					Line:        i + 1,
					Description: rule.description,
				})
				break
			}
		}
		for _, rule := range structuralRules {
			if rule.pattern.MatchString(line) {
				issues = append(issues, report.SecurityIssue{
					Rule:        rule.name,
					Severity:    rule.severity,
					File:        path,
					Line:        i + 1,
					Description: rule.description,
				})
			}
		}
	}
	return issues
}
