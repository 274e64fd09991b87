// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const securityTopN = 15

func init() {
	Register(&securitySection{})
}

// securitySection shows heuristic security findings. It renders even when
// empty, provided file contents were analyzed: "no findings" is a result.
type securitySection struct {
	issues   []report.SecurityIssue
	omitted  int
	analyzed bool
}

func (s *securitySection) Name() string        { return "security" }
func (s *securitySection) Description() string { return "Heuristic security findings" }

func (s *securitySection) Analyze(rep *report.Report) error {
	s.analyzed = len(rep.Files) > 0
	if !s.analyzed && len(rep.Security) == 0 {
		return fmt.Errorf("security: %w", ErrNoData)
	}

	s.issues = rep.Security
	s.omitted = 0
	if len(s.issues) > securityTopN {
		s.omitted = len(s.issues) - securityTopN
		s.issues = s.issues[:securityTopN]
	}
	return nil
}

func (s *securitySection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Security Findings"))
	_, _ = fmt.Fprintf(w, "-----------------\n")

	if len(s.issues) == 0 {
		_, _ = fmt.Fprintf(w, "  No security findings in the analyzed files.\n\n")
		return nil
	}

	tbl := NewTable(
		Column{Header: "Severity", Color: ColorSeverity},
		Column{Header: "Rule"},
		Column{Header: "Location"},
		Column{Header: "Description", MaxWidth: 60},
	)
	for _, issue := range s.issues {
		tbl.AddRow(
			issue.Severity,
			issue.Rule,
			formatLocation(issue.File, issue.Line),
			issue.Description,
		)
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	if s.omitted > 0 {
		_, _ = fmt.Fprintf(w, "  ... and %d more\n", s.omitted)
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
