package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const dependenciesTopN = 25

func init() {
	Register(&dependenciesSection{})
}

// dependenciesSection lists declared dependencies from manifest files.
type dependenciesSection struct {
	deps    []report.Dependency
	omitted int
}

func (s *dependenciesSection) Name() string        { return "dependencies" }
func (s *dependenciesSection) Description() string { return "Declared dependencies from manifests" }

func (s *dependenciesSection) Analyze(rep *report.Report) error {
	if len(rep.Dependencies) == 0 {
		return fmt.Errorf("dependencies: %w", ErrNoData)
	}

	s.deps = rep.Dependencies
	s.omitted = 0
	if len(s.deps) > dependenciesTopN {
		s.omitted = len(s.deps) - dependenciesTopN
		s.deps = s.deps[:dependenciesTopN]
	}
	return nil
}

func (s *dependenciesSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Dependencies"))
	_, _ = fmt.Fprintf(w, "------------\n")

	tbl := NewTable(
		Column{Header: "Name"},
		Column{Header: "Version"},
		Column{Header: "Ecosystem"},
	)
	for _, dep := range s.deps {
		name := dep.Name
		if dep.Dev {
			name += " (dev)"
		}
		tbl.AddRow(name, dep.Version, dep.Ecosystem)
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
