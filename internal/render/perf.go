package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const perfTopN = 10

func init() {
	Register(&perfSection{})
}

// perfSection lists advisory performance notes. Omitted when there are none.
type perfSection struct {
	notes   []report.PerfNote
	omitted int
}

func (s *perfSection) Name() string        { return "performance" }
func (s *perfSection) Description() string { return "Patterns that tend to cost at runtime" }

func (s *perfSection) Analyze(rep *report.Report) error {
	if len(rep.PerfNotes) == 0 {
		return fmt.Errorf("performance: %w", ErrNoData)
	}

	s.notes = rep.PerfNotes
	s.omitted = 0
	if len(s.notes) > perfTopN {
		s.omitted = len(s.notes) - perfTopN
		s.notes = s.notes[:perfTopN]
	}
	return nil
}

func (s *perfSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Performance Notes"))
	_, _ = fmt.Fprintf(w, "-----------------\n")

	for _, note := range s.notes {
		_, _ = fmt.Fprintf(w, "  [%s] %s: %s\n",
			note.Kind, formatLocation(note.File, note.Line), note.Description)
	}
	if s.omitted > 0 {
		_, _ = fmt.Fprintf(w, "  ... and %d more\n", s.omitted)
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
