package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

func init() {
	Register(&enrichmentSection{})
}

// enrichmentSection shows the generated narrative parts of the report.
type enrichmentSection struct {
	enr *report.Enrichment
}

func (s *enrichmentSection) Name() string        { return "enrichment" }
func (s *enrichmentSection) Description() string { return "Generated analysis narrative" }

func (s *enrichmentSection) Analyze(rep *report.Report) error {
	if rep.Enrichment == nil {
		return fmt.Errorf("enrichment: %w", ErrNoData)
	}
	s.enr = rep.Enrichment
	return nil
}

func (s *enrichmentSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("AI Enrichment"))
	_, _ = fmt.Fprintf(w, "-------------\n")

	provider := s.enr.Provider
	if s.enr.Model != "" {
		provider += " (" + s.enr.Model + ")"
	}
	writeField(w, "Provider", provider)
	_, _ = fmt.Fprintf(w, "\n")

	writeParagraph(w, "Summary", s.enr.Summary)
	writeParagraph(w, "Architecture", s.enr.Architecture)
	writeParagraph(w, "Security Assessment", s.enr.SecurityNarrative)

	if len(s.enr.Roadmap) > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", colorBold.Sprint("Roadmap"))
		for _, item := range s.enr.Roadmap {
			line := "  - " + item.Title
			if item.Priority != "" {
				line = fmt.Sprintf("  - [%s] %s", colorPriority(item.Priority), item.Title)
			}
			if item.Effort != "" {
				line += fmt.Sprintf(" (effort: %s)", item.Effort)
			}
			_, _ = fmt.Fprintf(w, "%s\n", line)
			if item.Detail != "" {
				_, _ = fmt.Fprintf(w, "      %s\n", item.Detail)
			}
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(s.enr.Functions) > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", colorBold.Sprint("Function Notes"))
		for _, fn := range s.enr.Functions {
			name := fn.Name
			if fn.File != "" {
				name += " (" + fn.File + ")"
			}
			_, _ = fmt.Fprintf(w, "  - %s: %s\n", name, fn.Explanation)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(s.enr.ComplexityEstimates) > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", colorBold.Sprint("Complexity Estimates"))
		tbl := NewTable(
			Column{Header: "Function"},
			Column{Header: "Time"},
			Column{Header: "Space"},
		)
		for _, ce := range s.enr.ComplexityEstimates {
			name := ce.Name
			if ce.File != "" {
				name += " (" + ce.File + ")"
			}
			tbl.AddRow(name, ce.Time, ce.Space)
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	return nil
}

// writeParagraph writes a bold heading followed by the indented body,
// skipping empty bodies.
func writeParagraph(w io.Writer, title, body string) {
	if body == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s\n", colorBold.Sprint(title))
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
	_, _ = fmt.Fprintf(w, "\n")
}
