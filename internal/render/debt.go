package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const debtTopN = 15

func init() {
	Register(&debtSection{})
}

// debtSection shows technical-debt findings.
type debtSection struct {
	items   []report.DebtItem
	omitted int
}

func (s *debtSection) Name() string        { return "debt" }
func (s *debtSection) Description() string { return "Technical-debt markers and code smells" }

func (s *debtSection) Analyze(rep *report.Report) error {
	if len(rep.Files) == 0 && len(rep.Debt) == 0 {
		return fmt.Errorf("debt: %w", ErrNoData)
	}

	s.items = rep.Debt
	s.omitted = 0
	if len(s.items) > debtTopN {
		s.omitted = len(s.items) - debtTopN
		s.items = s.items[:debtTopN]
	}
	return nil
}

func (s *debtSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Technical Debt"))
	_, _ = fmt.Fprintf(w, "--------------\n")

	if len(s.items) == 0 {
		_, _ = fmt.Fprintf(w, "  No debt markers in the analyzed files.\n\n")
		return nil
	}

	tbl := NewTable(
		Column{Header: "Kind"},
		Column{Header: "Location"},
		Column{Header: "Description", MaxWidth: 60},
	)
	for _, item := range s.items {
		tbl.AddRow(item.Kind, formatLocation(item.File, item.Line), item.Description)
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
