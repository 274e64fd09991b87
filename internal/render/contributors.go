package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const contributorsTopN = 10

func init() {
	Register(&contributorsSection{})
}

// contributorsSection shows the top contributors by commit share.
type contributorsSection struct {
	contributors []report.Contributor
	total        int
	omitted      int
}

func (s *contributorsSection) Name() string        { return "contributors" }
func (s *contributorsSection) Description() string { return "Top contributors by contribution share" }

func (s *contributorsSection) Analyze(rep *report.Report) error {
	if len(rep.Contributors) == 0 {
		return fmt.Errorf("contributors: %w", ErrNoData)
	}

	total := 0
	for _, c := range rep.Contributors {
		total += c.Contributions
	}
	s.total = total

	s.contributors = rep.Contributors
	s.omitted = 0
	if len(s.contributors) > contributorsTopN {
		s.omitted = len(s.contributors) - contributorsTopN
		s.contributors = s.contributors[:contributorsTopN]
	}
	return nil
}

func (s *contributorsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Contributors"))
	_, _ = fmt.Fprintf(w, "------------\n")

	tbl := NewTable(
		Column{Header: "Login"},
		Column{Header: "Contributions", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, c := range s.contributors {
		login := c.Login
		if c.Type == "Bot" {
			login += " (bot)"
		}
		share := 0.0
		if s.total > 0 {
			share = float64(c.Contributions) / float64(s.total) * 100
		}
		tbl.AddRow(login, fmt.Sprintf("%d", c.Contributions), fmt.Sprintf("%.1f%%", share))
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
