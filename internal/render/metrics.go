package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

func init() {
	Register(&metricsSection{})
}

// metricsSection shows aggregate metrics and composite scores.
type metricsSection struct {
	metrics       report.Metrics
	securityCount int
	debtCount     int
	perfCount     int
}

func (s *metricsSection) Name() string        { return "metrics" }
func (s *metricsSection) Description() string { return "Aggregate metrics and composite scores" }

func (s *metricsSection) Analyze(rep *report.Report) error {
	s.metrics = rep.Metrics
	s.securityCount = len(rep.Security)
	s.debtCount = len(rep.Debt)
	s.perfCount = len(rep.PerfNotes)
	return nil
}

func (s *metricsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Metrics"))
	_, _ = fmt.Fprintf(w, "-------\n")

	m := s.metrics
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Commits analyzed:", m.TotalCommits)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Contributors:", m.TotalContributors)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Files:", m.TotalFiles)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Lines of code:", m.LinesOfCode)
	_, _ = fmt.Fprintf(w, "  %-20s %s\n", "Bus factor:", ColorBusFactor(m.BusFactor))
	_, _ = fmt.Fprintf(w, "  %-20s %d%%\n", "Est. test coverage:", m.TestCoverage)
	_, _ = fmt.Fprintf(w, "  %-20s %s\n", "Security findings:", colorCount(s.securityCount))
	_, _ = fmt.Fprintf(w, "  %-20s %s\n", "Debt items:", colorCount(s.debtCount))
	_, _ = fmt.Fprintf(w, "  %-20s %s\n", "Perf notes:", colorCount(s.perfCount))
	_, _ = fmt.Fprintf(w, "\n")

	tbl := NewTable(
		Column{Header: "Dimension"},
		Column{Header: "Score", Align: AlignRight, Color: ColorScore},
	)
	tbl.AddRow("Quality", fmt.Sprintf("%d", m.QualityScore))
	tbl.AddRow("Security", fmt.Sprintf("%d", m.SecurityScore))
	tbl.AddRow("Performance", fmt.Sprintf("%d", m.PerformanceScore))
	tbl.AddRow("Debt", fmt.Sprintf("%d", m.DebtScore))

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
