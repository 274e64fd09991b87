package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const endpointsTopN = 25

func init() {
	Register(&endpointsSection{})
}

// endpointsSection lists API routes detected in source text.
type endpointsSection struct {
	endpoints []report.APIEndpoint
	omitted   int
}

func (s *endpointsSection) Name() string        { return "endpoints" }
func (s *endpointsSection) Description() string { return "API endpoints detected in source" }

func (s *endpointsSection) Analyze(rep *report.Report) error {
	if len(rep.Endpoints) == 0 {
		return fmt.Errorf("endpoints: %w", ErrNoData)
	}

	s.endpoints = rep.Endpoints
	s.omitted = 0
	if len(s.endpoints) > endpointsTopN {
		s.omitted = len(s.endpoints) - endpointsTopN
		s.endpoints = s.endpoints[:endpointsTopN]
	}
	return nil
}

func (s *endpointsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("API Endpoints"))
	_, _ = fmt.Fprintf(w, "-------------\n")

	tbl := NewTable(
		Column{Header: "Method"},
		Column{Header: "Path"},
		Column{Header: "Location"},
	)
	for _, ep := range s.endpoints {
		tbl.AddRow(ep.Method, ep.Path, formatLocation(ep.File, ep.Line))
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
