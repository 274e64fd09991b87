package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/repolens/repolens/internal/report"
)

// defaultOrder is the presentation order for text reports. Registration
// order cannot serve here: init order across files tracks file names.
var defaultOrder = []string{
	"overview",
	"languages",
	"metrics",
	"contributors",
	"security",
	"debt",
	"performance",
	"endpoints",
	"hotspots",
	"dependencies",
	"enrichment",
}

// Text writes the report as a colored sectioned terminal document. An empty
// filter renders every section in the default order; sections with no data
// for this report are omitted.
func Text(w io.Writer, rep *report.Report, filter ...string) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Repolens Report"))
	_, _ = fmt.Fprintf(w, "===============\n\n")
	_, _ = fmt.Fprintf(w, "Repository: %s\n", rep.Ref)
	_, _ = fmt.Fprintf(w, "Generated:  %s\n\n", rep.GeneratedAt.Format(time.RFC3339))

	for _, name := range ResolveSections(filter) {
		sec := Get(name)
		if sec == nil {
			continue
		}
		if err := sec.Analyze(rep); err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}

	return nil
}

// JSON writes the report as indented JSON, the same document the SSE
// complete event carries.
func JSON(w io.Writer, rep *report.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which sections to render. If filter is empty,
// all registered sections are used in the default order; otherwise the
// filter order is preserved and unknown names are dropped.
func ResolveSections(filter []string) []string {
	var names []string
	if len(filter) == 0 {
		filter = defaultOrder
	}
	for _, name := range filter {
		if Get(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

// formatLocation formats a file path and optional line as "file:line".
func formatLocation(file string, line int) string {
	if file == "" {
		return "unknown"
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return file
}

// humanSize renders a byte count with a binary unit suffix.
func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
