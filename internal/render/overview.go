package render

import (
	"fmt"
	"io"
	"time"

	"github.com/repolens/repolens/internal/report"
)

func init() {
	Register(&overviewSection{})
}

// overviewSection shows the repository snapshot.
type overviewSection struct {
	snap report.Snapshot
}

func (s *overviewSection) Name() string        { return "overview" }
func (s *overviewSection) Description() string { return "Repository metadata at analysis time" }

func (s *overviewSection) Analyze(rep *report.Report) error {
	s.snap = rep.Snapshot
	return nil
}

func (s *overviewSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Repository Overview"))
	_, _ = fmt.Fprintf(w, "-------------------\n")

	writeField(w, "Name", s.snap.FullName)
	writeField(w, "Description", s.snap.Description)
	writeField(w, "Language", s.snap.Language)
	writeField(w, "Stars", fmt.Sprintf("%d", s.snap.Stars))
	writeField(w, "Forks", fmt.Sprintf("%d", s.snap.Forks))
	writeField(w, "Watchers", fmt.Sprintf("%d", s.snap.Watchers))
	writeField(w, "Open issues", fmt.Sprintf("%d", s.snap.OpenIssues))
	writeField(w, "Branch", s.snap.DefaultBranch)
	writeField(w, "License", s.snap.License)
	writeField(w, "Size", humanSize(int64(s.snap.SizeKB)*1024))
	writeDate(w, "Created", s.snap.CreatedAt)
	writeDate(w, "Last push", s.snap.PushedAt)

	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

// writeField writes an aligned "key: value" line, skipping empty values.
func writeField(w io.Writer, key, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", key+":", value)
}

func writeDate(w io.Writer, key string, t *time.Time) {
	if t == nil {
		return
	}
	writeField(w, key, t.Format("2006-01-02"))
}
