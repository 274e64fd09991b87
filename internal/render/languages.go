package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/repolens/repolens/internal/report"
)

func init() {
	Register(&languagesSection{})
}

// languageShare is one language's slice of the repository by bytes.
type languageShare struct {
	Name  string
	Bytes int64
	Share float64
}

// languagesSection shows the language byte distribution.
type languagesSection struct {
	shares []languageShare
}

func (s *languagesSection) Name() string        { return "languages" }
func (s *languagesSection) Description() string { return "Language distribution by bytes" }

func (s *languagesSection) Analyze(rep *report.Report) error {
	if len(rep.Languages) == 0 {
		return fmt.Errorf("languages: %w", ErrNoData)
	}

	var total int64
	for _, n := range rep.Languages {
		total += n
	}

	shares := make([]languageShare, 0, len(rep.Languages))
	for name, n := range rep.Languages {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total) * 100
		}
		shares = append(shares, languageShare{Name: name, Bytes: n, Share: share})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})

	s.shares = shares
	return nil
}

func (s *languagesSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Languages"))
	_, _ = fmt.Fprintf(w, "---------\n")

	tbl := NewTable(
		Column{Header: "Language"},
		Column{Header: "Size", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, ls := range s.shares {
		tbl.AddRow(ls.Name, humanSize(ls.Bytes), fmt.Sprintf("%.1f%%", ls.Share))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
