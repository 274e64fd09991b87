// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"

	"github.com/repolens/repolens/internal/report"
)

const hotspotsTopN = 15

func init() {
	Register(&hotspotsSection{})
}

// hotspotsSection shows files that concentrate risk.
type hotspotsSection struct {
	hotspots []report.Hotspot
	analyzed bool
}

func (s *hotspotsSection) Name() string        { return "hotspots" }
func (s *hotspotsSection) Description() string { return "Files that concentrate risk" }

func (s *hotspotsSection) Analyze(rep *report.Report) error {
	s.analyzed = len(rep.Files) > 0
	if !s.analyzed && len(rep.Hotspots) == 0 {
		return fmt.Errorf("hotspots: %w", ErrNoData)
	}

	s.hotspots = rep.Hotspots
	if len(s.hotspots) > hotspotsTopN {
		s.hotspots = s.hotspots[:hotspotsTopN]
	}
	return nil
}

func (s *hotspotsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Risk Hotspots"))
	_, _ = fmt.Fprintf(w, "-------------\n")

	if len(s.hotspots) == 0 {
		_, _ = fmt.Fprintf(w, "  No risk hotspots detected.\n\n")
		return nil
	}

	tbl := NewTable(
		Column{Header: "File"},
		Column{Header: "Score", Align: AlignRight, Color: colorHotspotScore},
		Column{Header: "Complexity", Align: AlignRight},
		Column{Header: "Size", Align: AlignRight},
		Column{Header: "Reason", MaxWidth: 50},
	)
	for _, hs := range s.hotspots {
		tbl.AddRow(
			hs.File,
			fmt.Sprintf("%d", hs.Score),
			fmt.Sprintf("%d", hs.Complexity),
			humanSize(hs.Size),
			hs.Reason,
		)
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
