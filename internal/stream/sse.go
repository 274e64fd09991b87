package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/repolens/repolens/internal/report"
)

// SSESink encodes the progress protocol as server-sent events. Progress
// updates go out as unnamed message events; the terminals are the named
// events "complete" (payload: the full report) and "error" (payload:
// {"error": message}). Every event is flushed immediately so a long
// enrichment retry never holds back already-produced progress.
type SSESink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

var _ Sink = (*SSESink)(nil)

// NewSSESink prepares w for event streaming and writes the SSE headers.
// It fails when the underlying writer cannot flush, since buffered events
// would defeat the protocol.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("stream: response writer does not support flushing")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")

	return &SSESink{w: w, flusher: flusher}, nil
}

func (s *SSESink) Progress(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.flusher.Flush()
}

func (s *SSESink) Complete(rep *report.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		slog.Error("failed to encode report for stream", "error", err)
		s.Error("internal error: report encoding failed")
		return
	}
	fmt.Fprintf(s.w, "event: complete\ndata: %s\n\n", data)
	s.flusher.Flush()
}

func (s *SSESink) Error(msg string) {
	data, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: error\ndata: %s\n\n", data)
	s.flusher.Flush()
}
