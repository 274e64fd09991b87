package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

func TestRoutes_CORSHeaderOnEveryResponse(t *testing.T) {
	srv := New(":0", completingAnalyzer(&report.Report{}), Defaults{})

	for _, target := range []string{"/healthz", "/api/analyze?repo=a/b"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), "target %s", target)
	}
}

func TestRoutes_PreflightShortCircuits(t *testing.T) {
	analyzer := &stubAnalyzer{run: func(_ context.Context, _ pipeline.Request, _ *stream.Stream) (*report.Report, error) {
		t.Fatal("analyzer must not run for preflight requests")
		return nil, nil
	}}
	srv := New(":0", analyzer, Defaults{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/analyze?repo=a/b", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRoutes_UnknownPath(t *testing.T) {
	srv := New(":0", completingAnalyzer(&report.Report{}), Defaults{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShutdown_BeforeStart(t *testing.T) {
	srv := New(":0", completingAnalyzer(&report.Report{}), Defaults{})
	assert.NoError(t, srv.Shutdown(context.Background()))
}
