// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
	"github.com/repolens/repolens/internal/testable"
)

// newTestCmd redirects rootCmd I/O into fresh buffers. The global rootCmd is
// reused because the subcommands are wired to it via init().
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetAnalyzeFlags resets analyze and persistent flags to their defaults.
// Must be called before each test that executes the analyze command to avoid
// contamination from previous tests.
func resetAnalyzeFlags() {
	analyzeCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
}

// resetServeFlags resets serve command flags to their defaults.
func resetServeFlags() {
	serveCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
}

// stubRunner implements the analyzer seam. It records the request and mimics
// the runner contract: a progress event, then the terminal event matching
// its own return values.
type stubRunner struct {
	gotReq pipeline.Request
	rep    *report.Report
	err    error
}

var _ analyzer = (*stubRunner)(nil)

func (s *stubRunner) Run(_ context.Context, req pipeline.Request, st *stream.Stream) (*report.Report, error) {
	s.gotReq = req
	st.Progress("fetching repository metadata", 10)
	if s.err != nil {
		st.Fail(s.err)
		return nil, s.err
	}
	st.Complete(s.rep)
	return s.rep, nil
}

// installStubRunner swaps the pipeline factory for a stub and restores it on
// test cleanup.
func installStubRunner(t *testing.T, rep *report.Report, runErr error) *stubRunner {
	t.Helper()
	stub := &stubRunner{rep: rep, err: runErr}
	orig := newRunner
	newRunner = func() analyzer { return stub }
	t.Cleanup(func() { newRunner = orig })
	return stub
}

// sampleReport builds a small report with enough data to exercise the text
// sections used in assertions.
func sampleReport() *report.Report {
	return &report.Report{
		Ref:         "acme/widgets",
		GeneratedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Snapshot: report.Snapshot{
			FullName:      "acme/widgets",
			Language:      "Go",
			Stars:         42,
			DefaultBranch: "main",
		},
		Languages: map[string]int64{"Go": 120000, "Shell": 4000},
		Contributors: []report.Contributor{
			{Login: "alice", Contributions: 12},
		},
		Commits: []report.Commit{
			{SHA: "abc1234", Message: "initial", Author: "alice", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Metrics: report.Metrics{
			TotalCommits:      1,
			TotalContributors: 1,
			TotalFiles:        3,
			QualityScore:      80,
		},
	}
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// isolateEnv clears the token variables and points the global config lookup
// at an empty directory, so tests see only what they set up themselves.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// withMockFS swaps cmdFS with the given mock and restores it on test cleanup.
func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

// initRepoWithRemote creates a git repository whose origin remote points at
// remoteURL and returns its path.
func initRepoWithRemote(t *testing.T, remoteURL string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gogitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{remoteURL},
	})
	require.NoError(t, err)

	return dir
}
