// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package pipeline runs one repository analysis from reference to report.
// It validates the reference, drives the fetch / measure / enrich stages in
// order, and emits exactly one terminal event on the progress stream.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/repolens/repolens/internal/enrich"
	"github.com/repolens/repolens/internal/githost"
	"github.com/repolens/repolens/internal/heuristics"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/manifest"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

// Fetcher is the subset of the host client the pipeline needs. Snapshot,
// Contributors, and Commits are mandatory; their failure aborts the run.
// The remaining calls are soft and only degrade the report.
type Fetcher interface {
	Snapshot(ctx context.Context, ref githost.Ref) (report.Snapshot, error)
	Contributors(ctx context.Context, ref githost.Ref) ([]report.Contributor, error)
	Commits(ctx context.Context, ref githost.Ref, branch string) ([]report.Commit, error)
	Languages(ctx context.Context, ref githost.Ref) (map[string]int64, error)
	ListFiles(ctx context.Context, ref githost.Ref, branch string) ([]report.FileRecord, error)
	FetchContents(ctx context.Context, ref githost.Ref, branch string, files []report.FileRecord) error
}

var _ Fetcher = (*githost.Client)(nil)

// Enricher produces the optional generative additions for a finished
// heuristic report.
type Enricher interface {
	Enrich(ctx context.Context, rep *report.Report) (*report.Enrichment, error)
}

var _ Enricher = (*enrich.Orchestrator)(nil)

// Request describes one analysis run.
type Request struct {
	// Ref is the repository reference: owner/name shorthand or a GitHub URL.
	Ref string
	// Token is the optional host credential. Empty means anonymous access.
	Token string
	// Branch overrides the branch to analyze. Empty means the default branch
	// reported by the host.
	Branch string
	// Enrich selects the generative provider. Nil skips enrichment entirely.
	Enrich *llm.Config
	// HostOptions forward caps (max commits, max files, max file size) to
	// the host client.
	HostOptions []githost.Option
}

// Runner executes analysis requests. One Runner serves any number of
// concurrent runs; all per-run state lives inside Run. The factory fields
// exist so tests can substitute fakes.
type Runner struct {
	newFetcher  func(token string, opts ...githost.Option) Fetcher
	newEnricher func(ctx context.Context, cfg llm.Config) (Enricher, error)
	now         func() time.Time
}

// New creates a Runner wired to the real host client and provider
// construction.
func New() *Runner {
	return &Runner{
		newFetcher: func(token string, opts ...githost.Option) Fetcher {
			return githost.New(token, opts...)
		},
		newEnricher: func(ctx context.Context, cfg llm.Config) (Enricher, error) {
			provider, err := llm.New(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return enrich.New(provider, cfg.Provider), nil
		},
		now: time.Now,
	}
}

// Run executes one analysis request, emitting progress events on s followed
// by exactly one terminal event. On success the returned report is the same
// one carried by the complete event. On abort the report is nil and the
// error says why; the same message went out as the error event payload.
func (r *Runner) Run(ctx context.Context, req Request, s *stream.Stream) (*report.Report, error) {
	ex := &run{runner: r, req: req, stream: s, state: StateIdle}

	start := time.Now()
	rep, err := ex.execute(ctx)
	if err != nil {
		ex.setState(StateAborted)
		slog.Error("analysis aborted", "repo", req.Ref, "error", err, "duration", time.Since(start))
		s.Fail(err)
		return nil, err
	}

	ex.setState(StateCompleted)
	slog.Info("analysis complete", "repo", rep.Ref, "duration", time.Since(start))
	s.Complete(rep)
	return rep, nil
}

// run carries the state of a single request through the stages.
type run struct {
	runner *Runner
	req    Request
	ref    githost.Ref
	stream *stream.Stream
	state  State
}

// coreData is everything the fetch stage produced. Later stages read it and
// never refetch.
type coreData struct {
	snapshot     report.Snapshot
	languages    map[string]int64
	contributors []report.Contributor
	commits      []report.Commit
	files        []report.FileRecord
	dependencies []report.Dependency
}

func (ex *run) execute(ctx context.Context) (*report.Report, error) {
	// Validation happens before any remote call: an unparseable reference
	// aborts without spending a single API request.
	ref, err := githost.ParseRef(ex.req.Ref)
	if err != nil {
		return nil, err
	}
	ex.ref = ref
	ex.progress("resolving repository", 5)

	core, err := ex.fetchCore(ctx)
	if err != nil {
		return nil, err
	}

	rep := ex.computeMetrics(core)

	if ex.req.Enrich != nil {
		ex.setState(StateEnriching)
		ex.progress("enriching report", 90)
		if err := ex.enrichReport(ctx, rep); err != nil {
			return nil, err
		}
	}

	ex.setState(StateFinalizing)
	rep.GeneratedAt = ex.runner.now().UTC()
	ex.progress("finalizing", 100)
	return rep, nil
}

// fetchCore performs the remote calls. Snapshot, contributors, and commits
// abort on failure; languages, file listing, and contents degrade to an
// emptier report. Cancellation aborts regardless of which call noticed it.
func (ex *run) fetchCore(ctx context.Context) (*coreData, error) {
	ex.setState(StateFetchingCore)
	fetcher := ex.runner.newFetcher(ex.req.Token, ex.req.HostOptions...)
	core := &coreData{}

	ex.progress("fetching repository metadata", 15)
	snap, err := fetcher.Snapshot(ctx, ex.ref)
	if err != nil {
		return nil, err
	}
	core.snapshot = snap

	branch := ex.req.Branch
	if branch == "" {
		branch = snap.DefaultBranch
	}

	ex.progress("fetching contributors", 30)
	core.contributors, err = fetcher.Contributors(ctx, ex.ref)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched contributors", "repo", ex.ref.String(), "count", len(core.contributors))

	ex.progress("fetching commits", 45)
	core.commits, err = fetcher.Commits(ctx, ex.ref, branch)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched commits", "repo", ex.ref.String(), "count", len(core.commits))

	ex.progress("fetching files", 60)
	core.languages, err = fetcher.Languages(ctx, ex.ref)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		slog.Warn("language breakdown unavailable", "repo", ex.ref.String(), "error", err)
	}

	core.files, err = fetcher.ListFiles(ctx, ex.ref, branch)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		slog.Warn("file listing unavailable, skipping file analysis", "repo", ex.ref.String(), "error", err)
	}

	if len(core.files) > 0 {
		if err := fetcher.FetchContents(ctx, ex.ref, branch, core.files); err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
			slog.Warn("file contents incomplete", "repo", ex.ref.String(), "error", err)
		}
		core.dependencies = manifest.Parse(core.files)
	}
	slog.Info("fetched files", "repo", ex.ref.String(), "count", len(core.files))

	return core, nil
}

// computeMetrics runs the heuristic engine over the fetched data and
// assembles the report. Pure: no remote calls, cannot fail. The report
// struct is built here once; later stages only add to it.
func (ex *run) computeMetrics(core *coreData) *report.Report {
	ex.setState(StateComputingMetrics)
	ex.progress("computing metrics", 75)

	res := heuristics.AnalyzeFiles(core.files)
	return &report.Report{
		Ref:          ex.ref.String(),
		Snapshot:     core.snapshot,
		Languages:    core.languages,
		Contributors: core.contributors,
		Commits:      core.commits,
		Files:        core.files,
		Dependencies: core.dependencies,
		Security:     res.Security,
		Debt:         res.Debt,
		Endpoints:    res.Endpoints,
		PerfNotes:    res.PerfNotes,
		Hotspots:     res.Hotspots,
		Metrics:      heuristics.ComputeMetrics(core.contributors, core.commits, core.files, res),
	}
}

// enrichReport attaches generative additions to the report. Every failure is
// absorbed: a run with broken enrichment still completes, only cancellation
// propagates.
func (ex *run) enrichReport(ctx context.Context, rep *report.Report) error {
	cfg := *ex.req.Enrich
	enricher, err := ex.runner.newEnricher(ctx, cfg)
	if err != nil {
		slog.Warn("enrichment unavailable, continuing without it", "provider", cfg.Provider, "error", err)
		return nil
	}

	enr, err := enricher.Enrich(ctx, rep)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		slog.Warn("enrichment failed, continuing without it", "provider", cfg.Provider, "error", err)
		return nil
	}
	rep.Enrichment = enr
	return nil
}

func (ex *run) progress(step string, pct int) {
	ex.stream.Progress(step, pct)
}

func (ex *run) setState(s State) {
	slog.Debug("pipeline state", "repo", ex.req.Ref, "from", ex.state.String(), "to", s.String())
	ex.state = s
}
