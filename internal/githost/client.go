// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package githost fetches repository data from the GitHub REST API and maps
// it onto the report data model. All operations take a context, carry a
// per-request HTTP timeout, and return typed *Error values on failure.
package githost

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/sync/errgroup"

	"github.com/repolens/repolens/internal/report"
)

// Default caps. The client takes a bounded snapshot of a repository,
// never a full mirror.
const (
	defaultPerPage         = 100
	defaultMaxCommits      = 200
	defaultMaxContributors = 400
	defaultMaxFiles        = 30
	defaultMaxFileSize     = 100 * 1024 // bytes, per file
	defaultTimeout         = 30 * time.Second
	contentConcurrency     = 4
)

// hostAPI abstracts the GitHub API surface the client uses, for testing.
type hostAPI interface {
	GetRepo(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	ListContributors(ctx context.Context, owner, repo string, opts *github.ListContributorsOptions) ([]*github.Contributor, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error)
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*github.Tree, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// realHostAPI wraps the real go-github client to implement hostAPI.
type realHostAPI struct {
	client *github.Client
}

func (r *realHostAPI) GetRepo(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	return r.client.Repositories.Get(ctx, owner, repo)
}

func (r *realHostAPI) ListContributors(ctx context.Context, owner, repo string, opts *github.ListContributorsOptions) ([]*github.Contributor, *github.Response, error) {
	return r.client.Repositories.ListContributors(ctx, owner, repo, opts)
}

func (r *realHostAPI) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	return r.client.Repositories.ListCommits(ctx, owner, repo, opts)
}

func (r *realHostAPI) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error) {
	return r.client.Repositories.ListLanguages(ctx, owner, repo)
}

func (r *realHostAPI) GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*github.Tree, *github.Response, error) {
	return r.client.Git.GetTree(ctx, owner, repo, sha, recursive)
}

func (r *realHostAPI) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	return r.client.Repositories.GetContents(ctx, owner, repo, path, opts)
}

// Client fetches repository data. Safe for use by a single request
// goroutine; construct one per analysis run.
type Client struct {
	api             hostAPI
	authenticated   bool
	maxCommits      int
	maxContributors int
	maxFiles        int
	maxFileSize     int64
}

// Option configures a Client.
type Option func(*Client)

// WithMaxCommits caps how many commits Commits returns.
func WithMaxCommits(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxCommits = n
		}
	}
}

// WithMaxFiles caps how many files FetchContents downloads.
func WithMaxFiles(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxFiles = n
		}
	}
}

// WithMaxFileSize caps the per-file content size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxFileSize = n
		}
	}
}

// New creates a Client. An empty token means anonymous access, which GitHub
// rate-limits to 60 requests/hour. The HTTP timeout bounds every individual
// request so a wedged transfer cannot hang a run.
func New(token string, opts ...Option) *Client {
	httpClient := &http.Client{Timeout: defaultTimeout}
	gh := github.NewClient(httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	c := &Client{
		api:             &realHostAPI{client: gh},
		authenticated:   token != "",
		maxCommits:      defaultMaxCommits,
		maxContributors: defaultMaxContributors,
		maxFiles:        defaultMaxFiles,
		maxFileSize:     defaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot fetches repository metadata. Mandatory: a failure here aborts the
// analysis.
func (c *Client) Snapshot(ctx context.Context, ref Ref) (report.Snapshot, error) {
	repo, _, err := c.api.GetRepo(ctx, ref.Owner, ref.Name)
	if err != nil {
		return report.Snapshot{}, c.classify("repository metadata", ref, err)
	}

	snap := report.Snapshot{
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Language:      repo.GetLanguage(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		Watchers:      repo.GetSubscribersCount(),
		OpenIssues:    repo.GetOpenIssuesCount(),
		DefaultBranch: repo.GetDefaultBranch(),
		SizeKB:        repo.GetSize(),
		License:       repo.GetLicense().GetSPDXID(),
	}
	if ts := repo.GetCreatedAt(); !ts.IsZero() {
		t := ts.Time
		snap.CreatedAt = &t
	}
	if ts := repo.GetPushedAt(); !ts.IsZero() {
		t := ts.Time
		snap.PushedAt = &t
	}
	return snap, nil
}

// Contributors fetches the contributor list, following pagination until the
// host reports no next page or the cap is reached. Order (contributions
// descending) is the host's and is preserved.
func (c *Client) Contributors(ctx context.Context, ref Ref) ([]report.Contributor, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: defaultPerPage},
	}

	var out []report.Contributor
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, resp, err := c.api.ListContributors(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, c.classify("contributors", ref, err)
		}

		for _, u := range page {
			out = append(out, report.Contributor{
				Login:         u.GetLogin(),
				Contributions: u.GetContributions(),
				AvatarURL:     u.GetAvatarURL(),
				Type:          u.GetType(),
			})
		}

		if len(out) >= c.maxContributors {
			out = out[:c.maxContributors]
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// Commits fetches the most recent commits on branch (empty means the default
// branch), following pagination up to the configured cap.
func (c *Client) Commits(ctx context.Context, ref Ref, branch string) ([]report.Commit, error) {
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: defaultPerPage},
	}

	var out []report.Commit
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, resp, err := c.api.ListCommits(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, c.classify("commits", ref, err)
		}

		for _, rc := range page {
			commit := report.Commit{
				SHA:     rc.GetSHA(),
				Message: rc.GetCommit().GetMessage(),
				Author:  rc.GetCommit().GetAuthor().GetName(),
				Email:   rc.GetCommit().GetAuthor().GetEmail(),
				Date:    rc.GetCommit().GetAuthor().GetDate().Time,
			}
			if commit.Author == "" {
				commit.Author = rc.GetAuthor().GetLogin()
			}
			out = append(out, commit)
			if len(out) >= c.maxCommits {
				return out, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// Languages fetches byte counts per language. Callers treat failures as
// soft: the report is still valid without a language breakdown.
func (c *Client) Languages(ctx context.Context, ref Ref) (map[string]int64, error) {
	langs, _, err := c.api.ListLanguages(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, c.classify("languages", ref, err)
	}

	out := make(map[string]int64, len(langs))
	for name, bytes := range langs {
		out[name] = int64(bytes)
	}
	return out, nil
}

// ListFiles fetches the recursive git tree for branch and returns one record
// per blob, without content. Noise directories (vendored deps, build output)
// are skipped. A truncated tree is used as-is: file data only enriches the
// report.
func (c *Client) ListFiles(ctx context.Context, ref Ref, branch string) ([]report.FileRecord, error) {
	tree, _, err := c.api.GetTree(ctx, ref.Owner, ref.Name, branch, true)
	if err != nil {
		return nil, c.classify("file tree", ref, err)
	}
	if tree.GetTruncated() {
		slog.Debug("file tree truncated by host", "repo", ref.String())
	}

	var files []report.FileRecord
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		path := entry.GetPath()
		if skipPath(path) {
			continue
		}
		files = append(files, report.FileRecord{
			Path:     path,
			Size:     int64(entry.GetSize()),
			Language: languageFor(path),
			IsTest:   isTestPath(path),
		})
	}
	return files, nil
}

// FetchContents downloads content for a bounded, prioritized subset of
// files, writing into the given slice in place. Individual file failures are
// soft; only cancellation propagates.
func (c *Client) FetchContents(ctx context.Context, ref Ref, branch string, files []report.FileRecord) error {
	selected := selectForContent(files, c.maxFiles, c.maxFileSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(contentConcurrency)
	for _, idx := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := c.fetchFile(ctx, ref, branch, files[idx].Path)
			if err != nil {
				slog.Debug("skipping file content", "path", files[idx].Path, "error", err)
				return nil
			}
			files[idx].Content = content
			return nil
		})
	}
	return g.Wait()
}

func (c *Client) fetchFile(ctx context.Context, ref Ref, branch, path string) (string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: branch}
	fileContent, _, _, err := c.api.GetContents(ctx, ref.Owner, ref.Name, path, opts)
	if err != nil {
		return "", c.classify("file content", ref, err)
	}
	if fileContent == nil {
		return "", &Error{Kind: KindNotFound, Resource: "file content", Ref: ref, Message: path + " is a directory"}
	}
	return fileContent.GetContent()
}
