package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repolens/repolens/internal/githost"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/redact"
	"github.com/repolens/repolens/internal/render"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

// AnalyzeInput is the input schema for the analyze_repository MCP tool.
type AnalyzeInput struct {
	Repo       string `json:"repo" jsonschema:"Repository reference: owner/name shorthand or a GitHub URL"`
	Branch     string `json:"branch,omitempty" jsonschema:"Branch to analyze (default: the repository's default branch)"`
	Token      string `json:"token,omitempty" jsonschema:"GitHub token for private repositories and higher rate limits (default: GITHUB_TOKEN or GH_TOKEN from the environment)"`
	Provider   string `json:"provider,omitempty" jsonschema:"Enrichment provider: anthropic or gemini (default: no enrichment)"`
	APIKey     string `json:"api_key,omitempty" jsonschema:"API key for the enrichment provider (default: the provider's environment variable)"`
	Model      string `json:"model,omitempty" jsonschema:"Model override for the enrichment provider"`
	MaxCommits int    `json:"max_commits,omitempty" jsonschema:"Cap on commits fetched (0 = the built-in cap)"`
	MaxFiles   int    `json:"max_files,omitempty" jsonschema:"Cap on files fetched for content analysis (0 = the built-in cap)"`
}

// analyzer runs one analysis. Production uses the pipeline runner; tests
// substitute a stub.
type analyzer interface {
	Run(ctx context.Context, req pipeline.Request, s *stream.Stream) (*report.Report, error)
}

var newAnalyzer = func() analyzer { return pipeline.New() }

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds the repolens tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_repository",
		Description: "Analyze a GitHub repository: metadata, languages, contributors, commit activity, dependency manifests, heuristic security/debt/performance findings, risk hotspots, and health scores. Returns the full report as JSON.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, handleAnalyzeRepository)
}

func handleAnalyzeRepository(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, nil, err
	}

	// Progress goes to the log, never into tool output.
	st := stream.New(&stream.FuncSink{
		OnProgress: func(e stream.Event) {
			slog.Debug("analysis progress", "repo", req.Ref, "step", e.Step, "progress", e.Progress)
		},
	})

	rep, err := newAnalyzer().Run(ctx, req, st)
	if err != nil {
		return nil, nil, errors.New(redact.String(err.Error(), req.Token))
	}

	var buf bytes.Buffer
	if err := render.JSON(&buf, rep); err != nil {
		return nil, nil, fmt.Errorf("rendering failed: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

// buildRequest validates the tool input and assembles the pipeline request.
// The reference is parsed up front so a malformed one fails before any
// remote call.
func buildRequest(input AnalyzeInput) (pipeline.Request, error) {
	if input.Repo == "" {
		return pipeline.Request{}, errors.New("repo is required")
	}
	if _, err := githost.ParseRef(input.Repo); err != nil {
		return pipeline.Request{}, err
	}
	if input.MaxCommits < 0 {
		return pipeline.Request{}, fmt.Errorf("max_commits must be non-negative, got %d", input.MaxCommits)
	}
	if input.MaxFiles < 0 {
		return pipeline.Request{}, fmt.Errorf("max_files must be non-negative, got %d", input.MaxFiles)
	}

	token := input.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}

	req := pipeline.Request{
		Ref:    input.Repo,
		Token:  token,
		Branch: input.Branch,
	}
	if input.MaxCommits > 0 {
		req.HostOptions = append(req.HostOptions, githost.WithMaxCommits(input.MaxCommits))
	}
	if input.MaxFiles > 0 {
		req.HostOptions = append(req.HostOptions, githost.WithMaxFiles(input.MaxFiles))
	}

	if input.Provider != "" {
		if input.Provider != "anthropic" && input.Provider != "gemini" {
			return pipeline.Request{}, fmt.Errorf("unsupported provider %q (supported: anthropic, gemini)", input.Provider)
		}
		req.Enrich = &llm.Config{
			Provider: input.Provider,
			APIKey:   input.APIKey,
			Model:    input.Model,
		}
	}
	return req, nil
}
