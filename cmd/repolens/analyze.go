// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/githost"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/redact"
	"github.com/repolens/repolens/internal/render"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/stream"
)

// Analyze-specific flag values.
var (
	analyzeToken       string
	analyzeProvider    string
	analyzeAPIKey      string
	analyzeModel       string
	analyzeBranch      string
	analyzeFormat      string
	analyzeOutput      string
	analyzeSections    string
	analyzeMaxCommits  int
	analyzeMaxFiles    int
	analyzeMaxFileSize int64
)

// analyzeCmd is the subcommand for analyzing a repository.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repository]",
	Short: "Analyze a GitHub repository and print a report",
	Long: `Analyze a GitHub repository through the REST API, without cloning it.

The repository may be given as owner/name shorthand, as a GitHub URL, or as a
local directory whose origin remote points at GitHub. With no argument the
current directory's origin remote is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeToken, "token", "t", "", "GitHub access token (default: GITHUB_TOKEN or GH_TOKEN env)")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", "", "enrichment provider (anthropic, gemini); empty skips enrichment")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "enrichment API key (default: the provider's env var)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "override the enrichment provider's default model")
	analyzeCmd.Flags().StringVarP(&analyzeBranch, "branch", "b", "", "branch to analyze (default: the repository's default branch)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format (text, json)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeSections, "sections", "", "comma-separated report sections to include (text format only)")
	analyzeCmd.Flags().IntVar(&analyzeMaxCommits, "max-commits", 0, "max commits to fetch (0 = built-in default)")
	analyzeCmd.Flags().IntVar(&analyzeMaxFiles, "max-files", 0, "max files to fetch content for (0 = built-in default)")
	analyzeCmd.Flags().Int64Var(&analyzeMaxFileSize, "max-file-size", 0, "max per-file content size in bytes (0 = built-in default)")
}

// analyzer runs the analysis pipeline. Satisfied by *pipeline.Runner.
type analyzer interface {
	Run(ctx context.Context, req pipeline.Request, s *stream.Stream) (*report.Report, error)
}

// newRunner builds the pipeline runner. Tests swap it for a stub.
var newRunner = func() analyzer { return pipeline.New() }

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	// 1. Resolve the repository reference.
	repoArg := "."
	if len(args) > 0 {
		repoArg = args[0]
	}
	ref, err := githost.ResolveRef(repoArg)
	if err != nil {
		return exitError(ExitInvalidArgs, "repolens: %v", err)
	}

	// 2. Load config files and layer the flags on top.
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	cfg, err := applyAnalyzeFlags(cmd, fileCfg)
	if err != nil {
		return err
	}

	format := cfg.OutputFormat
	if format == "" {
		format = "text"
	}

	// 3. Build the pipeline request.
	token := firstNonEmpty(cfg.Token, os.Getenv("GITHUB_TOKEN"), os.Getenv("GH_TOKEN"))
	req := pipeline.Request{
		Ref:         ref.String(),
		Token:       token,
		Branch:      analyzeBranch,
		HostOptions: hostOptions(cfg),
	}
	if cfg.Provider != "" {
		model := cfg.Model
		// A model named in a config file belongs to that file's provider;
		// it does not carry over when the flag picks a different one.
		if analyzeModel == "" && cfg.Provider != fileCfg.Provider {
			model = ""
		}
		req.Enrich = &llm.Config{
			Provider: cfg.Provider,
			APIKey:   analyzeAPIKey,
			Model:    model,
		}
	}

	// 4. Run the pipeline, printing progress to stderr.
	slog.Info("analyzing", "repo", req.Ref)
	st := stream.New(progressSink(cmd))
	rep, err := newRunner().Run(cmd.Context(), req, st)
	if err != nil {
		return exitError(ExitAnalysisFailure, "repolens: analysis failed (%s)", redact.String(err.Error(), token))
	}

	// 5. Render the report.
	w := cmd.OutOrStdout()
	if analyzeOutput != "" {
		f, createErr := cmdFS.Create(analyzeOutput)
		if createErr != nil {
			return exitError(ExitOutputFailure, "repolens: cannot create output file %q (%v)", analyzeOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	switch format {
	case "json":
		err = render.JSON(w, rep)
	default:
		err = render.Text(w, rep, splitAndTrim(analyzeSections)...)
	}
	if err != nil {
		return exitError(ExitOutputFailure, "repolens: rendering failed (%v)", err)
	}

	slog.Info("analysis complete", "repo", req.Ref, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadFileConfig loads the global config file and the working directory's
// .repolens.yaml and merges them, the repo-local file winning.
func loadFileConfig() (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "repolens: failed to load global config (%v)", err)
	}
	local, err := config.Load(".")
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "repolens: failed to load %s (%v)", config.FileName, err)
	}
	return config.Merge(global, local), nil
}

// applyAnalyzeFlags layers the analyze flags on top of the file config and
// validates the result. The format flag participates only when explicitly
// passed, so a config file's output_format is not shadowed by the flag
// default.
func applyAnalyzeFlags(cmd *cobra.Command, fileCfg *config.Config) (*config.Config, error) {
	cliFormat := ""
	if cmd.Flags().Changed("format") {
		cliFormat = analyzeFormat
	}
	cfg := config.Merge(fileCfg, &config.Config{
		Token:        analyzeToken,
		Provider:     analyzeProvider,
		Model:        analyzeModel,
		OutputFormat: cliFormat,
		MaxCommits:   analyzeMaxCommits,
		MaxFiles:     analyzeMaxFiles,
		MaxFileSize:  analyzeMaxFileSize,
	})
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "repolens: %v", err)
	}
	return cfg, nil
}

// progressSink renders pipeline progress as faint stderr lines. Quiet mode
// drops them; the report itself still goes to stdout.
func progressSink(cmd *cobra.Command) stream.Sink {
	faint := color.New(color.Faint)
	return &stream.FuncSink{
		OnProgress: func(ev stream.Event) {
			if quiet {
				return
			}
			_, _ = faint.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %s\n", ev.Progress, ev.Step)
		},
	}
}

// hostOptions converts the configured caps into host client options. Zero
// caps are omitted so the client's own defaults apply.
func hostOptions(cfg *config.Config) []githost.Option {
	var opts []githost.Option
	if cfg.MaxCommits > 0 {
		opts = append(opts, githost.WithMaxCommits(cfg.MaxCommits))
	}
	if cfg.MaxFiles > 0 {
		opts = append(opts, githost.WithMaxFiles(cfg.MaxFiles))
	}
	if cfg.MaxFileSize > 0 {
		opts = append(opts, githost.WithMaxFileSize(cfg.MaxFileSize))
	}
	return opts
}

// firstNonEmpty returns the first non-empty string in values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitAndTrim splits a comma-separated list and trims whitespace around each
// element. Empty elements are dropped.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
