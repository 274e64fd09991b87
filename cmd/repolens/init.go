// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
)

// Init-specific flag values.
var initForce bool

// initCmd writes a starter configuration file.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter .repolens.yaml",
	Long: `Write a commented starter .repolens.yaml to the given directory
(default: the current directory).

This command is non-destructive by default: it refuses to overwrite an
existing file. Use --force to regenerate it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .repolens.yaml")
}

// starterConfig is the generated .repolens.yaml. Every value is commented
// out except output_format, so a fresh file changes no behavior.
const starterConfig = `# Repolens configuration. Values here apply to runs from this directory;
# a global file at ~/.config/repolens/config.yaml supplies defaults, and
# CLI flags override both. See 'repolens config list'.

# GitHub access token. Prefer the GITHUB_TOKEN environment variable so the
# token stays out of files checked into source control.
#token: ghp_xxxxxxxxxxxx

# Enrichment provider: anthropic or gemini. Unset skips enrichment.
#provider: anthropic

# Override the provider's default model.
#model: claude-sonnet-4-5-20250929

# Report rendering: text or json.
output_format: text

# Fetch caps. Unset means the built-in default.
#max_commits: 200
#max_files: 30
#max_file_size: 102400

# Listen address for 'repolens serve'.
#addr: :8080
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	info, err := cmdFS.Stat(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "repolens: path %q does not exist", dir)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "repolens: %q is not a directory", dir)
	}

	target := filepath.Join(dir, config.FileName)
	if _, err := cmdFS.Stat(target); err == nil && !initForce {
		return exitError(ExitInvalidArgs, "repolens: %s already exists (use --force to overwrite)", target)
	}

	// 0600: the file may come to hold a token.
	if err := cmdFS.WriteFile(target, []byte(starterConfig), 0o600); err != nil {
		return exitError(ExitOutputFailure, "repolens: cannot write %s (%v)", target, err)
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(w, "%s %s\n", green.Sprint("created"), target)
	_, _ = fmt.Fprintln(w, "Review the file, then run: repolens analyze owner/name")
	return nil
}
