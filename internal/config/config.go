// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package config handles .repolens.yaml configuration files.
package config

// Config represents the contents of a .repolens.yaml file. A zero-value
// field means "not set": the CLI flag or built-in default applies.
type Config struct {
	// Token is the GitHub access token. Empty means anonymous access.
	Token string `yaml:"token,omitempty"`
	// Provider is the default enrichment provider id (anthropic, gemini).
	Provider string `yaml:"provider,omitempty"`
	// Model overrides the provider's default model.
	Model string `yaml:"model,omitempty"`
	// OutputFormat selects the CLI report rendering (text, json).
	OutputFormat string `yaml:"output_format,omitempty"`
	// MaxCommits caps how many commits are fetched per run.
	MaxCommits int `yaml:"max_commits,omitempty"`
	// MaxFiles caps how many files get their content fetched per run.
	MaxFiles int `yaml:"max_files,omitempty"`
	// MaxFileSize caps the per-file content size in bytes.
	MaxFileSize int64 `yaml:"max_file_size,omitempty"`
	// Addr is the listen address for the serve command.
	Addr string `yaml:"addr,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".repolens.yaml"
