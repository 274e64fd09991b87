// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/redact"
	"github.com/repolens/repolens/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr     string
	serveToken    string
	serveProvider string
	serveAPIKey   string
	serveModel    string
)

// serveCmd runs the HTTP analysis server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Start an HTTP server exposing repository analysis at /api/analyze.

The endpoint streams progress as server-sent events and finishes with the
full report. Requests may carry their own token and enrichment settings in
the query string; anything they leave out falls back to the values resolved
here from flags, config files, and the environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: REPOLENS_ADDR env or :8080)")
	serveCmd.Flags().StringVarP(&serveToken, "token", "t", "", "default GitHub access token for requests without one")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "default enrichment provider (anthropic, gemini)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key for the default provider")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "model override for the default provider")
}

// shutdownTimeout bounds how long in-flight analyze runs may hold up exit.
const shutdownTimeout = 5 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	// A .env file in the working directory may hold the token and API keys.
	_ = godotenv.Load()

	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	cfg, err := applyServeFlags(fileCfg)
	if err != nil {
		return err
	}

	addr := firstNonEmpty(cfg.Addr, os.Getenv("REPOLENS_ADDR"), ":8080")
	defaults := server.Defaults{
		Token:       firstNonEmpty(cfg.Token, os.Getenv("GITHUB_TOKEN"), os.Getenv("GH_TOKEN")),
		Provider:    cfg.Provider,
		HostOptions: hostOptions(cfg),
	}
	if defaults.Provider != "" {
		defaults.APIKey = firstNonEmpty(serveAPIKey, os.Getenv(providerKeyEnv(defaults.Provider)))
		defaults.Model = cfg.Model
		// A model named in a config file belongs to that file's provider;
		// it does not carry over when the flag picks a different one.
		if serveModel == "" && defaults.Provider != fileCfg.Provider {
			defaults.Model = ""
		}
	}

	srv := server.New(addr, newRunner(), defaults)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return exitError(ExitAnalysisFailure, "repolens: server failed (%s)", redact.String(err.Error(), defaults.Token))
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	case <-cmd.Context().Done():
		slog.Info("shutting down", "reason", "context canceled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return exitError(ExitAnalysisFailure, "repolens: shutdown failed (%s)", redact.String(err.Error(), defaults.Token))
	}
	return nil
}

// applyServeFlags layers the serve flags on top of the file config and
// validates the result.
func applyServeFlags(fileCfg *config.Config) (*config.Config, error) {
	cfg := config.Merge(fileCfg, &config.Config{
		Token:    serveToken,
		Provider: serveProvider,
		Model:    serveModel,
		Addr:     serveAddr,
	})
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "repolens: %v", err)
	}
	return cfg, nil
}

// providerKeyEnv names the environment variable holding the API key for a
// provider id.
func providerKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
