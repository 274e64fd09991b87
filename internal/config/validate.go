package config

import (
	"fmt"
	"strings"
)

var validOutputFormats = map[string]bool{
	"text": true,
	"json": true,
}

var validProviders = map[string]bool{
	"anthropic": true,
	"gemini":    true,
}

// Validate checks all fields in the config and returns all errors at once.
// Empty fields pass; they mean "use the default".
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" && !validOutputFormats[cfg.OutputFormat] {
		errs = append(errs, fmt.Sprintf("output_format: unknown format %q (must be text or json)", cfg.OutputFormat))
	}

	if cfg.Provider != "" && !validProviders[cfg.Provider] {
		errs = append(errs, fmt.Sprintf("provider: unknown provider %q (must be anthropic or gemini)", cfg.Provider))
	}

	if cfg.MaxCommits < 0 {
		errs = append(errs, fmt.Sprintf("max_commits: must be non-negative, got %d", cfg.MaxCommits))
	}

	if cfg.MaxFiles < 0 {
		errs = append(errs, fmt.Sprintf("max_files: must be non-negative, got %d", cfg.MaxFiles))
	}

	if cfg.MaxFileSize < 0 {
		errs = append(errs, fmt.Sprintf("max_file_size: must be non-negative, got %d", cfg.MaxFileSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
