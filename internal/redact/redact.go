// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error events.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output. Add new entries here as providers gain API integrations.
var sensitiveEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
	"ANTHROPIC_API_KEY",
	"GEMINI_API_KEY",
	"REPOLENS_TOKEN",
}

// minSecretLen guards against redacting values so short they would match
// incidental substrings.
const minSecretLen = 4

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= minSecretLen {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// resetCache resets the cached secrets. Used by tests that change env vars
// between calls.
func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces any occurrence of a known sensitive value with
// "[REDACTED]". Known values are the cached sensitive environment variable
// values plus any extra values the caller passes; tokens supplied in query
// parameters never reach the environment, so callers holding one must pass
// it here. Environment secrets are cached on first call.
func String(s string, extra ...string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	for _, secret := range extra {
		if len(secret) >= minSecretLen {
			s = strings.ReplaceAll(s, secret, "[REDACTED]")
		}
	}
	return s
}
