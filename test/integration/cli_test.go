// Package integration contains end-to-end tests for the repolens CLI.
//
// These tests build the repolens binary and exercise the surface that
// needs no network access: version output, reference validation, flag
// validation, exit codes, and the init/config round trip. Analysis runs
// against the live GitHub API are covered by unit tests with fake
// transports instead.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoRoot returns the repolens repository root directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// test/integration/cli_test.go -> repo root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// buildBinary compiles repolens into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "repolens-test")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/repolens") //nolint:gosec // test helper
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)
	return binary
}

// cleanEnv returns an environment with token variables cleared and the
// global config directory pointed at an empty temp dir, so tests see
// neither the developer's credentials nor their config.
func cleanEnv(t *testing.T) []string {
	t.Helper()
	return append(os.Environ(),
		"XDG_CONFIG_HOME="+t.TempDir(),
		"GITHUB_TOKEN=",
		"GH_TOKEN=",
	)
}

// exitCode extracts the process exit code from an exec error.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "expected the process to exit non-zero")
	return exitErr.ExitCode()
}

func TestCLI_Version(t *testing.T) {
	binary := buildBinary(t)

	out, err := exec.Command(binary, "version").Output() //nolint:gosec // test helper
	require.NoError(t, err)
	assert.Equal(t, "repolens dev", strings.TrimSpace(string(out)))
}

func TestCLI_Help(t *testing.T) {
	binary := buildBinary(t)

	out, err := exec.Command(binary, "--help").CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "help should exit zero")

	for _, sub := range []string{"analyze", "serve", "mcp", "config", "init", "version"} {
		assert.Contains(t, string(out), sub)
	}
}

func TestCLI_InvalidReference(t *testing.T) {
	binary := buildBinary(t)

	cmd := exec.Command(binary, "analyze", "::bogus::") //nolint:gosec // test helper
	cmd.Dir = t.TempDir()
	cmd.Env = cleanEnv(t)
	out, err := cmd.CombinedOutput()

	assert.Equal(t, 1, exitCode(t, err), "bad reference should exit 1")
	assert.Contains(t, string(out), "cannot parse repository reference")
}

func TestCLI_UnknownFormat(t *testing.T) {
	binary := buildBinary(t)

	cmd := exec.Command(binary, "analyze", "acme/widgets", "--format", "yaml") //nolint:gosec // test helper
	cmd.Dir = t.TempDir()
	cmd.Env = cleanEnv(t)
	out, err := cmd.CombinedOutput()

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, string(out), "unknown format")
}

func TestCLI_PlainDirectoryWithoutRemote(t *testing.T) {
	binary := buildBinary(t)

	// Bare analyze falls back to the working directory, which has no
	// origin remote here.
	cmd := exec.Command(binary, "analyze") //nolint:gosec // test helper
	cmd.Dir = t.TempDir()
	cmd.Env = cleanEnv(t)
	out, err := cmd.CombinedOutput()

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, string(out), "also tried as local repository")
}

func TestCLI_InitAndConfigRoundTrip(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	env := cleanEnv(t)

	// init writes the starter config.
	initCmd := exec.Command(binary, "init") //nolint:gosec // test helper
	initCmd.Dir = dir
	initCmd.Env = env
	out, err := initCmd.CombinedOutput()
	require.NoError(t, err, "init failed:\n%s", out)
	assert.Contains(t, string(out), ".repolens.yaml")

	cfgPath := filepath.Join(dir, ".repolens.yaml")
	info, err := os.Stat(cfgPath)
	require.NoError(t, err, "starter config not written")
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "the config file may hold a token")
	}

	// config set updates the repo config.
	setCmd := exec.Command(binary, "config", "set", "output_format", "json") //nolint:gosec // test helper
	setCmd.Dir = dir
	setCmd.Env = env
	out, err = setCmd.CombinedOutput()
	require.NoError(t, err, "config set failed:\n%s", out)
	assert.Contains(t, string(out), "Set output_format = json")

	// config get reads it back.
	getCmd := exec.Command(binary, "config", "get", "output_format") //nolint:gosec // test helper
	getCmd.Dir = dir
	getCmd.Env = env
	out, err = getCmd.Output()
	require.NoError(t, err, "config get failed")
	assert.Equal(t, "json", strings.TrimSpace(string(out)))

	// config list shows the key with its source.
	listCmd := exec.Command(binary, "config", "list") //nolint:gosec // test helper
	listCmd.Dir = dir
	listCmd.Env = env
	out, err = listCmd.Output()
	require.NoError(t, err, "config list failed")
	assert.Contains(t, string(out), "output_format = json")
	assert.Contains(t, string(out), "(repo)")
}

func TestCLI_InitRefusesOverwrite(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	env := cleanEnv(t)

	first := exec.Command(binary, "init") //nolint:gosec // test helper
	first.Dir = dir
	first.Env = env
	out, err := first.CombinedOutput()
	require.NoError(t, err, "first init failed:\n%s", out)

	second := exec.Command(binary, "init") //nolint:gosec // test helper
	second.Dir = dir
	second.Env = env
	out, err = second.CombinedOutput()

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, string(out), "already exists")
}

func TestCLI_ErrorMessages(t *testing.T) {
	binary := buildBinary(t)

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "unknown provider",
			args:       []string{"analyze", "acme/widgets", "--provider", "openai"},
			wantStderr: "unknown provider",
		},
		{
			name:       "negative cap",
			args:       []string{"analyze", "acme/widgets", "--max-commits=-5"},
			wantStderr: "must be non-negative",
		},
		{
			name:       "config get unknown key",
			args:       []string{"config", "get", "no_such_key"},
			wantStderr: "not found",
		},
		{
			name:       "config set unknown key",
			args:       []string{"config", "set", "no_such_key", "1"},
			wantStderr: "unknown key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binary, tt.args...) //nolint:gosec // test helper
			cmd.Dir = t.TempDir()
			cmd.Env = cleanEnv(t)
			out, err := cmd.CombinedOutput()
			assert.Error(t, err, "expected non-zero exit")
			assert.Contains(t, string(out), tt.wantStderr)
		})
	}
}
