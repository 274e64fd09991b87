package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/config"
)

// resetInitFlags resets all package-level init flags to their default values.
func resetInitFlags() {
	initForce = false
	if f := initCmd.Flags().Lookup("force"); f != nil {
		f.Changed = false
		_ = f.Value.Set("false")
	}
	if h := initCmd.Flags().Lookup("help"); h != nil {
		_ = h.Value.Set("false")
	}
}

func TestInitCmd_CreatesFile(t *testing.T) {
	resetInitFlags()
	dir := t.TempDir()

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir})

	err := cmd.Execute()
	require.NoError(t, err)

	target := filepath.Join(dir, config.FileName)
	assert.FileExists(t, target)
	assert.Contains(t, stdout.String(), "created")

	data, err := os.ReadFile(target) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "output_format: text")
	assert.Contains(t, string(data), "#token:")
}

func TestInitCmd_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	resetInitFlags()
	dir := t.TempDir()

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir})
	require.NoError(t, cmd.Execute())

	info, err := os.Stat(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(),
		"the config file may hold a token")
}

func TestInitCmd_GeneratedFileIsValidConfig(t *testing.T) {
	resetInitFlags()
	dir := t.TempDir()

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Empty(t, cfg.Token, "commented-out values must not be set")
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	resetInitFlags()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.FileName),
		[]byte("output_format: json\n"),
		0o600,
	))

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Existing content stays untouched.
	cfg, loadErr := config.Load(dir)
	require.NoError(t, loadErr)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestInitCmd_Force(t *testing.T) {
	resetInitFlags()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.FileName),
		[]byte("output_format: json\n"),
		0o600,
	))

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir, "--force"})

	err := cmd.Execute()
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat)
}

func TestInitCmd_DefaultPath(t *testing.T) {
	resetInitFlags()
	dir := t.TempDir()
	chdir(t, dir)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.FileName))
}

func TestInitCmd_InvalidPath(t *testing.T) {
	resetInitFlags()

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", "/nonexistent/path/that/does/not/exist"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestInitCmd_PathIsFile(t *testing.T) {
	resetInitFlags()
	tmp := filepath.Join(t.TempDir(), "somefile.txt")
	require.NoError(t, os.WriteFile(tmp, []byte("hello"), 0o600))

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", tmp})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestInitCmd_FlagsRegistered(t *testing.T) {
	f := initCmd.Flags().Lookup("force")
	require.NotNil(t, f, "flag --force not registered")
	assert.Equal(t, "false", f.DefValue)
}

func TestInitCmd_Help(t *testing.T) {
	resetInitFlags()

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"init", "--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "--force")
}
