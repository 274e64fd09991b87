package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		OutputFormat: "json",
		MaxCommits:   100,
		MaxFiles:     500,
		MaxFileSize:  65536,
	}
	require.NoError(t, Validate(cfg))
}

func TestValidate_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Validate(cfg))
}

func TestValidate_UnknownFormat(t *testing.T) {
	cfg := &Config{OutputFormat: "xml"}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")
	assert.Contains(t, err.Error(), "xml")
}

func TestValidate_ValidFormats(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		cfg := &Config{OutputFormat: format}
		assert.NoError(t, Validate(cfg), "output_format=%q should be valid", format)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{Provider: "openai"}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
	assert.Contains(t, err.Error(), "openai")
}

func TestValidate_ValidProviders(t *testing.T) {
	for _, provider := range []string{"anthropic", "gemini"} {
		cfg := &Config{Provider: provider}
		assert.NoError(t, Validate(cfg), "provider=%q should be valid", provider)
	}
}

func TestValidate_NegativeMaxCommits(t *testing.T) {
	cfg := &Config{MaxCommits: -1}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_commits")
}

func TestValidate_NegativeMaxFiles(t *testing.T) {
	cfg := &Config{MaxFiles: -10}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_files")
}

func TestValidate_NegativeMaxFileSize(t *testing.T) {
	cfg := &Config{MaxFileSize: -1}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_file_size")
}

func TestValidate_ZeroCapsValid(t *testing.T) {
	// Zero means "use the default", never an error.
	cfg := &Config{MaxCommits: 0, MaxFiles: 0, MaxFileSize: 0}
	require.NoError(t, Validate(cfg))
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Provider:     "openai",
		OutputFormat: "xml",
		MaxCommits:   -5,
	}
	err := Validate(cfg)
	require.Error(t, err)
	// All errors should be reported.
	assert.Contains(t, err.Error(), "output_format")
	assert.Contains(t, err.Error(), "provider")
	assert.Contains(t, err.Error(), "max_commits")
}
