package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue_TopLevel(t *testing.T) {
	cfg := &Config{
		OutputFormat: "json",
		MaxCommits:   42,
		Provider:     "anthropic",
	}

	val, err := GetValue(cfg, "output_format")
	require.NoError(t, err)
	assert.Equal(t, "json", val)

	val, err = GetValue(cfg, "max_commits")
	require.NoError(t, err)
	assert.Equal(t, 42, val)

	val, err = GetValue(cfg, "provider")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", val)
}

func TestGetValue_NotFound(t *testing.T) {
	cfg := &Config{}

	_, err := GetValue(cfg, "output_format")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetValue_UnsetFieldOmitted(t *testing.T) {
	// With omitempty, a zero MaxCommits never appears in the map.
	cfg := &Config{Provider: "gemini"}
	_, err := GetValue(cfg, "max_commits")
	assert.Error(t, err)
}

func TestSetValue_Simple(t *testing.T) {
	data := make(map[string]any)
	require.NoError(t, SetValue(data, "output_format", "json"))
	assert.Equal(t, "json", data["output_format"])
}

func TestSetValue_OverwriteExisting(t *testing.T) {
	data := map[string]any{
		"output_format": "text",
	}
	require.NoError(t, SetValue(data, "output_format", "json"))
	assert.Equal(t, "json", data["output_format"])
}

func TestSetValue_CoercesNumbers(t *testing.T) {
	data := make(map[string]any)
	require.NoError(t, SetValue(data, "max_commits", "500"))
	assert.Equal(t, 500, data["max_commits"])
}

func TestSetValue_CreateIntermediateMaps(t *testing.T) {
	// Raw maps can carry nested keys even though Config itself is flat;
	// unknown structure is preserved through read-modify-write cycles.
	data := make(map[string]any)
	require.NoError(t, SetValue(data, "future.nested.key", "500"))

	future := data["future"].(map[string]any)
	nested := future["nested"].(map[string]any)
	assert.Equal(t, 500, nested["key"])
}

func TestSetValue_NonMapParent(t *testing.T) {
	data := map[string]any{
		"output_format": "json",
	}
	err := SetValue(data, "output_format.nested", "val")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a map")
}

func TestFlattenMap_Simple(t *testing.T) {
	m := map[string]any{
		"output_format": "json",
		"max_commits":   50,
	}
	flat := FlattenMap(m, "")
	assert.Equal(t, "json", flat["output_format"])
	assert.Equal(t, 50, flat["max_commits"])
}

func TestFlattenMap_Nested(t *testing.T) {
	m := map[string]any{
		"future": map[string]any{
			"nested": map[string]any{
				"key":     0.5,
				"enabled": true,
			},
		},
	}
	flat := FlattenMap(m, "")
	assert.Equal(t, 0.5, flat["future.nested.key"])
	assert.Equal(t, true, flat["future.nested.enabled"])
	assert.Len(t, flat, 2)
}

func TestFlattenMap_WithPrefix(t *testing.T) {
	m := map[string]any{
		"enabled": true,
	}
	flat := FlattenMap(m, "future.nested")
	assert.Equal(t, true, flat["future.nested.enabled"])
}

func TestFlattenMap_Empty(t *testing.T) {
	flat := FlattenMap(map[string]any{}, "")
	assert.Empty(t, flat)
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"false", false},
		{"42", 42},
		{"0", 0},
		{"-1", -1},
		{"3.14", 3.14},
		{"0.5", 0.5},
		{"hello", "hello"},
		{"json", "json"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := coerceValue(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateKeyPath_TopLevelKeys(t *testing.T) {
	assert.NoError(t, ValidateKeyPath("token"))
	assert.NoError(t, ValidateKeyPath("provider"))
	assert.NoError(t, ValidateKeyPath("model"))
	assert.NoError(t, ValidateKeyPath("output_format"))
	assert.NoError(t, ValidateKeyPath("max_commits"))
	assert.NoError(t, ValidateKeyPath("max_files"))
	assert.NoError(t, ValidateKeyPath("max_file_size"))
	assert.NoError(t, ValidateKeyPath("addr"))
}

func TestValidateKeyPath_UnknownKey(t *testing.T) {
	err := ValidateKeyPath("unknown_key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
	assert.Contains(t, err.Error(), "valid keys")
}

func TestValidateKeyPath_ScalarSubkey(t *testing.T) {
	err := ValidateKeyPath("output_format.nested")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scalar")
}

func TestValidateKeyPath_Empty(t *testing.T) {
	err := ValidateKeyPath("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNavigateMap_NotAMap(t *testing.T) {
	m := map[string]any{
		"foo": "bar",
	}
	_, err := navigateMap(m, "foo.baz")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a map")
}

func TestSortedKeys(t *testing.T) {
	m := map[string]bool{"z": true, "a": true, "m": true}
	result := sortedKeys(m)
	assert.Equal(t, "a, m, z", result)
}
