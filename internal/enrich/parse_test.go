package enrich

import (
	"testing"

	"github.com/repolens/repolens/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoadmap_WrapperForm(t *testing.T) {
	items, err := parseRoadmap(`{"roadmap": [{"title": "Split the engine package", "priority": "high"}]}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Split the engine package", items[0].Title)
	assert.Equal(t, "high", items[0].Priority)
}

func TestParseRoadmap_BareArray(t *testing.T) {
	items, err := parseRoadmap(`[{"title": "Add CI"}, {"title": "Pin dependencies"}]`)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestParseRoadmap_Fenced(t *testing.T) {
	raw := "```json\n{\"roadmap\": [{\"title\": \"Add tests\", \"effort\": \"small\",}]}\n```"
	items, err := parseRoadmap(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Add tests", items[0].Title)
}

func TestParseRoadmap_DropsUntitledItems(t *testing.T) {
	items, err := parseRoadmap(`{"roadmap": [{"title": ""}, {"title": "Real item"}, {"detail": "no title"}]}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Real item", items[0].Title)
}

func TestParseRoadmap_NotJSON(t *testing.T) {
	items, err := parseRoadmap("I suggest you refactor the engine first.")
	assert.Nil(t, items)
	require.Error(t, err)

	var perr *llm.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseRoadmap_WrongShape(t *testing.T) {
	items, err := parseRoadmap(`{"unexpected": true}`)
	assert.Nil(t, items)
	assert.Error(t, err)
}

func TestParseFunctionDocs(t *testing.T) {
	docs, err := parseFunctionDocs(`{"functions": [
		{"name": "Run", "file": "engine.go", "explanation": "Main loop."},
		{"name": "", "explanation": "dropped"},
		{"name": "noExplanation"}
	]}`)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Run", docs[0].Name)
	assert.Equal(t, "engine.go", docs[0].File)
}

func TestParseFunctionDocs_BareArray(t *testing.T) {
	docs, err := parseFunctionDocs(`[{"name": "Run", "explanation": "Main loop."}]`)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestParseComplexityEstimates(t *testing.T) {
	estimates, err := parseComplexityEstimates(`{"estimates": [
		{"name": "Run", "file": "engine.go", "time": "O(n)", "space": "O(1)"},
		{"name": "noTime", "space": "O(1)"}
	]}`)
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.Equal(t, "O(n)", estimates[0].Time)
	assert.Equal(t, "O(1)", estimates[0].Space)
}

func TestParseComplexityEstimates_NotJSON(t *testing.T) {
	estimates, err := parseComplexityEstimates("around O(n^2) probably")
	assert.Nil(t, estimates)
	assert.Error(t, err)
}
