package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeComparisonsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comparisons.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadComparisonsEmptyPath(t *testing.T) {
	results, err := LoadComparisons("")
	require.NoError(t, err)
	assert.Nil(t, results, "no path means no comparisons, not an error")
}

func TestLoadComparisonsValidFile(t *testing.T) {
	path := writeComparisonsFile(t, `[
		{"module": "api", "changed": true, "description": "artifact differs"},
		{"module": "core", "changed": false, "description": "no diff"}
	]`)

	results, err := LoadComparisons(path)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "api", results[0].ModuleID)
	assert.True(t, results[0].Changed)
	assert.Equal(t, "no diff", results[1].Description)
}

func TestLoadComparisonsEmptyArray(t *testing.T) {
	path := writeComparisonsFile(t, `[]`)

	results, err := LoadComparisons(path)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLoadComparisonsMissingFile(t *testing.T) {
	_, err := LoadComparisons(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err, "an explicitly requested file must exist")
}

func TestLoadComparisonsMalformedJSON(t *testing.T) {
	path := writeComparisonsFile(t, `{"module": "api"}`)

	_, err := LoadComparisons(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected a JSON array")
}

func TestLoadComparisonsBlankModuleID(t *testing.T) {
	path := writeComparisonsFile(t, `[{"module": "  ", "changed": true, "description": "x"}]`)

	_, err := LoadComparisons(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty module id")
}
