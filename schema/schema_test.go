package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidOutputModes(t *testing.T) {
	for _, mode := range []OutputMode{TextOut, JSONOut, CSVOut} {
		_, ok := ValidOutputModes[mode]
		assert.True(t, ok, "output mode %q should be valid", mode)
	}
	_, ok := ValidOutputModes[OutputMode("xml")]
	assert.False(t, ok, "unknown output mode should be invalid")
}

func TestValidDatabaseBackends(t *testing.T) {
	for _, backend := range []DatabaseBackend{SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend} {
		_, ok := ValidDatabaseBackends[backend]
		assert.True(t, ok, "backend %q should be valid", backend)
	}
	_, ok := ValidDatabaseBackends[DatabaseBackend("oracle")]
	assert.False(t, ok, "unknown backend should be invalid")
}

func TestValidDecisionModes(t *testing.T) {
	for _, mode := range []DecisionMode{AssertMode, ReportMode, MCPMode} {
		_, ok := ValidDecisionModes[mode]
		assert.True(t, ok, "decision mode %q should be valid", mode)
	}
}

func TestComparisonResultJSONShape(t *testing.T) {
	// The JSON field names are the contract for comparison input files, so
	// they are pinned here.
	data, err := json.Marshal(ComparisonResult{
		ModuleID:    "core",
		Changed:     true,
		Description: "artifact differs",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"module":"core","changed":true,"description":"artifact differs"}`, string(data))

	var decoded ComparisonResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "core", decoded.ModuleID)
}

func TestDecisionReportJSONShape(t *testing.T) {
	data, err := json.Marshal(DecisionReport{
		ReleaseNeeded: false,
		Reasons:       []string{"explicit skip requested"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"release_needed":false,"reasons":["explicit skip requested"]}`, string(data))
}
