package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() *schema.DecisionRenderModel {
	return &schema.DecisionRenderModel{
		Mode:          schema.AssertMode,
		Provider:      schema.LocalProvider,
		Branch:        "main",
		BranchPattern: schema.DefaultBranchPattern,
		Version: schema.VersionInfo{
			Version: "1.2.3",
			Source:  schema.FileVersionSource,
		},
		Report: schema.DecisionReport{
			ReleaseNeeded: true,
			Reasons:       []string{"api: artifact differs", "core: no diff"},
		},
		Comparisons: []schema.ComparisonResult{
			{ModuleID: "api", Changed: true, Description: "artifact differs"},
			{ModuleID: "core", Changed: false, Description: "no diff"},
		},
	}
}

func textConfig() *contract.Config {
	return &contract.Config{
		Output:         schema.TextOut,
		Width:          120,
		HistoryBackend: schema.NoneBackend,
	}
}

func TestWriteDecisionResultsText(t *testing.T) {
	var buf bytes.Buffer

	err := WriteDecisionResults(&buf, sampleModel(), textConfig(), time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, contract.NeededValue)
	assert.Contains(t, out, `branch "main"`)
	assert.Contains(t, out, "api: artifact differs")
	assert.Contains(t, out, "core: no diff")
	assert.Contains(t, out, "1 of 2 modules changed")
	assert.Contains(t, out, "Version: 1.2.3 (source: file)")
	assert.Contains(t, out, "Provider: local")
}

func TestWriteDecisionResultsTextNotNeeded(t *testing.T) {
	model := sampleModel()
	model.Report = schema.DecisionReport{
		ReleaseNeeded: false,
		Reasons:       []string{"branch does not match releasable pattern"},
	}
	model.Comparisons = nil
	model.Version = schema.VersionInfo{Source: schema.NoVersionSource}

	var buf bytes.Buffer
	err := WriteDecisionResults(&buf, model, textConfig(), time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, contract.NotNeededValue)
	assert.Contains(t, out, "branch does not match releasable pattern")
	assert.NotContains(t, out, "modules changed", "no table without comparisons")
	assert.NotContains(t, out, "Version:", "no version line without a resolved version")
}

func TestWriteDecisionResultsJSON(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.JSONOut

	var buf bytes.Buffer
	err := WriteDecisionResults(&buf, sampleModel(), cfg, time.Millisecond)
	require.NoError(t, err)

	var decoded schema.DecisionRenderModel
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.AssertMode, decoded.Mode)
	assert.Equal(t, "main", decoded.Branch)
	assert.True(t, decoded.Report.ReleaseNeeded)
	assert.Len(t, decoded.Comparisons, 2)
}

func TestWriteDecisionResultsCSV(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.CSVOut

	var buf bytes.Buffer
	err := WriteDecisionResults(&buf, sampleModel(), cfg, time.Millisecond)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header + 2 reasons + 2 comparisons
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"record", "branch", "outcome", "module", "verdict", "detail"}, rows[0])
	assert.Equal(t, "reason", rows[1][0])
	assert.Equal(t, "api: artifact differs", rows[1][5])
	assert.Equal(t, "comparison", rows[3][0])
	assert.Equal(t, "api", rows[3][3])
	assert.Equal(t, contract.ChangedValue, rows[3][4])
	assert.Equal(t, contract.UnchangedValue, rows[4][4])
}

func TestPrintDecisionResultToFile(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = t.TempDir() + "/decision.json"

	err := PrintDecisionResult(sampleModel(), cfg, time.Millisecond)
	require.NoError(t, err)

	data, err := readTestFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded schema.DecisionRenderModel
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "main", decoded.Branch)
}
