package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readTestFile is a small helper shared with the decision output tests.
func readTestFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func sampleRecords() []schema.DecisionRecord {
	decidedAt := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	return []schema.DecisionRecord{
		{
			DecisionID:     2,
			DecidedAt:      decidedAt,
			Mode:           "assert",
			Branch:         "main",
			Version:        "1.2.3",
			ReleaseNeeded:  true,
			Reasons:        []string{"api: artifact differs"},
			ModulesTotal:   2,
			ModulesChanged: 1,
		},
		{
			DecisionID:    1,
			DecidedAt:     decidedAt.Add(-time.Hour),
			Mode:          "report",
			Branch:        "feature/x",
			ReleaseNeeded: false,
			Reasons:       []string{"branch does not match releasable pattern"},
		},
	}
}

func TestWriteRecentDecisionsText(t *testing.T) {
	var buf bytes.Buffer

	err := WriteRecentDecisions(&buf, sampleRecords(), textConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "feature/x")
	assert.Contains(t, out, contract.NeededValue)
	assert.Contains(t, out, contract.NotNeededValue)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Showing 2 decisions, newest first")
}

func TestWriteRecentDecisionsTextEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := WriteRecentDecisions(&buf, nil, textConfig())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No decisions recorded yet.")
}

func TestWriteRecentDecisionsJSON(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.JSONOut

	var buf bytes.Buffer
	err := WriteRecentDecisions(&buf, sampleRecords(), cfg)
	require.NoError(t, err)

	var decoded []schema.DecisionRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, int64(2), decoded[0].DecisionID)
	assert.True(t, decoded[0].ReleaseNeeded)
}

func TestWriteRecentDecisionsCSV(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.CSVOut

	var buf bytes.Buffer
	err := WriteRecentDecisions(&buf, sampleRecords(), cfg)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "decision_id", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "2026-08-20T12:30:00Z", rows[1][1])
	assert.Equal(t, "true", rows[1][5])
	assert.Equal(t, "api: artifact differs", rows[1][6])
	assert.Equal(t, "false", rows[2][5])
}
