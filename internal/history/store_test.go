package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DecisionStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "relgate_test.db")
	store, err := NewDecisionStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*DecisionStoreImpl)
}

func sampleRecord(branch string, needed bool) schema.DecisionRecord {
	return schema.DecisionRecord{
		DecidedAt:      time.Now().UTC(),
		Mode:           string(schema.AssertMode),
		Branch:         branch,
		Version:        "1.2.3",
		ReleaseNeeded:  needed,
		Reasons:        []string{"api: artifact differs", "core: no diff"},
		ModulesTotal:   2,
		ModulesChanged: 1,
	}
}

func TestDecisionStore_NoneBackend(t *testing.T) {
	store, err := NewDecisionStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// RecordDecision should return 0 for NoneBackend
	decisionID, err := store.RecordDecision(sampleRecord("main", true))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), decisionID)

	// Reads should not error either
	records, err := store.GetRecentDecisions(10)
	assert.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestDecisionStore_RecordAndRead(t *testing.T) {
	store := newTestStore(t)

	decisionID, err := store.RecordDecision(sampleRecord("main", true))
	require.NoError(t, err)
	assert.Greater(t, decisionID, int64(0))

	records, err := store.GetRecentDecisions(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, decisionID, got.DecisionID)
	assert.Equal(t, string(schema.AssertMode), got.Mode)
	assert.Equal(t, "main", got.Branch)
	assert.Equal(t, "1.2.3", got.Version)
	assert.True(t, got.ReleaseNeeded)
	assert.Equal(t, []string{"api: artifact differs", "core: no diff"}, got.Reasons)
	assert.Equal(t, 2, got.ModulesTotal)
	assert.Equal(t, 1, got.ModulesChanged)
	assert.WithinDuration(t, time.Now().UTC(), got.DecidedAt, time.Minute)
}

func TestDecisionStore_RecentOrderingAndLimit(t *testing.T) {
	store := newTestStore(t)

	branches := []string{"main", "release/1.x", "release/2.x"}
	for _, branch := range branches {
		_, err := store.RecordDecision(sampleRecord(branch, false))
		require.NoError(t, err)
	}

	// Newest first
	records, err := store.GetRecentDecisions(0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "release/2.x", records[0].Branch)
	assert.Equal(t, "main", records[2].Branch)

	// Limit trims from the older end
	records, err = store.GetRecentDecisions(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "release/2.x", records[0].Branch)
	assert.Equal(t, "release/1.x", records[1].Branch)
}

func TestDecisionStore_Status(t *testing.T) {
	store := newTestStore(t)

	// Empty store still reports as connected
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 0, status.TotalDecisions)

	_, err = store.RecordDecision(sampleRecord("main", true))
	require.NoError(t, err)
	_, err = store.RecordDecision(sampleRecord("feature/x", false))
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalDecisions)
	assert.Equal(t, 1, status.ReleasesNeeded)
	assert.False(t, status.LastDecisionTime.IsZero())
	assert.False(t, status.OldestDecisionTime.IsZero())
	assert.False(t, status.LastDecisionTime.Before(status.OldestDecisionTime))
}

func TestDecisionStore_EmptyVersion(t *testing.T) {
	store := newTestStore(t)

	record := sampleRecord("main", true)
	record.Version = ""
	record.Reasons = []string{"release forced: skip-compare-publications directive present"}

	_, err := store.RecordDecision(record)
	require.NoError(t, err)

	records, err := store.GetRecentDecisions(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Version)
	assert.Len(t, records[0].Reasons, 1)
}

func TestDecisionStore_UnsupportedBackend(t *testing.T) {
	_, err := NewDecisionStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
}
