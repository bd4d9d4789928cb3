// Package parquet provides data structures and functions for exporting the
// decision audit trail to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/relgate/schema"
	"github.com/parquet-go/parquet-go"
)

// reasonSeparator joins the ordered reason lines into one column value.
const reasonSeparator = "\n"

// DecisionRow represents a single release decision for export.
// This struct maps to the relgate_decisions database table.
type DecisionRow struct {
	// DecisionID is the unique identifier for this decision
	DecisionID int64 `parquet:"decision_id,snappy"`

	// DecidedAt is when the decision was made (stored as TIMESTAMP with nanosecond precision)
	DecidedAt time.Time `parquet:"decided_at,snappy"`

	// Mode is the operating mode that produced the decision (assert or report)
	Mode string `parquet:"mode,snappy"`

	// Branch is the branch the build ran on
	Branch string `parquet:"branch,snappy"`

	// Version is the release version under consideration (nullable)
	Version *string `parquet:"version,optional,snappy"`

	// ReleaseNeeded is the decision outcome
	ReleaseNeeded bool `parquet:"release_needed,snappy"`

	// Reasons holds the ordered reason lines joined by newlines
	Reasons string `parquet:"reasons,snappy"`

	// ModulesTotal is the number of modules in the comparison collection
	ModulesTotal int32 `parquet:"modules_total,snappy"`

	// ModulesChanged is the number of modules whose artifacts changed
	ModulesChanged int32 `parquet:"modules_changed,snappy"`
}

// WriteDecisionsParquet writes a slice of DecisionRow structs to a Parquet file.
func WriteDecisionsParquet(data []DecisionRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DecisionRow struct tags
	writer := parquet.NewGenericWriter[DecisionRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertDecisionRecords converts schema.DecisionRecord to DecisionRow for Parquet export.
func ConvertDecisionRecords(records []schema.DecisionRecord) []DecisionRow {
	result := make([]DecisionRow, len(records))
	for i, record := range records {
		var version *string
		if record.Version != "" {
			v := record.Version
			version = &v
		}
		result[i] = DecisionRow{
			DecisionID:     record.DecisionID,
			DecidedAt:      record.DecidedAt,
			Mode:           record.Mode,
			Branch:         record.Branch,
			Version:        version,
			ReleaseNeeded:  record.ReleaseNeeded,
			Reasons:        strings.Join(record.Reasons, reasonSeparator),
			ModulesTotal:   int32(record.ModulesTotal),
			ModulesChanged: int32(record.ModulesChanged),
		}
	}
	return result
}

// MockFetchDecisions generates sample DecisionRow data for demonstration.
func MockFetchDecisions() []DecisionRow {
	now := time.Now()
	version1 := "2.4.0"
	version2 := "2.4.1"

	return []DecisionRow{
		{
			DecisionID:     1,
			DecidedAt:      now.Add(-48 * time.Hour),
			Mode:           "assert",
			Branch:         "main",
			Version:        &version1,
			ReleaseNeeded:  true,
			Reasons:        "api: artifact differs\ncore: no diff",
			ModulesTotal:   2,
			ModulesChanged: 1,
		},
		{
			DecisionID:     2,
			DecidedAt:      now.Add(-24 * time.Hour),
			Mode:           "report",
			Branch:         "feature/caching",
			Version:        &version2,
			ReleaseNeeded:  false,
			Reasons:        "branch does not match releasable pattern",
			ModulesTotal:   2,
			ModulesChanged: 2,
		},
		{
			DecisionID:     3,
			DecidedAt:      now.Add(-10 * time.Minute),
			Mode:           "assert",
			Branch:         "main",
			Version:        nil, // No version resolved - nullable field
			ReleaseNeeded:  false,
			Reasons:        "no comparison results available",
			ModulesTotal:   0,
			ModulesChanged: 0,
		},
	}
}
