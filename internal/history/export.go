package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/relgate/internal/parquet"
)

// ExecuteHistoryExport exports the recorded decisions to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetDecisionStore()
	if store == nil {
		return errors.New("decision history is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalDecisions == 0 {
		return errors.New("no decision history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total decisions: %d\n", status.TotalDecisions)

	// A non-positive limit retrieves every decision
	decisions, err := store.GetRecentDecisions(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve decisions: %w", err)
	}

	rows := parquet.ConvertDecisionRecords(decisions)

	decisionsFile := outputFile + ".decisions.parquet"
	if err := parquet.WriteDecisionsParquet(rows, decisionsFile); err != nil {
		return fmt.Errorf("failed to write decisions: %w", err)
	}
	fmt.Printf("Exported %d decisions to: %s\n", len(rows), decisionsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
