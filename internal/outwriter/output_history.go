package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/olekukonko/tablewriter"
)

// historyTimeLayout renders audit timestamps at second precision, which is
// enough to order decisions by eye.
const historyTimeLayout = "2006-01-02 15:04:05"

// PrintRecentDecisions writes the recent decision records to the configured
// output destination, dispatching based on the output format.
func PrintRecentDecisions(records []schema.DecisionRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRecentDecisions(w, records, cfg)
	}, "Saved history")
}

// WriteRecentDecisions outputs the decision history, dispatching based on the output format configured.
func WriteRecentDecisions(w io.Writer, records []schema.DecisionRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, records); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForHistory(w, records); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeHistoryTable(w, records, cfg)
	}
	return nil
}

// writeHistoryTable renders the decision history as a console table.
func writeHistoryTable(w io.Writer, records []schema.DecisionRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No decisions recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"ID", "Decided At", "Mode", "Branch", "Version", "Outcome", "Changed"})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, r := range records {
		outcome := contract.GetPlainOutcome(r.ReleaseNeeded)
		if cfg.UseColors {
			outcome = contract.GetColorOutcome(r.ReleaseNeeded)
		}
		data = append(data, []string{
			strconv.FormatInt(r.DecisionID, 10),
			r.DecidedAt.Local().Format(historyTimeLayout),
			r.Mode,
			contract.TruncateLabel(r.Branch, maxLabel),
			r.Version,
			outcome,
			fmt.Sprintf("%d/%d", r.ModulesChanged, r.ModulesTotal),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d decisions, newest first\n", len(records))
	return err
}

// writeCSVResultsForHistory writes the decision history to a CSV writer.
func writeCSVResultsForHistory(w io.Writer, records []schema.DecisionRecord) error {
	header := []string{
		"decision_id",
		"decided_at",
		"mode",
		"branch",
		"version",
		"release_needed",
		"reasons",
		"modules_total",
		"modules_changed",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range records {
			row := []string{
				strconv.FormatInt(r.DecisionID, 10),
				r.DecidedAt.UTC().Format(time.RFC3339),
				r.Mode,
				r.Branch,
				r.Version,
				strconv.FormatBool(r.ReleaseNeeded),
				strings.Join(r.Reasons, "|"),
				strconv.Itoa(r.ModulesTotal),
				strconv.Itoa(r.ModulesChanged),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
