package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDecisionResult writes a release decision to the configured output
// destination, dispatching based on the output format.
func PrintDecisionResult(model *schema.DecisionRenderModel, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDecisionResults(w, model, cfg, duration)
	}, "Saved decision")
}

// WriteDecisionResults outputs the decision, dispatching based on the output format configured.
func WriteDecisionResults(w io.Writer, model *schema.DecisionRenderModel, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, model); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForDecision(w, model); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable text
		return writeDecisionText(w, model, cfg, duration)
	}
	return nil
}

// writeDecisionText writes the decision as a console summary followed by the
// per-module comparison table.
func writeDecisionText(w io.Writer, model *schema.DecisionRenderModel, cfg *contract.Config, duration time.Duration) error {
	outcome := contract.GetPlainOutcome(model.Report.ReleaseNeeded)
	if cfg.UseColors {
		outcome = contract.GetColorOutcome(model.Report.ReleaseNeeded)
	}

	if _, err := fmt.Fprintf(w, "%s on branch %q\n", outcome, model.Branch); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Reasons:"); err != nil {
		return err
	}
	for _, reason := range model.Report.Reasons {
		if _, err := fmt.Fprintf(w, "  - %s\n", reason); err != nil {
			return err
		}
	}

	if len(model.Comparisons) > 0 {
		if err := writeComparisonTable(w, model.Comparisons, cfg); err != nil {
			return err
		}
	}

	if model.Version.Version != "" {
		if _, err := fmt.Fprintf(w, "Version: %s (source: %s)\n", model.Version.Version, model.Version.Source); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Decision completed in %v. Provider: %s. History backend: %s\n",
		duration, model.Provider, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeComparisonTable renders the per-module comparison verdicts.
func writeComparisonTable(w io.Writer, comparisons []schema.ComparisonResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"#", "Module", "Verdict", "Description"})

	// Keep the rank column right-aligned like the other tables
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight}
	})

	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for i, c := range comparisons {
		verdict := contract.GetPlainChangeLabel(c.Changed)
		if cfg.UseColors {
			verdict = contract.GetColorChangeLabel(c.Changed)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			c.ModuleID,
			verdict,
			contract.TruncateLabel(c.Description, maxLabel),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d modules changed\n", schema.CountChanged(comparisons), len(comparisons))
	return err
}

// writeCSVResultsForDecision writes the decision data to CSV. The first row
// is the decision summary; the per-module rows follow.
func writeCSVResultsForDecision(w io.Writer, model *schema.DecisionRenderModel) error {
	header := []string{
		"record",
		"branch",
		"outcome",
		"module",
		"verdict",
		"detail",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		outcome := contract.GetPlainOutcome(model.Report.ReleaseNeeded)

		// One row per reason so the full reasoning survives the flat format
		for _, reason := range model.Report.Reasons {
			row := []string{"reason", model.Branch, outcome, "", "", reason}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}

		for _, c := range model.Comparisons {
			row := []string{
				"comparison",
				model.Branch,
				outcome,
				c.ModuleID,
				contract.GetPlainChangeLabel(c.Changed),
				c.Description,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
