package cmd

import (
	"github.com/huangsam/relgate/core"
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/internal/history"
	"github.com/spf13/cobra"
)

// reportCmd focused on informational decision output.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Print the release decision without gating the pipeline",
	Long: `Compute the same release decision the assert command would make, but
always exit successfully.

Use cases:
- Dry runs before wiring the gate into a pipeline
- Diagnosing why a release was (or was not) produced
- Feeding the decision into dashboards via --output json or csv

Examples:
  # Inspect the decision for the current checkout
  relgate report --comparisons build/comparisons.json

  # Machine-readable decision for a dashboard
  relgate report --comparisons build/comparisons.json --output json

  # Decision without any comparison input (signals only)
  relgate report`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReleaseReport(rootCtx, cfg, history.Manager); err != nil {
			contract.LogFatal("Release report failed", err)
		}
	},
}
