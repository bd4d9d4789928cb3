package cmd

import (
	"github.com/huangsam/relgate/core"
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/internal/history"
	"github.com/spf13/cobra"
)

// assertCmd focused on CI/CD release gating.
var assertCmd = &cobra.Command{
	Use:   "assert [repo-path]",
	Short: "Gate the pipeline on the release decision (fails build when no release is needed)",
	Long: `Decide whether a release is needed and stop the pipeline when it is not.

Designed specifically for CI/CD integration - exits with a non-zero code when
the decision is "no release needed", so downstream publish stages never run
for builds that have nothing to ship.

A release is skipped when any of these hold, in order:
- SKIP_RELEASE is set in the environment
- the build is for a pull request
- the commit message carries "[ci skip-release]"
- the branch does not fully match the releasable pattern

On a releasable branch, "[ci skip-compare-publications]" forces a release;
otherwise the decision aggregates the per-module comparison results.

Examples:
  # Gate a release stage on artifact changes
  relgate assert --comparisons build/comparisons.json

  # Gate with a custom releasable-branch pattern
  relgate assert --branch-pattern "main|hotfix/.+" --comparisons build/comparisons.json

  # Decide for a checkout that is not the working directory
  relgate assert /path/to/repo --comparisons build/comparisons.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReleaseAssert(rootCtx, cfg, history.Manager); err != nil {
			contract.LogFatal("Release assertion failed", err)
		}
	},
}
