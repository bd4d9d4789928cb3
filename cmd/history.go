package cmd

import (
	"fmt"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/internal/history"
	"github.com/huangsam/relgate/internal/outwriter"
	"github.com/huangsam/relgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the history store with the loaded config
	if err := history.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")
	if colors, err := contract.ParseBoolString(viper.GetString("color")); err == nil {
		cfg.UseColors = colors
	}

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads configuration for migrations without opening the
// store itself, since the migration path manages its own connection.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on decision history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by decision commands. This avoids Git repo access
// and CI environment probing for simple audit operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the release decision audit trail",
	Long: `Manage the audit trail of release decisions.

Every assert or report run appends one row describing the outcome and its
reasons, so teams can answer "why did build N release?" long after the build
logs are gone.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics and connection info
  recent  - List recent decisions
  clear   - Remove all recorded decisions
  export  - Export decisions to a Parquet file
  migrate - Run schema migrations

Examples:
  # Check history status
  relgate history status

  # Inspect the last few decisions
  relgate history recent`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the decision history store.

Displays:
- Backend type and connection status
- Total number of recorded decisions
- How many of them needed a release
- Last and oldest decision timestamps

Examples:
  # Check history status
  relgate history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetDecisionStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyRecentCmd lists recent decisions.
var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent release decisions, newest first",
	Long: `List the most recent release decisions with their outcomes.

Honors the shared output flags, so the listing can be rendered as a console
table, CSV, or JSON.

Examples:
  # Show the last 10 decisions
  relgate history recent

  # Show the last 50 decisions as JSON
  relgate history recent --limit 50 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := history.Manager.GetDecisionStore().GetRecentDecisions(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list recent decisions", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to print recent decisions", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded release decisions",
	Long: `Delete every recorded decision from the configured backend.

Use this when:
- Rotating history after a retention period
- Starting fresh after restructuring the repository's modules
- Removing data from test runs

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the decisions table

Examples:
  # Clear SQLite history (default)
  relgate history clear

  # Clear MySQL history (set connection string via env variable)
  RELGATE_HISTORY_BACKEND=mysql RELGATE_HISTORY_DB_CONNECT="..." relgate history clear`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports the history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded decisions to a Parquet file",
	Long: `Export the full decision history to a Parquet file for analytics.

The output path is taken from --output-file and suffixed with
".decisions.parquet". The resulting file works with Spark, Pandas, DuckDB,
and any other Parquet-compatible tool.

Examples:
  # Export all decisions
  relgate history export --output-file relgate_audit`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the decision history",
	Long: `Apply or roll back schema migrations for the decision history store.

Versions:
  -1 (default) migrates to the latest version
   0 rolls back all migrations
   N migrates to the specific version N

Examples:
  # Migrate to the latest schema
  relgate history migrate

  # Roll everything back
  relgate history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
	},
}
