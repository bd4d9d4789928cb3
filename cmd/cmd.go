// Package cmd defines the command-line interface for relgate.
package cmd

import (
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(assertCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("branch", "b", "", "Branch override; empty means resolve from CI env or Git")
	rootCmd.PersistentFlags().String("branch-pattern", schema.DefaultBranchPattern, "Regex a branch must fully match to be releasable")
	rootCmd.PersistentFlags().StringP("comparisons", "c", "", "Path to the comparison-results JSON file")
	rootCmd.PersistentFlags().String("version-file", schema.DefaultVersionFile, "Properties file the release version is read from")
	rootCmd.PersistentFlags().String("repo", "", "Git repository for branch/commit fallback; a positional path wins over this flag")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Bool("debug", false, "Dump the gathered decision input to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyRecentCmd to Viper
	historyRecentCmd.Flags().IntP("limit", "l", contract.DefaultRecentLimit, "Number of decisions to display (0 = all)")
	if err := viper.BindPFlags(historyRecentCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history recent flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
