package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/relgate/schema"
)

// DefaultRecentLimit caps how many decisions the recent listing shows unless
// overridden.
const DefaultRecentLimit = 10

// Config holds the runtime configuration for a decision run.
// This struct remains the "final, validated" config.
type Config struct {
	Branch          string // Branch override; empty means resolve from CI env or Git
	BranchPattern   string // Regex the branch must fully match to be releasable
	ComparisonsPath string // Path to the comparison-results JSON file
	VersionFile     string // Path to the version properties file
	RepoPath        string // Git repository used for branch/commit fallback

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Debug bool
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Branch           string `mapstructure:"branch"`
	BranchPattern    string `mapstructure:"branch-pattern"`
	Comparisons      string `mapstructure:"comparisons"`
	VersionFile      string `mapstructure:"version-file"`
	Repo             string `mapstructure:"repo"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Debug            bool   `mapstructure:"debug"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateDecisionInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Debug = input.Debug

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// validateDecisionInputs processes the fields that feed the decision itself.
func validateDecisionInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Branch = strings.TrimSpace(input.Branch)
	cfg.ComparisonsPath = strings.TrimSpace(input.Comparisons)

	cfg.VersionFile = strings.TrimSpace(input.VersionFile)
	if cfg.VersionFile == "" {
		cfg.VersionFile = schema.DefaultVersionFile
	}

	cfg.RepoPath = strings.TrimSpace(input.Repo)
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}

	cfg.BranchPattern = strings.TrimSpace(input.BranchPattern)
	if cfg.BranchPattern == "" {
		return fmt.Errorf("branch-pattern cannot be empty. Use %q to match the usual release branches", schema.DefaultBranchPattern)
	}
	if _, err := schema.CompileBranchPattern(cfg.BranchPattern); err != nil {
		return err
	}

	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
