package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for decision history.
	DatabaseBackend string

	// CIProvider represents the continuous-integration system a build runs on.
	CIProvider string

	// DecisionMode represents the driver that requested a decision.
	DecisionMode string

	// VersionSource represents where the release version was resolved from.
	VersionSource string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All CI providers recognized.
const (
	TravisProvider CIProvider = "travis"
	GitHubProvider CIProvider = "github"
	LocalProvider  CIProvider = "local" // fallback when no CI markers are present
)

// All decision modes supported.
const (
	AssertMode DecisionMode = "assert"
	ReportMode DecisionMode = "report"
	MCPMode    DecisionMode = "mcp"
)

// All version sources supported.
const (
	OverrideVersionSource VersionSource = "override"
	FileVersionSource     VersionSource = "file"
	NoVersionSource       VersionSource = "none"
)

// Commit message markers that steer the release decision.
const (
	SkipReleaseMarker             = "[ci skip-release]"
	SkipComparePublicationsMarker = "[ci skip-compare-publications]"
)

// Environment variables honored outside of prefixed CLI configuration.
const (
	EnvSkipRelease    = "SKIP_RELEASE"    // presence alone requests a skip
	EnvReleaseVersion = "RELEASE_VERSION" // overrides the version file
)

// Keys read from the version properties file.
const (
	VersionKey         = "version"
	PreviousVersionKey = "previousVersion"
)

// DefaultBranchPattern matches the branches most projects release from.
const DefaultBranchPattern = "main|master|release/.+"

// DefaultVersionFile is the conventional version source file name.
const DefaultVersionFile = "version.properties"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDecisionModes lists all valid decision modes.
var ValidDecisionModes = map[DecisionMode]struct{}{
	AssertMode: {},
	ReportMode: {},
	MCPMode:    {},
}
