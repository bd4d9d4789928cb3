// Package schema has the data models and enums shared by all parts of relgate.
package schema

// ComparisonResult is one module's verdict on whether its published artifact
// differs from the previously released one. Results are produced by an
// external comparison subsystem before a decision runs and are never mutated.
type ComparisonResult struct {
	ModuleID    string `json:"module"`      // Identifier of the module, unique within a run
	Changed     bool   `json:"changed"`     // True if the artifact differs from the previous release
	Description string `json:"description"` // Free text explaining the comparison outcome
}

// SkipSignals is the immutable snapshot of external signals that can
// short-circuit a release decision. It is assembled fresh for every run.
type SkipSignals struct {
	ExplicitSkip                     bool   `json:"explicit_skip"`                       // Environment-level override
	SkipReleaseDirective             bool   `json:"skip_release_directive"`              // From commit metadata
	SkipComparePublicationsDirective bool   `json:"skip_compare_publications_directive"` // From commit metadata
	IsPullRequest                    bool   `json:"is_pull_request"`                     // From CI job metadata
	BranchName                       string `json:"branch_name"`                         // Branch under build
}

// DecisionReport is the engine's output: the final outcome plus an ordered
// list of human-readable reasons, one per contributing signal. Reasons are
// never empty.
type DecisionReport struct {
	ReleaseNeeded bool     `json:"release_needed"`
	Reasons       []string `json:"reasons"`
}

// VersionInfo is the release version resolved from the configured version
// source, informational only.
type VersionInfo struct {
	Version         string        `json:"version,omitempty"`
	PreviousVersion string        `json:"previous_version,omitempty"`
	Source          VersionSource `json:"source"`
}

// DecisionRenderModel carries everything the output layer needs to present
// one decision.
type DecisionRenderModel struct {
	Mode          DecisionMode       `json:"mode"`
	Provider      CIProvider         `json:"provider"`
	Branch        string             `json:"branch"`
	BranchPattern string             `json:"branch_pattern"`
	Version       VersionInfo        `json:"version_info"`
	Report        DecisionReport     `json:"report"`
	Comparisons   []ComparisonResult `json:"comparisons,omitempty"`
}
