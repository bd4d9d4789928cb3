package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/huangsam/relgate/schema"
)

// CIEnv is the raw snapshot of CI-related environment variables, read once
// per run.
type CIEnv struct {
	Travis            bool   `env:"TRAVIS"`
	TravisBranch      string `env:"TRAVIS_BRANCH"`
	TravisPullRequest string `env:"TRAVIS_PULL_REQUEST"`
	TravisCommitMsg   string `env:"TRAVIS_COMMIT_MESSAGE"`

	GitHubActions   bool   `env:"GITHUB_ACTIONS"`
	GitHubRefName   string `env:"GITHUB_REF_NAME"`
	GitHubHeadRef   string `env:"GITHUB_HEAD_REF"`
	GitHubEventName string `env:"GITHUB_EVENT_NAME"`

	// SkipRelease is presence-based: an empty value still requests a skip,
	// so it is looked up directly rather than parsed.
	SkipRelease bool `env:"-"`
}

// ReadCIEnv parses the CI environment snapshot from the process environment.
func ReadCIEnv() (*CIEnv, error) {
	var e CIEnv
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse CI environment: %w", err)
	}
	_, e.SkipRelease = os.LookupEnv(schema.EnvSkipRelease)
	return &e, nil
}

// BuildContext is the provider-neutral CI metadata resolved from a CIEnv
// snapshot. Empty fields mean the provider did not supply the value and a
// fallback source (flag or Git) has to fill it in.
type BuildContext struct {
	Provider      schema.CIProvider
	Branch        string
	CommitMessage string
	IsPullRequest bool
	ExplicitSkip  bool
}

// Resolve maps the raw CI variables onto one build context.
func (e *CIEnv) Resolve() BuildContext {
	bc := BuildContext{
		Provider:     schema.LocalProvider,
		ExplicitSkip: e.SkipRelease,
	}
	switch {
	case e.Travis:
		bc.Provider = schema.TravisProvider
		bc.Branch = e.TravisBranch
		bc.CommitMessage = e.TravisCommitMsg
		bc.IsPullRequest = e.TravisPullRequest != "" && e.TravisPullRequest != "false"
	case e.GitHubActions:
		bc.Provider = schema.GitHubProvider
		bc.IsPullRequest = e.GitHubEventName == "pull_request" || e.GitHubEventName == "pull_request_target"
		if bc.IsPullRequest && e.GitHubHeadRef != "" {
			bc.Branch = e.GitHubHeadRef
		} else {
			bc.Branch = e.GitHubRefName
		}
		// Actions has no commit message variable; the Git client fills it in.
	}
	return bc
}

// ScanCommitDirectives reports which release directives are embedded in a
// commit message. Markers are matched as exact substrings anywhere in the
// message, including the body.
func ScanCommitDirectives(message string) (skipRelease bool, skipComparePublications bool) {
	skipRelease = strings.Contains(message, schema.SkipReleaseMarker)
	skipComparePublications = strings.Contains(message, schema.SkipComparePublicationsMarker)
	return skipRelease, skipComparePublications
}
