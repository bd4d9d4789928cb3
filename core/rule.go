// Package core has the release-necessity decision logic.
package core

import (
	"regexp"

	"github.com/huangsam/relgate/schema"
)

// Rule reasons, in precedence order. The first matching signal wins and
// short-circuits everything after it.
const (
	ReasonExplicitSkip     = "explicit skip requested"
	ReasonPullRequest      = "pull request build"
	ReasonSkipRelease      = "skip-release directive present in commit"
	ReasonBranchMismatch   = "branch does not match releasable pattern"
	ReasonBranchReleasable = "branch is releasable"
)

// EvaluateReleasability decides whether the branch itself is eligible for a
// release, independent of any artifact comparison. The pattern must come from
// schema.CompileBranchPattern so matching is anchored to the whole branch name.
func EvaluateReleasability(signals schema.SkipSignals, branchPattern *regexp.Regexp) (bool, string) {
	switch {
	case signals.ExplicitSkip:
		return false, ReasonExplicitSkip
	case signals.IsPullRequest:
		return false, ReasonPullRequest
	case signals.SkipReleaseDirective:
		return false, ReasonSkipRelease
	case !branchPattern.MatchString(signals.BranchName):
		return false, ReasonBranchMismatch
	default:
		return true, ReasonBranchReleasable
	}
}
