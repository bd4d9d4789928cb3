package schema

import (
	"fmt"
	"regexp"
)

// CompileBranchPattern compiles a releasable-branch expression. The branch
// name must match the whole expression, never a substring, so the compiled
// form is anchored on both ends. The raw expression is validated first so
// that malformed input is rejected even when anchoring would mask it.
func CompileBranchPattern(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("invalid branch pattern %q: %w", pattern, err)
	}
	return regexp.Compile("^(?:" + pattern + ")$")
}

// FormatComparisonReason renders one comparison result as a report reason line.
func FormatComparisonReason(c ComparisonResult) string {
	return c.ModuleID + ": " + c.Description
}

// CountChanged returns how many comparison results reported a changed artifact.
func CountChanged(comparisons []ComparisonResult) int {
	count := 0
	for _, c := range comparisons {
		if c.Changed {
			count++
		}
	}
	return count
}

// OutcomeLabel returns the human label for a decision outcome.
func OutcomeLabel(releaseNeeded bool) string {
	if releaseNeeded {
		return "release needed"
	}
	return "release not needed"
}
