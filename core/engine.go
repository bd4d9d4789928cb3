package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/relgate/schema"
)

// ErrInvalidInput marks configuration or programmer errors in the decision
// inputs: a malformed branch pattern or duplicate module ids. Callers match
// it with errors.Is.
var ErrInvalidInput = errors.New("invalid decision input")

// Aggregation reasons emitted by Decide in addition to the rule reasons.
const (
	ReasonForcedRelease = "release forced: skip-compare-publications directive present"
	ReasonNoComparisons = "no comparison results available"
)

// Decide combines skip signals, the releasable-branch pattern, and per-module
// comparison results into one release-necessity decision. It is a pure
// function: no I/O, no hidden state, identical inputs yield an identical
// report, and it is safe to call concurrently.
//
// Precedence: an ineligible branch decides "no release" without looking at
// comparisons; the skip-compare-publications directive then forces a release
// on an eligible branch; otherwise the comparisons decide, needing at least
// one changed module. The report's reasons list every signal that contributed,
// in evaluation order, and is never empty.
func Decide(signals schema.SkipSignals, branchPattern string, comparisons []schema.ComparisonResult) (schema.DecisionReport, error) {
	// Inputs are rejected before any rule evaluation or aggregation, so an
	// invalid invocation fails the same way regardless of signal state.
	pattern, err := schema.CompileBranchPattern(branchPattern)
	if err != nil {
		return schema.DecisionReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkDuplicateModules(comparisons); err != nil {
		return schema.DecisionReport{}, err
	}

	eligible, reason := EvaluateReleasability(signals, pattern)
	if !eligible {
		return schema.DecisionReport{ReleaseNeeded: false, Reasons: []string{reason}}, nil
	}

	if signals.SkipComparePublicationsDirective {
		return schema.DecisionReport{ReleaseNeeded: true, Reasons: []string{ReasonForcedRelease}}, nil
	}

	if len(comparisons) == 0 {
		return schema.DecisionReport{ReleaseNeeded: false, Reasons: []string{ReasonNoComparisons}}, nil
	}

	report := schema.DecisionReport{Reasons: make([]string, 0, len(comparisons))}
	for _, c := range comparisons {
		if c.Changed {
			report.ReleaseNeeded = true
		}
		report.Reasons = append(report.Reasons, schema.FormatComparisonReason(c))
	}
	return report, nil
}

// checkDuplicateModules rejects comparison collections that aggregate the
// same module twice.
func checkDuplicateModules(comparisons []schema.ComparisonResult) error {
	seen := make(map[string]struct{}, len(comparisons))
	for _, c := range comparisons {
		if _, ok := seen[c.ModuleID]; ok {
			return fmt.Errorf("%w: duplicate module id %q in comparison results", ErrInvalidInput, c.ModuleID)
		}
		seen[c.ModuleID] = struct{}{}
	}
	return nil
}
