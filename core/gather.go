package core

import (
	"context"
	"fmt"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
)

// DecisionInput is the finalized snapshot a driver feeds into Decide, plus
// the surrounding metadata the renderers and history store want.
type DecisionInput struct {
	Signals       schema.SkipSignals
	BranchPattern string
	Comparisons   []schema.ComparisonResult
	Provider      schema.CIProvider
	Version       schema.VersionInfo
	CommitMessage string
}

// GatherDecisionInput assembles every decision signal from its provider: the
// CI environment snapshot, the flag overrides, the Git fallback, the
// comparison-results file, and the version source. The engine itself never
// touches any of these; it only sees the returned snapshot.
func GatherDecisionInput(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*DecisionInput, error) {
	ciEnv, err := contract.ReadCIEnv()
	if err != nil {
		return nil, err
	}
	bc := ciEnv.Resolve()

	// Branch resolution: explicit flag, then CI variable, then Git. Only when
	// all three are silent does the run fail.
	branch := cfg.Branch
	if branch == "" {
		branch = bc.Branch
	}
	if branch == "" {
		branch, err = client.GetCurrentBranch(ctx, cfg.RepoPath)
		if err != nil {
			return nil, fmt.Errorf("cannot determine branch under build: %w", err)
		}
	}

	// Commit message resolution is best-effort: a missing message just means
	// no directives, never a failed run.
	message := bc.CommitMessage
	if message == "" {
		message, err = client.GetHeadCommitMessage(ctx, cfg.RepoPath)
		if err != nil {
			contract.LogWarn("reading commit message, directives assumed absent", err)
			message = ""
		}
	}
	skipRelease, skipCompare := contract.ScanCommitDirectives(message)

	comparisons, err := contract.LoadComparisons(cfg.ComparisonsPath)
	if err != nil {
		return nil, err
	}

	return &DecisionInput{
		Signals: schema.SkipSignals{
			ExplicitSkip:                     bc.ExplicitSkip,
			SkipReleaseDirective:             skipRelease,
			SkipComparePublicationsDirective: skipCompare,
			IsPullRequest:                    bc.IsPullRequest,
			BranchName:                       branch,
		},
		BranchPattern: cfg.BranchPattern,
		Comparisons:   comparisons,
		Provider:      bc.Provider,
		Version:       contract.ResolveVersion(cfg.VersionFile),
		CommitMessage: message,
	}, nil
}
