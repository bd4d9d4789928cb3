// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/relgate/schema"
)

// GitClient defines the Git operations needed to resolve build signals.
// This allows the signal gathering logic to be tested without needing a real
// git executable.
type GitClient interface {
	// Run executes a git command and returns the output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetCurrentBranch returns the checked-out branch name. Detached HEAD
	// states are reported as an error since no branch name exists.
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)

	// GetHeadCommitMessage returns the full message of the HEAD commit.
	GetHeadCommitMessage(ctx context.Context, repoPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)
}

// HistoryManager defines the interface for managing decision history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetDecisionStore() DecisionStore
}

// DecisionStore defines the interface for decision history storage.
// This allows mocking the store for testing.
type DecisionStore interface {
	// RecordDecision appends one decision to the history and returns its ID.
	RecordDecision(record schema.DecisionRecord) (int64, error)

	// GetRecentDecisions returns up to limit decisions, newest first.
	// A non-positive limit returns all decisions.
	GetRecentDecisions(limit int) ([]schema.DecisionRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
