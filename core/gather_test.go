package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// resetEnv pins the process environment to a local, non-CI state so gathering
// is deterministic even when the suite runs on a CI provider.
func resetEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TRAVIS", "false")
	t.Setenv("GITHUB_ACTIONS", "false")
	for _, key := range []string{
		"TRAVIS_BRANCH", "TRAVIS_PULL_REQUEST", "TRAVIS_COMMIT_MESSAGE",
		"GITHUB_REF_NAME", "GITHUB_HEAD_REF", "GITHUB_EVENT_NAME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv(schema.EnvSkipRelease, "")
	_ = os.Unsetenv(schema.EnvSkipRelease)
	t.Setenv(schema.EnvReleaseVersion, "")
	_ = os.Unsetenv(schema.EnvReleaseVersion)
}

func testConfig() *contract.Config {
	return &contract.Config{
		BranchPattern: schema.DefaultBranchPattern,
		VersionFile:   "does-not-exist.properties",
		RepoPath:      ".",
	}
}

func TestGatherDecisionInputBranchFlagOverride(t *testing.T) {
	resetEnv(t)

	cfg := testConfig()
	cfg.Branch = "release/2.x"

	client := &contract.MockGitClient{}
	client.On("GetHeadCommitMessage", mock.Anything, mock.Anything).Return("fix: something", nil)

	input, err := GatherDecisionInput(context.Background(), cfg, client)
	require.NoError(t, err)
	assert.Equal(t, "release/2.x", input.Signals.BranchName, "flag override must win over git")
	assert.Equal(t, schema.LocalProvider, input.Provider)
	client.AssertNotCalled(t, "GetCurrentBranch", mock.Anything, mock.Anything)
}

func TestGatherDecisionInputGitFallback(t *testing.T) {
	resetEnv(t)

	client := &contract.MockGitClient{}
	client.On("GetCurrentBranch", mock.Anything, mock.Anything).Return("main", nil)
	client.On("GetHeadCommitMessage", mock.Anything, mock.Anything).Return("feat: ship it [ci skip-release]", nil)

	input, err := GatherDecisionInput(context.Background(), testConfig(), client)
	require.NoError(t, err)
	assert.Equal(t, "main", input.Signals.BranchName)
	assert.True(t, input.Signals.SkipReleaseDirective, "directive parsed from git commit message")
	assert.False(t, input.Signals.SkipComparePublicationsDirective)
	client.AssertExpectations(t)
}

func TestGatherDecisionInputBranchUnresolvable(t *testing.T) {
	resetEnv(t)

	client := &contract.MockGitClient{}
	client.On("GetCurrentBranch", mock.Anything, mock.Anything).Return("", assert.AnError)

	_, err := GatherDecisionInput(context.Background(), testConfig(), client)
	require.Error(t, err, "no flag, no CI variable, no git: the run cannot proceed")
}

func TestGatherDecisionInputCommitMessageBestEffort(t *testing.T) {
	resetEnv(t)

	cfg := testConfig()
	cfg.Branch = "main"

	client := &contract.MockGitClient{}
	client.On("GetHeadCommitMessage", mock.Anything, mock.Anything).Return("", assert.AnError)

	input, err := GatherDecisionInput(context.Background(), cfg, client)
	require.NoError(t, err, "missing commit message is not fatal")
	assert.False(t, input.Signals.SkipReleaseDirective)
	assert.False(t, input.Signals.SkipComparePublicationsDirective)
}

func TestGatherDecisionInputCIEnvWins(t *testing.T) {
	resetEnv(t)
	t.Setenv("TRAVIS", "true")
	t.Setenv("TRAVIS_BRANCH", "main")
	t.Setenv("TRAVIS_PULL_REQUEST", "42")
	t.Setenv("TRAVIS_COMMIT_MESSAGE", "chore: docs [ci skip-compare-publications]")
	t.Setenv(schema.EnvSkipRelease, "1")

	client := &contract.MockGitClient{}

	input, err := GatherDecisionInput(context.Background(), testConfig(), client)
	require.NoError(t, err)
	assert.Equal(t, schema.TravisProvider, input.Provider)
	assert.Equal(t, "main", input.Signals.BranchName)
	assert.True(t, input.Signals.IsPullRequest)
	assert.True(t, input.Signals.ExplicitSkip)
	assert.True(t, input.Signals.SkipComparePublicationsDirective)
	client.AssertNotCalled(t, "GetCurrentBranch", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "GetHeadCommitMessage", mock.Anything, mock.Anything)
}

func TestGatherDecisionInputLoadsComparisons(t *testing.T) {
	resetEnv(t)

	path := filepath.Join(t.TempDir(), "comparisons.json")
	payload := `[{"module":"api","changed":true,"description":"artifact differs"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cfg := testConfig()
	cfg.Branch = "main"
	cfg.ComparisonsPath = path

	client := &contract.MockGitClient{}
	client.On("GetHeadCommitMessage", mock.Anything, mock.Anything).Return("feat: change", nil)

	input, err := GatherDecisionInput(context.Background(), cfg, client)
	require.NoError(t, err)
	require.Len(t, input.Comparisons, 1)
	assert.Equal(t, "api", input.Comparisons[0].ModuleID)
	assert.True(t, input.Comparisons[0].Changed)
}

func TestGatherDecisionInputVersionOverride(t *testing.T) {
	resetEnv(t)
	t.Setenv(schema.EnvReleaseVersion, "3.1.4")

	cfg := testConfig()
	cfg.Branch = "main"

	client := &contract.MockGitClient{}
	client.On("GetHeadCommitMessage", mock.Anything, mock.Anything).Return("feat: change", nil)

	input, err := GatherDecisionInput(context.Background(), cfg, client)
	require.NoError(t, err)
	assert.Equal(t, "3.1.4", input.Version.Version)
	assert.Equal(t, schema.OverrideVersionSource, input.Version.Source)
}
