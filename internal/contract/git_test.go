package contract

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// initTestRepo creates a throwaway git repository with one commit and returns
// its path.
func initTestRepo(t *testing.T, commitMessage string) string {
	t.Helper()
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	commands := [][]string{
		{"init", "--initial-branch", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"commit", "--allow-empty", "-m", commitMessage},
	}
	for _, args := range commands {
		fullArgs := append([]string{"-C", dir}, args...)
		out, err := exec.Command("git", fullArgs...).CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	return dir
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)

	const expectedRepoPath = "/path/to/repo"
	expectedArgs := []string{"log", "-1", "--oneline"}
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	// The Run implementation flattens (ctx, repoPath, args...) into one
	// argument list for m.Called(), so the expectation must match that shape.
	var calledArgs []any
	ctx := context.Background()
	calledArgs = append(calledArgs, ctx, expectedRepoPath)
	for _, arg := range expectedArgs {
		calledArgs = append(calledArgs, arg)
	}

	mockClient.
		On("Run", calledArgs...).
		Return(expectedOutput, expectedError).
		Once()

	actualOutput, actualError := mockClient.Run(ctx, expectedRepoPath, expectedArgs...)

	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client, "NewLocalGitClient should return a LocalGitClient instance")
}

// TestLocalGitClient_Run tests the Run method with various scenarios.
func TestLocalGitClient_Run(t *testing.T) {
	repo := initTestRepo(t, "initial commit")

	client := NewLocalGitClient()
	ctx := context.Background()

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		expectError bool
	}{
		{
			name:        "valid command in valid repo",
			repoPath:    repo,
			args:        []string{"status"},
			expectError: false,
		},
		{
			name:        "invalid repo path",
			repoPath:    "/nonexistent/path",
			args:        []string{"status"},
			expectError: true,
		},
		{
			name:        "invalid git command",
			repoPath:    repo,
			args:        []string{"invalid-command"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.expectError {
				assert.Error(t, err, "Run should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "Run should not return an error for %s", tt.name)
			}
		})
	}
}

// TestLocalGitClient_GetCurrentBranch tests branch resolution.
func TestLocalGitClient_GetCurrentBranch(t *testing.T) {
	repo := initTestRepo(t, "initial commit")

	client := NewLocalGitClient()
	ctx := context.Background()

	branch, err := client.GetCurrentBranch(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	_, err = client.GetCurrentBranch(ctx, t.TempDir())
	assert.Error(t, err, "a plain directory is not a repository")
}

// TestLocalGitClient_GetHeadCommitMessage tests commit message retrieval.
func TestLocalGitClient_GetHeadCommitMessage(t *testing.T) {
	repo := initTestRepo(t, "feat: ship it [ci skip-release]")

	client := NewLocalGitClient()
	ctx := context.Background()

	msg, err := client.GetHeadCommitMessage(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "feat: ship it [ci skip-release]", msg)
}

// TestLocalGitClient_GetRepoHash tests HEAD hash retrieval.
func TestLocalGitClient_GetRepoHash(t *testing.T) {
	repo := initTestRepo(t, "initial commit")

	client := NewLocalGitClient()
	ctx := context.Background()

	hash, err := client.GetRepoHash(ctx, repo)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "full SHA-1 hash expected")
}
