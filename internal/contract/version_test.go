package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVersionFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "version.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearVersionEnv(t *testing.T) {
	t.Helper()
	// t.Setenv registers the restore hook; Unsetenv makes the variable truly absent
	t.Setenv(schema.EnvReleaseVersion, "")
	_ = os.Unsetenv(schema.EnvReleaseVersion)
}

func TestResolveVersionFromFile(t *testing.T) {
	clearVersionEnv(t)
	path := writeVersionFile(t, "version=2.4.1\npreviousVersion=2.4.0\n")

	info := ResolveVersion(path)
	assert.Equal(t, "2.4.1", info.Version)
	assert.Equal(t, "2.4.0", info.PreviousVersion)
	assert.Equal(t, schema.FileVersionSource, info.Source)
}

func TestResolveVersionEnvOverride(t *testing.T) {
	path := writeVersionFile(t, "version=2.4.1\n")
	t.Setenv(schema.EnvReleaseVersion, "9.9.9")

	info := ResolveVersion(path)
	assert.Equal(t, "9.9.9", info.Version)
	assert.Equal(t, schema.OverrideVersionSource, info.Source)
	assert.Empty(t, info.PreviousVersion, "override skips the file entirely")
}

func TestResolveVersionMissingFile(t *testing.T) {
	clearVersionEnv(t)

	info := ResolveVersion(filepath.Join(t.TempDir(), "absent.properties"))
	assert.Empty(t, info.Version)
	assert.Equal(t, schema.NoVersionSource, info.Source)
}

func TestResolveVersionFileWithoutVersionKey(t *testing.T) {
	clearVersionEnv(t)
	path := writeVersionFile(t, "previousVersion=1.0.0\n")

	info := ResolveVersion(path)
	assert.Empty(t, info.Version)
	assert.Equal(t, schema.NoVersionSource, info.Source)
}
