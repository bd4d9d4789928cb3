package contract

import (
	"os"

	"github.com/huangsam/relgate/schema"
	"github.com/magiconair/properties"
)

// ResolveVersion resolves the version under consideration for release.
// An explicit RELEASE_VERSION in the environment wins over the version file.
// A missing or unreadable file yields an unversioned result rather than an
// error: the decision itself never depends on the version string.
func ResolveVersion(path string) schema.VersionInfo {
	if v := os.Getenv(schema.EnvReleaseVersion); v != "" {
		return schema.VersionInfo{Version: v, Source: schema.OverrideVersionSource}
	}

	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return schema.VersionInfo{Source: schema.NoVersionSource}
	}

	version := props.GetString(schema.VersionKey, "")
	if version == "" {
		return schema.VersionInfo{Source: schema.NoVersionSource}
	}
	return schema.VersionInfo{
		Version:         version,
		PreviousVersion: props.GetString(schema.PreviousVersionKey, ""),
		Source:          schema.FileVersionSource,
	}
}
