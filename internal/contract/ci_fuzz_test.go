package contract

import (
	"strings"
	"testing"

	"github.com/huangsam/relgate/schema"
)

// FuzzScanCommitDirectives fuzzes directive scanning with arbitrary commit messages.
func FuzzScanCommitDirectives(f *testing.F) {
	seeds := []string{
		"feat: add caching layer",
		"chore: bump deps [ci skip-release]",
		"docs: typo [ci skip-compare-publications]",
		"both [ci skip-release] and [ci skip-compare-publications]",
		"[ci skip-releases] near miss",
		"",
		"multi\nline\nbody [ci skip-release]",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, message string) {
		skipRelease, skipCompare := ScanCommitDirectives(message)

		// A reported directive must actually be present in the message
		if skipRelease != strings.Contains(message, schema.SkipReleaseMarker) {
			t.Errorf("skipRelease=%v disagrees with message %q", skipRelease, message)
		}
		if skipCompare != strings.Contains(message, schema.SkipComparePublicationsMarker) {
			t.Errorf("skipCompare=%v disagrees with message %q", skipCompare, message)
		}
	})
}
