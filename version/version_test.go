package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInfoFormatting verifies the short and long version strings with and without VCS metadata.
func TestInfoFormatting(t *testing.T) {
	clean := Info{Version: "1.2.3", GoVersion: "go1.24.0"}
	assert.Equal(t, "1.2.3", clean.Short())
	assert.Equal(t, "unknown", clean.FormattedTime())
	assert.Equal(t, "idesync version 1.2.3\n  Go version: go1.24.0\n", clean.String())

	dirty := Info{
		Version:       "1.2.3",
		GitCommit:     "0123456789abcdef",
		GitCommitTime: "2026-01-02T03:04:05Z",
		GitTreeDirty:  true,
		GoVersion:     "go1.24.0",
	}
	assert.Equal(t, "0123456", dirty.ShortCommit())
	assert.Equal(t, "1.2.3+0123456-dirty", dirty.Short())
	assert.Equal(t, "2026-01-02 03:04:05 UTC", dirty.FormattedTime())
	assert.True(t, strings.Contains(dirty.String(), "Commit:     0123456-dirty"))

	assert.Equal(t, "not a time", Info{GitCommitTime: "not a time"}.FormattedTime())
}

// TestModuleLine verifies the module path is reported when known.
func TestModuleLine(t *testing.T) {
	info := Info{Version: "0.3.0", Module: "example.com/idesync", GoVersion: "go1.24.0"}
	assert.Equal(t, "idesync version 0.3.0\n  Module:     example.com/idesync\n  Go version: go1.24.0\n", info.String())
}

// TestReleaseVersion verifies only tagged module versions replace the built-in version.
func TestReleaseVersion(t *testing.T) {
	version, ok := releaseVersion("v1.4.2")
	assert.True(t, ok)
	assert.Equal(t, "1.4.2", version)

	_, ok = releaseVersion("(devel)")
	assert.False(t, ok)
	_, ok = releaseVersion("v0.0.0-20260101000000-0123456789ab")
	assert.False(t, ok)
	_, ok = releaseVersion("")
	assert.False(t, ok)
}
