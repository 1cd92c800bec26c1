// Package version reports which build of idesync is running. Values come from ldflags when set, and otherwise from
// the module and VCS metadata the Go toolchain embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver"
)

// Build variables, overridable through -ldflags "-X".
var (
	// Version is the release version. A semantic module version embedded by `go install module@version` replaces it.
	Version = "0.3.0"
	// GitCommit is the revision the binary was built from.
	GitCommit = ""
	// GitCommitTime is the RFC 3339 time of that revision.
	GitCommitTime = ""
	// GitTreeDirty is "true" when the working tree had uncommitted changes.
	GitTreeDirty = ""
)

// Info describes one build.
type Info struct {
	// Version is the release version, without a leading "v".
	Version string
	// Module is the module path of the main package, if known.
	Module string
	// GitCommit is the full revision hash, if known.
	GitCommit string
	// GitCommitTime is the RFC 3339 time of the revision, if known.
	GitCommitTime string
	// GitTreeDirty is set when the build included uncommitted changes.
	GitTreeDirty bool
	// GoVersion is the toolchain the binary was built with.
	GoVersion string
}

// module is the main module path read from the build info.
var module string

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	module = info.Main.Path
	if moduleVersion, ok := releaseVersion(info.Main.Version); ok {
		Version = moduleVersion
	}

	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	fillIfEmpty(&GitCommit, settings["vcs.revision"])
	fillIfEmpty(&GitCommitTime, settings["vcs.time"])
	fillIfEmpty(&GitTreeDirty, settings["vcs.modified"])
}

// fillIfEmpty sets *target to value unless an ldflags value is already present.
func fillIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

// releaseVersion returns the version of a tagged module build. Development builds report "(devel)" and pseudo
// versions carry a prerelease suffix; neither is treated as a release.
func releaseVersion(moduleVersion string) (string, bool) {
	parsed, err := semver.NewVersion(moduleVersion)
	if err != nil || parsed.Prerelease() != "" {
		return "", false
	}
	return parsed.String(), true
}

// GetInfo returns the information of the running build.
func GetInfo() Info {
	return Info{
		Version:       Version,
		Module:        module,
		GitCommit:     GitCommit,
		GitCommitTime: GitCommitTime,
		GitTreeDirty:  GitTreeDirty == "true",
		GoVersion:     runtime.Version(),
	}
}

// ShortCommit returns the abbreviated revision hash.
func (i Info) ShortCommit() string {
	const length = 7
	if len(i.GitCommit) > length {
		return i.GitCommit[:length]
	}
	return i.GitCommit
}

// revision returns the abbreviated revision, marked when the tree was dirty.
func (i Info) revision() string {
	if i.GitTreeDirty {
		return i.ShortCommit() + "-dirty"
	}
	return i.ShortCommit()
}

// FormattedTime returns the revision time in UTC, the raw value if it cannot be parsed, or "unknown".
func (i Info) FormattedTime() string {
	if i.GitCommitTime == "" {
		return "unknown"
	}
	commitTime, err := time.Parse(time.RFC3339, i.GitCommitTime)
	if err != nil {
		return i.GitCommitTime
	}
	return commitTime.UTC().Format("2006-01-02 15:04:05 MST")
}

// String returns the multi-line report printed by the version command.
func (i Info) String() string {
	lines := []string{fmt.Sprintf("idesync version %s", i.Version)}
	if i.Module != "" {
		lines = append(lines, fmt.Sprintf("  Module:     %s", i.Module))
	}
	if i.GitCommit != "" {
		lines = append(lines, fmt.Sprintf("  Commit:     %s", i.revision()))
	}
	if i.GitCommitTime != "" {
		lines = append(lines, fmt.Sprintf("  Built:      %s", i.FormattedTime()))
	}
	lines = append(lines, fmt.Sprintf("  Go version: %s", i.GoVersion))
	return strings.Join(lines, "\n") + "\n"
}

// Short returns the single-line version used for --version, with build metadata appended semver style.
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	return i.Version + "+" + i.revision()
}
