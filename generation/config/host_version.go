package config

import (
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// hostVersionPattern extracts the numeric part of a host version such as "2020.3.14f1".
var hostVersionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Host version constraints gating behavior that only newer hosts provide.
const (
	compilerOptionsConstraint = ">= 2020.2"
	localTarballConstraint    = ">= 2019.3"
)

// HostVersion is the version of the host build system generation targets. A nil HostVersion describes the newest
// host, for which every constraint holds.
type HostVersion struct {
	version *semver.Version
}

// ParseHostVersion parses a host version string. An empty string returns nil, the newest host.
func ParseHostVersion(s string) (*HostVersion, error) {
	if s == "" {
		return nil, nil
	}

	versionStr := hostVersionPattern.FindString(s)
	if versionStr == "" {
		return nil, errors.Errorf("could not parse host version '%s'", s)
	}
	version, err := semver.NewVersion(versionStr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &HostVersion{version: version}, nil
}

// Satisfies returns true if the host version satisfies the semver constraint.
func (h *HostVersion) Satisfies(constraint string) bool {
	if h == nil {
		return true
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(h.version)
}

// SupportsCompilerOptions returns true if the host reports analyzers, rule sets and language versions per assembly.
func (h *HostVersion) SupportsCompilerOptions() bool {
	return h.Satisfies(compilerOptionsConstraint)
}

// SupportsLocalTarball returns true if the host distinguishes packages installed from a local archive.
func (h *HostVersion) SupportsLocalTarball() bool {
	return h.Satisfies(localTarballConstraint)
}

// String returns the parsed version, or "latest" for the newest host.
func (h *HostVersion) String() string {
	if h == nil {
		return "latest"
	}
	return h.version.String()
}
