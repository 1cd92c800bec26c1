package types

import (
	"strings"

	"github.com/pkg/errors"
)

// PackageSource describes where a package of the host project comes from.
type PackageSource int

const (
	// PackageSourceUnknown describes a package of unknown origin.
	PackageSourceUnknown PackageSource = iota
	// PackageSourceBuiltIn describes a package shipped with the host.
	PackageSourceBuiltIn
	// PackageSourceEmbedded describes a package living inside the project's package folder.
	PackageSourceEmbedded
	// PackageSourceLocal describes a package referenced from a local folder.
	PackageSourceLocal
	// PackageSourceRegistry describes a package installed from a registry.
	PackageSourceRegistry
	// PackageSourceGit describes a package installed from a git repository.
	PackageSourceGit
	// PackageSourceLocalTarball describes a package installed from a local archive.
	PackageSourceLocalTarball
)

// packageSourceNames maps each PackageSource to its serialized name.
var packageSourceNames = map[PackageSource]string{
	PackageSourceUnknown:      "unknown",
	PackageSourceBuiltIn:      "builtin",
	PackageSourceEmbedded:     "embedded",
	PackageSourceLocal:        "local",
	PackageSourceRegistry:     "registry",
	PackageSourceGit:          "git",
	PackageSourceLocalTarball: "localtarball",
}

// String returns the serialized name of the package source.
func (s PackageSource) String() string {
	if name, ok := packageSourceNames[s]; ok {
		return name
	}
	return packageSourceNames[PackageSourceUnknown]
}

// ParsePackageSource parses a package source name, ignoring case. Returns an error for unrecognized names.
func ParsePackageSource(name string) (PackageSource, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for source, sourceName := range packageSourceNames {
		if sourceName == normalized {
			return source, nil
		}
	}
	return PackageSourceUnknown, errors.Errorf("unrecognized package source '%s'", name)
}

// MarshalText implements encoding.TextMarshaler so package sources serialize by name.
func (s PackageSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so package sources deserialize by name.
func (s *PackageSource) UnmarshalText(text []byte) error {
	source, err := ParsePackageSource(string(text))
	if err != nil {
		return err
	}
	*s = source
	return nil
}

// PackageInfo describes a package of the host project.
type PackageInfo struct {
	// Name is the package identifier, e.g. "com.company.tools".
	Name string

	// DisplayName is the human-readable package name.
	DisplayName string

	// AssetPath is the project-relative path the package is mounted at, e.g. "Packages/com.company.tools".
	AssetPath string

	// ResolvedPath is the absolute path of the package contents on disk.
	ResolvedPath string

	// Source describes where the package comes from.
	Source PackageSource
}
