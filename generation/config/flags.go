package config

import (
	"strconv"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/pkg/errors"
)

// ProjectGenerationFlag is the generation policy bitmask. Package origin bits opt packages of that origin into the
// generated output. PlayerAssemblies selects the player assembly set instead of the editor one. OmniSharp enables
// the companion solution.
type ProjectGenerationFlag uint32

const (
	FlagNone             ProjectGenerationFlag = 0x00
	FlagEmbedded         ProjectGenerationFlag = 0x01
	FlagLocal            ProjectGenerationFlag = 0x02
	FlagRegistry         ProjectGenerationFlag = 0x04
	FlagGit              ProjectGenerationFlag = 0x08
	FlagBuiltIn          ProjectGenerationFlag = 0x10
	FlagUnknown          ProjectGenerationFlag = 0x20
	FlagPlayerAssemblies ProjectGenerationFlag = 0x40
	FlagLocalTarBall     ProjectGenerationFlag = 0x80
	FlagOmniSharp        ProjectGenerationFlag = 0x100
)

// flagNames lists every named bit in ascending order.
var flagNames = []struct {
	flag ProjectGenerationFlag
	name string
}{
	{FlagEmbedded, "Embedded"},
	{FlagLocal, "Local"},
	{FlagRegistry, "Registry"},
	{FlagGit, "Git"},
	{FlagBuiltIn, "BuiltIn"},
	{FlagUnknown, "Unknown"},
	{FlagPlayerAssemblies, "PlayerAssemblies"},
	{FlagLocalTarBall, "LocalTarBall"},
	{FlagOmniSharp, "OmniSharp"},
}

// allFlags is the union of every named bit.
const allFlags = FlagEmbedded | FlagLocal | FlagRegistry | FlagGit | FlagBuiltIn | FlagUnknown |
	FlagPlayerAssemblies | FlagLocalTarBall | FlagOmniSharp

// GetFlagNames returns the names of every flag bit in ascending bit order.
func GetFlagNames() []string {
	names := make([]string, len(flagNames))
	for i, entry := range flagNames {
		names[i] = entry.name
	}
	return names
}

// Has returns true if every bit of flag is set.
func (f ProjectGenerationFlag) Has(flag ProjectGenerationFlag) bool {
	return f&flag == flag
}

// Toggle clears flag if it is set and sets it otherwise.
func (f ProjectGenerationFlag) Toggle(flag ProjectGenerationFlag) ProjectGenerationFlag {
	if f.Has(flag) {
		return f ^ flag
	}
	return f | flag
}

// String joins the names of the set bits with "|", or returns "None".
func (f ProjectGenerationFlag) String() string {
	if f == FlagNone {
		return "None"
	}

	names := make([]string, 0, len(flagNames))
	for _, entry := range flagNames {
		if f.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	if rest := f &^ allFlags; rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, "|")
}

// ParseProjectGenerationFlag parses flag names separated by "|" or ",", ignoring case and surrounding space. A
// decimal or 0x-prefixed number is accepted as a raw bitmask. An empty string or "None" parses to FlagNone.
func ParseProjectGenerationFlag(s string) (ProjectGenerationFlag, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return FlagNone, nil
	}
	if raw, err := strconv.ParseUint(trimmed, 0, 32); err == nil {
		return ProjectGenerationFlag(raw), nil
	}

	result := FlagNone
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '|' || r == ','
	})
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if strings.EqualFold(name, "None") {
			continue
		}

		flag, ok := flagForName(name)
		if !ok {
			if raw, err := strconv.ParseUint(name, 0, 32); err == nil {
				result |= ProjectGenerationFlag(raw)
				continue
			}
			return FlagNone, errors.Errorf("unrecognized generation flag '%s' (options: %s)", name, strings.Join(GetFlagNames(), ", "))
		}
		result |= flag
	}
	return result, nil
}

// flagForName returns the bit with the given name, ignoring case.
func flagForName(name string) (ProjectGenerationFlag, bool) {
	for _, entry := range flagNames {
		if strings.EqualFold(entry.name, name) {
			return entry.flag, true
		}
	}
	return FlagNone, false
}

// MarshalText implements encoding.TextMarshaler so the policy serializes by flag names.
func (f ProjectGenerationFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ProjectGenerationFlag) UnmarshalText(text []byte) error {
	parsed, err := ParseProjectGenerationFlag(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FlagForPackageSource returns the bit that opts packages of the given source into generation. LocalTarball only
// has a bit when localTarballSupported is true, otherwise FlagNone is returned and such packages are never
// excluded.
func FlagForPackageSource(source types.PackageSource, localTarballSupported bool) ProjectGenerationFlag {
	switch source {
	case types.PackageSourceEmbedded:
		return FlagEmbedded
	case types.PackageSourceLocal:
		return FlagLocal
	case types.PackageSourceRegistry:
		return FlagRegistry
	case types.PackageSourceGit:
		return FlagGit
	case types.PackageSourceBuiltIn:
		return FlagBuiltIn
	case types.PackageSourceUnknown:
		return FlagUnknown
	case types.PackageSourceLocalTarball:
		if localTarballSupported {
			return FlagLocalTarBall
		}
	}
	return FlagNone
}
