package compilation

import (
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/pkg/errors"
)

// Snapshot is a serialized copy of the host build graph. It lets the generator run outside of the host process:
// the host exports its graph and SnapshotHost serves it back through the Host interface.
type Snapshot struct {
	// EditorAssemblies lists the assemblies compiled for the editor.
	EditorAssemblies []AssemblySnapshot `json:"editorAssemblies" yaml:"editorAssemblies" toml:"editorAssemblies" validate:"unique=Name,dive"`

	// PlayerAssemblies lists the assemblies compiled for player builds.
	PlayerAssemblies []AssemblySnapshot `json:"playerAssemblies" yaml:"playerAssemblies" toml:"playerAssemblies" validate:"unique=Name,dive"`

	// Assets lists every asset path of the project, relative to the project root.
	Assets []string `json:"assets" yaml:"assets" toml:"assets" validate:"dive,required"`

	// Packages lists the packages registered with the host.
	Packages []PackageSnapshot `json:"packages" yaml:"packages" toml:"packages" validate:"unique=AssetPath,dive"`

	// SystemAssemblyDirectories maps an API compatibility level to its system assembly directories.
	SystemAssemblyDirectories map[string][]string `json:"systemAssemblyDirectories" yaml:"systemAssemblyDirectories" toml:"systemAssemblyDirectories"`
}

// AssemblySnapshot is the serialized form of a types.Assembly. References name other assemblies of the same set.
type AssemblySnapshot struct {
	Name                  string   `json:"name" yaml:"name" toml:"name" validate:"required"`
	OutputPath            string   `json:"outputPath" yaml:"outputPath" toml:"outputPath"`
	Directories           []string `json:"directories" yaml:"directories" toml:"directories"`
	SourceFiles           []string `json:"sourceFiles" yaml:"sourceFiles" toml:"sourceFiles" validate:"dive,required"`
	Defines               []string `json:"defines" yaml:"defines" toml:"defines"`
	References            []string `json:"references" yaml:"references" toml:"references"`
	CompiledReferences    []string `json:"compiledReferences" yaml:"compiledReferences" toml:"compiledReferences"`
	AllowUnsafeCode       bool     `json:"allowUnsafeCode" yaml:"allowUnsafeCode" toml:"allowUnsafeCode"`
	LanguageVersion       string   `json:"languageVersion" yaml:"languageVersion" toml:"languageVersion"`
	ResponseFiles         []string `json:"responseFiles" yaml:"responseFiles" toml:"responseFiles"`
	Analyzers             []string `json:"analyzers" yaml:"analyzers" toml:"analyzers"`
	Ruleset               string   `json:"ruleset" yaml:"ruleset" toml:"ruleset"`
	ApiCompatibilityLevel string   `json:"apiCompatibilityLevel" yaml:"apiCompatibilityLevel" toml:"apiCompatibilityLevel"`
}

// PackageSnapshot is the serialized form of a types.PackageInfo.
type PackageSnapshot struct {
	Name         string              `json:"name" yaml:"name" toml:"name" validate:"required"`
	DisplayName  string              `json:"displayName" yaml:"displayName" toml:"displayName"`
	AssetPath    string              `json:"assetPath" yaml:"assetPath" toml:"assetPath" validate:"required,startswith=Packages/"`
	ResolvedPath string              `json:"resolvedPath" yaml:"resolvedPath" toml:"resolvedPath" validate:"required"`
	Source       types.PackageSource `json:"source" yaml:"source" toml:"source"`
}

// snapshotValidator is shared as validator caches struct metadata.
var snapshotValidator = validator.New()

// Validate checks the snapshot for missing names, duplicate assemblies or packages, and references to assemblies
// that do not exist in the same set.
func (s *Snapshot) Validate() error {
	if err := snapshotValidator.Struct(s); err != nil {
		return errors.Wrap(err, "invalid build graph snapshot")
	}

	for setName, assemblies := range map[string][]AssemblySnapshot{"editor": s.EditorAssemblies, "player": s.PlayerAssemblies} {
		names := make(map[string]struct{}, len(assemblies))
		for _, assembly := range assemblies {
			names[assembly.Name] = struct{}{}
		}
		for _, assembly := range assemblies {
			for _, reference := range assembly.References {
				if _, ok := names[reference]; !ok {
					return errors.Errorf("%s assembly '%s' references unknown assembly '%s'", setName, assembly.Name, reference)
				}
			}
		}
	}
	return nil
}

// ReadSnapshotFromFile reads and validates a snapshot. The format is one of GetSupportedSnapshotFormats, or empty
// to infer it from the file extension.
func ReadSnapshotFromFile(path string, format string) (*Snapshot, error) {
	if format == "" {
		inferred, err := SnapshotFormatForPath(path)
		if err != nil {
			return nil, err
		}
		format = inferred
	}
	if !IsSupportedSnapshotFormat(format) {
		return nil, errors.Errorf("snapshot format '%s' is unsupported (options: %v)", format, GetSupportedSnapshotFormats())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	snapshot := &Snapshot{}
	if err = snapshotDecoders[format](b, snapshot); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s snapshot '%s'", format, path)
	}
	if err = snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// sortedKeys returns the keys of a string-keyed map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
