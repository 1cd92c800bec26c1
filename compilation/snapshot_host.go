package compilation

import (
	"path"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/responsefile"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
)

// SnapshotHost implements Host on top of a Snapshot of the host build graph.
type SnapshotHost struct {
	// assemblies maps each assembly set to its assemblies, in snapshot order.
	assemblies map[types.AssembliesType][]*types.Assembly

	// ownership lists, per assembly set, the directories and source files each assembly owns.
	ownership map[types.AssembliesType][]assemblyOwnership

	// assets lists every asset path of the project.
	assets []string

	// packages lists every registered package, in snapshot order.
	packages []*types.PackageInfo

	// systemAssemblyDirectories maps an API compatibility level to its system assembly directories.
	systemAssemblyDirectories map[string][]string
}

// assemblyOwnership records what an assembly owns for path to assembly-name resolution. Paths are stored
// lower-cased with forward slashes.
type assemblyOwnership struct {
	name        string
	sourceFiles map[string]struct{}
	directories []string
}

// NewSnapshotHost validates the snapshot and builds a SnapshotHost from it.
func NewSnapshotHost(snapshot *Snapshot) (*SnapshotHost, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	host := &SnapshotHost{
		assemblies:                make(map[types.AssembliesType][]*types.Assembly),
		ownership:                 make(map[types.AssembliesType][]assemblyOwnership),
		assets:                    append([]string(nil), snapshot.Assets...),
		packages:                  make([]*types.PackageInfo, 0, len(snapshot.Packages)),
		systemAssemblyDirectories: snapshot.SystemAssemblyDirectories,
	}

	for assembliesType, assemblies := range map[types.AssembliesType][]AssemblySnapshot{
		types.AssembliesTypeEditor: snapshot.EditorAssemblies,
		types.AssembliesTypePlayer: snapshot.PlayerAssemblies,
	} {
		host.assemblies[assembliesType], host.ownership[assembliesType] = buildAssemblySet(assemblies)
	}

	for _, p := range snapshot.Packages {
		host.packages = append(host.packages, &types.PackageInfo{
			Name:         p.Name,
			DisplayName:  p.DisplayName,
			AssetPath:    p.AssetPath,
			ResolvedPath: p.ResolvedPath,
			Source:       p.Source,
		})
	}
	return host, nil
}

// LoadSnapshotHost reads a snapshot file and builds a SnapshotHost from it. See ReadSnapshotFromFile.
func LoadSnapshotHost(path string, format string) (*SnapshotHost, error) {
	snapshot, err := ReadSnapshotFromFile(path, format)
	if err != nil {
		return nil, err
	}
	return NewSnapshotHost(snapshot)
}

// buildAssemblySet converts one assembly set and links assembly references by name. References were validated to
// exist, so every name resolves.
func buildAssemblySet(snapshots []AssemblySnapshot) ([]*types.Assembly, []assemblyOwnership) {
	assemblies := make([]*types.Assembly, len(snapshots))
	byName := make(map[string]*types.Assembly, len(snapshots))
	ownership := make([]assemblyOwnership, len(snapshots))

	for i, s := range snapshots {
		assemblies[i] = &types.Assembly{
			Name:                       s.Name,
			OutputPath:                 s.OutputPath,
			SourceFiles:                append([]string(nil), s.SourceFiles...),
			Defines:                    append([]string(nil), s.Defines...),
			CompiledAssemblyReferences: append([]string(nil), s.CompiledReferences...),
			CompilerOptions: types.CompilerOptions{
				AllowUnsafeCode:           s.AllowUnsafeCode,
				LanguageVersion:           s.LanguageVersion,
				ResponseFiles:             append([]string(nil), s.ResponseFiles...),
				RoslynAnalyzerDllPaths:    append([]string(nil), s.Analyzers...),
				RoslynAnalyzerRulesetPath: s.Ruleset,
				ApiCompatibilityLevel:     s.ApiCompatibilityLevel,
			},
		}
		byName[s.Name] = assemblies[i]

		owned := assemblyOwnership{name: s.Name, sourceFiles: make(map[string]struct{}, len(s.SourceFiles))}
		for _, sourceFile := range s.SourceFiles {
			normalized := normalizeOwnershipPath(sourceFile)
			owned.sourceFiles[normalized] = struct{}{}
			owned.directories = append(owned.directories, path.Dir(normalized))
		}
		for _, directory := range s.Directories {
			owned.directories = append(owned.directories, normalizeOwnershipPath(directory))
		}
		ownership[i] = owned
	}

	for i, s := range snapshots {
		assemblies[i].AssemblyReferences = make([]*types.Assembly, 0, len(s.References))
		for _, reference := range s.References {
			assemblies[i].AssemblyReferences = append(assemblies[i].AssemblyReferences, byName[reference])
		}
	}
	return assemblies, ownership
}

// normalizeOwnershipPath lower-cases a path and converts it to forward slashes without a trailing separator.
func normalizeOwnershipPath(p string) string {
	return strings.TrimSuffix(strings.ToLower(strings.ReplaceAll(p, "\\", "/")), "/")
}

// Assemblies enumerates the assemblies of the requested set.
func (h *SnapshotHost) Assemblies(assembliesType types.AssembliesType) []*types.Assembly {
	return h.assemblies[assembliesType]
}

// AssemblyNameFromScriptPath resolves a path to "<assembly>.dll". A path listed as a source file resolves to its
// assembly. Any other path resolves to the assembly owning the deepest directory containing it. Editor assemblies
// take precedence over player assemblies.
func (h *SnapshotHost) AssemblyNameFromScriptPath(scriptPath string) string {
	normalized := normalizeOwnershipPath(scriptPath)
	if normalized == "" {
		return ""
	}

	sets := []types.AssembliesType{types.AssembliesTypeEditor, types.AssembliesTypePlayer}
	for _, set := range sets {
		for _, owned := range h.ownership[set] {
			if _, ok := owned.sourceFiles[normalized]; ok {
				return owned.name + ".dll"
			}
		}
	}

	bestName, bestLength := "", -1
	for _, set := range sets {
		for _, owned := range h.ownership[set] {
			for _, directory := range owned.directories {
				if len(directory) > bestLength && (directory == "." || strings.HasPrefix(normalized, directory+"/")) {
					bestName, bestLength = owned.name, len(directory)
				}
			}
		}
	}
	if bestName == "" {
		return ""
	}
	return bestName + ".dll"
}

// AllAssetPaths enumerates every asset path of the snapshot.
func (h *SnapshotHost) AllAssetPaths() []string {
	return h.assets
}

// FindPackageForAssetPath returns the package whose asset path equals or contains the given path, ignoring case.
func (h *SnapshotHost) FindPackageForAssetPath(assetPath string) *types.PackageInfo {
	normalized := normalizeOwnershipPath(assetPath)
	for _, p := range h.packages {
		root := normalizeOwnershipPath(p.AssetPath)
		if normalized == root || strings.HasPrefix(normalized, root+"/") {
			return p
		}
	}
	return nil
}

// AllPackages enumerates every package of the snapshot.
func (h *SnapshotHost) AllPackages() []*types.PackageInfo {
	return h.packages
}

// ParseResponseFile parses a response file from disk.
func (h *SnapshotHost) ParseResponseFile(responseFilePath string, projectDirectory string, systemReferenceDirectories []string) types.ResponseFileData {
	return responsefile.Parse(responseFilePath, projectDirectory, systemReferenceDirectories)
}

// SystemAssemblyDirectories returns the system assembly directories recorded for an API compatibility level.
func (h *SnapshotHost) SystemAssemblyDirectories(apiCompatibilityLevel string) []string {
	return h.systemAssemblyDirectories[apiCompatibilityLevel]
}
