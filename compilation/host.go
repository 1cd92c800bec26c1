package compilation

import "github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"

// Host describes the host build system as seen by project generation. The host owns the compilation graph; every
// method is a read-only query that generation performs at least once per sync.
type Host interface {
	// Assemblies enumerates the assemblies of the requested set.
	Assemblies(assembliesType types.AssembliesType) []*types.Assembly

	// AssemblyNameFromScriptPath returns the file name of the assembly binary (e.g. "Core.dll") the given path
	// belongs to, or an empty string if the path belongs to no assembly.
	AssemblyNameFromScriptPath(path string) string

	// AllAssetPaths enumerates every asset path known to the host, relative to the project root.
	AllAssetPaths() []string

	// FindPackageForAssetPath returns the package mounted at the given asset path, or nil if there is none.
	FindPackageForAssetPath(assetPath string) *types.PackageInfo

	// AllPackages enumerates every package registered with the host.
	AllPackages() []*types.PackageInfo

	// ParseResponseFile parses the compiler response file at responseFilePath. Relative paths are resolved
	// against projectDirectory, unresolved references against systemReferenceDirectories.
	ParseResponseFile(responseFilePath string, projectDirectory string, systemReferenceDirectories []string) types.ResponseFileData

	// SystemAssemblyDirectories returns the directories holding the system assemblies of an API compatibility
	// level.
	SystemAssemblyDirectories(apiCompatibilityLevel string) []string
}
