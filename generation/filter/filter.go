package filter

import (
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"golang.org/x/exp/slices"
)

// ScriptingLanguage describes the language a file extension is compiled as, if any.
type ScriptingLanguage int

const (
	// ScriptingLanguageNone describes files that are not compiled.
	ScriptingLanguageNone ScriptingLanguage = iota
	// ScriptingLanguageCSharp describes compiled source files.
	ScriptingLanguageCSharp
)

// builtinSupportedExtensions lists the extensions always included, with the language they are compiled as.
var builtinSupportedExtensions = map[string]ScriptingLanguage{
	"cs":       ScriptingLanguageCSharp,
	"uxml":     ScriptingLanguageNone,
	"uss":      ScriptingLanguageNone,
	"shader":   ScriptingLanguageNone,
	"compute":  ScriptingLanguageNone,
	"cginc":    ScriptingLanguageNone,
	"hlsl":     ScriptingLanguageNone,
	"glslinc":  ScriptingLanguageNone,
	"template": ScriptingLanguageNone,
	"raytrace": ScriptingLanguageNone,
}

// reimportSyncExtensions lists the extensions whose reimport can change the reference graph.
var reimportSyncExtensions = []string{".dll", ".asmdef"}

// noSourceExtension is reported for an assembly without source files.
const noSourceExtension = "NA"

// MembershipFilter decides which files of the host project belong in generated artifacts. Its answers depend only
// on the path, the policy flags and the extension allow-list it was created with.
type MembershipFilter struct {
	// packages resolves the package a path belongs to.
	packages *compilation.PackageCache

	// flags is the generation policy.
	flags config.ProjectGenerationFlag

	// localTarballSupported describes whether local archive packages are subject to the policy.
	localTarballSupported bool

	// userExtensions lists additional supported extensions, without the leading dot.
	userExtensions []string
}

// NewMembershipFilter creates a MembershipFilter. A nil hostVersion targets the newest host.
func NewMembershipFilter(packages *compilation.PackageCache, flags config.ProjectGenerationFlag, hostVersion *config.HostVersion, userExtensions []string) *MembershipFilter {
	return &MembershipFilter{
		packages:              packages,
		flags:                 flags,
		localTarballSupported: hostVersion.SupportsLocalTarball(),
		userExtensions:        append([]string(nil), userExtensions...),
	}
}

// Flags returns the generation policy of the filter.
func (f *MembershipFilter) Flags() config.ProjectGenerationFlag {
	return f.flags
}

// ShouldInclude returns true if the file belongs in generated output: it is not part of an internalized package and
// it has a valid extension.
func (f *MembershipFilter) ShouldInclude(path string) bool {
	if f.IsInternalizedPackagePath(path) {
		return false
	}
	return f.HasValidExtension(path)
}

// IsInternalizedPackagePath returns true if the path belongs to a package whose origin is not opted in.
func (f *MembershipFilter) IsInternalizedPackagePath(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	packageInfo := f.packages.FindForAssetPath(path)
	if packageInfo == nil {
		return false
	}
	return f.IsInternalizedPackage(packageInfo)
}

// IsInternalizedPackage returns true if the policy bit of the package's origin is not set.
func (f *MembershipFilter) IsInternalizedPackage(packageInfo *types.PackageInfo) bool {
	return !f.flags.Has(config.FlagForPackageSource(packageInfo.Source, f.localTarballSupported))
}

// HasValidExtension returns true for binary references, module definitions and supported extensions.
func (f *MembershipFilter) HasValidExtension(path string) bool {
	extension := filepath.Ext(path)

	// Binaries carry no source but still need to be included
	if extension == ".dll" {
		return true
	}
	if strings.HasSuffix(strings.ToLower(path), ".asmdef") {
		return true
	}
	return f.IsSupportedExtension(extension)
}

// IsSupportedExtension returns true if the extension, with or without its leading dot, is built in or allowed by
// the user. Matching is case-sensitive.
func (f *MembershipFilter) IsSupportedExtension(extension string) bool {
	extension = strings.TrimLeft(extension, ".")
	if _, ok := builtinSupportedExtensions[extension]; ok {
		return true
	}
	return slices.Contains(f.userExtensions, extension)
}

// IsNonSourceAsset returns true if the file is listed as a non-compiled item of the assembly it belongs to.
func (f *MembershipFilter) IsNonSourceAsset(path string) bool {
	extension := filepath.Ext(path)
	return f.IsSupportedExtension(extension) && ScriptingLanguageFor(extension) == ScriptingLanguageNone
}

// SelectAssemblies enumerates the assembly set chosen by the policy and keeps the assemblies with at least one
// included source file.
func (f *MembershipFilter) SelectAssemblies(host compilation.Host) []*types.Assembly {
	assembliesType := types.AssembliesTypeEditor
	if f.flags.Has(config.FlagPlayerAssemblies) {
		assembliesType = types.AssembliesTypePlayer
	}

	return utils.SliceWhere(host.Assemblies(assembliesType), func(assembly *types.Assembly) bool {
		return assembly.HasSourceFile(f.ShouldInclude)
	})
}

// ScriptingLanguageFor returns the language of an extension, with or without its leading dot.
func ScriptingLanguageFor(extension string) ScriptingLanguage {
	if language, ok := builtinSupportedExtensions[strings.TrimLeft(extension, ".")]; ok {
		return language
	}
	return ScriptingLanguageNone
}

// ExtensionOfSourceFiles returns the lower-cased extension, without the dot, of the first source file. Returns "NA"
// if there are no source files.
func ExtensionOfSourceFiles(files []string) string {
	if len(files) == 0 {
		return noSourceExtension
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(files[0])), ".")
}

// IsRelevantAssembly returns true if the assembly's first source file is compiled source.
func IsRelevantAssembly(assembly *types.Assembly) bool {
	return ScriptingLanguageFor(ExtensionOfSourceFiles(assembly.SourceFiles)) == ScriptingLanguageCSharp
}

// RelevantAssemblies keeps the assemblies for which IsRelevantAssembly holds, in order.
func RelevantAssemblies(assemblies []*types.Assembly) []*types.Assembly {
	return utils.SliceWhere(assemblies, IsRelevantAssembly)
}

// ShouldSyncOnReimportedAsset returns true if reimporting the file can change the reference graph.
func ShouldSyncOnReimportedAsset(path string) bool {
	return slices.Contains(reimportSyncExtensions, filepath.Ext(path))
}
