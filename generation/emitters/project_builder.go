package emitters

import (
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/identity"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
)

// fallbackLangVersion is used when neither a response file nor the host names a language version.
const fallbackLangVersion = "latest"

// baseDefines precede the defines of every assembly.
var baseDefines = []string{"DEBUG", "TRACE"}

// ProjectContext holds the project-wide values needed to resolve a ProjectFile.
type ProjectContext struct {
	// Identity derives project identifiers.
	Identity identity.Allocator

	// Paths resolves relative paths against the project root.
	Paths pathutils.PathNormalizer

	// OutputDirectory is the directory project files are written to. Compile items beneath it are made relative.
	OutputDirectory string

	// RootNamespace is written to every project file.
	RootNamespace string

	// HostVersion gates the use of per-assembly compiler options. Nil targets the newest host.
	HostVersion *config.HostVersion

	// ShouldInclude decides whether a referenced assembly contributes a project reference or a binary reference.
	ShouldInclude func(path string) bool
}

// BuildProjectFile resolves the values of an assembly's project file. responseFiles are the parsed response files
// of the assembly and assetParts maps assembly names to their pre-rendered non-source items.
func BuildProjectFile(ctx *ProjectContext, assembly *types.Assembly, responseFiles []types.ResponseFileData, assetParts map[string]string) *ProjectFile {
	otherArguments := FoldOtherArguments(responseFiles)

	responseDefines := make([]string, 0)
	responseReferences := make([]string, 0)
	allowUnsafe := assembly.CompilerOptions.AllowUnsafeCode
	for _, responseFile := range responseFiles {
		responseDefines = append(responseDefines, responseFile.Defines...)
		responseReferences = append(responseReferences, responseFile.FullPathReferences...)

		// A response file can enable unsafe code but never disable it
		allowUnsafe = allowUnsafe || responseFile.Unsafe
	}

	p := &ProjectFile{
		AssemblyName:  assembly.Name,
		GUID:          ctx.Identity.ForAssembly(assembly.Name),
		RootNamespace: ctx.RootNamespace,
		LangVersion:   resolveLangVersion(ctx, assembly, otherArguments),
		Defines:       utils.SliceDistinct(baseDefines, assembly.Defines, responseDefines),
		AllowUnsafe:   allowUnsafe,
		Analyzers:     resolveAnalyzers(ctx, assembly, otherArguments),
		Rulesets:      resolveRulesets(ctx, assembly, otherArguments),
		AssetItems:    assetParts[assembly.Name],
	}

	p.CompileItems = make([]string, len(assembly.SourceFiles))
	for i, file := range assembly.SourceFiles {
		p.CompileItems[i] = ctx.Paths.EscapedRelativePathFor(file, ctx.OutputDirectory)
	}

	// Referenced assemblies without included sources are referenced through their binary
	internalReferences := make([]string, 0)
	for _, reference := range assembly.AssemblyReferences {
		if !reference.HasSourceFile(ctx.ShouldInclude) {
			internalReferences = append(internalReferences, reference.OutputPath)
		}
	}
	references := utils.SliceDistinct(assembly.CompiledAssemblyReferences, responseReferences, internalReferences)
	p.References = utils.SliceSelect(utils.SliceWhere(references, isNotEmpty), ctx.Paths.MakeAbsolute)

	p.HasAssemblyReferences = len(assembly.AssemblyReferences) > 0
	for _, reference := range assembly.AssemblyReferences {
		if reference.HasSourceFile(ctx.ShouldInclude) {
			p.ProjectReferences = append(p.ProjectReferences, ProjectReference{
				Name: reference.Name,
				GUID: ctx.Identity.ForAssembly(reference.Name),
			})
		}
	}
	return p
}

// resolveLangVersion prefers a response file override, then the host-reported language version, then the fallback.
func resolveLangVersion(ctx *ProjectContext, assembly *types.Assembly, otherArguments ArgumentLookup) string {
	if langVersion := otherArguments.First("langversion"); strings.TrimSpace(langVersion) != "" {
		return langVersion
	}
	if ctx.HostVersion.SupportsCompilerOptions() && strings.TrimSpace(assembly.CompilerOptions.LanguageVersion) != "" {
		return assembly.CompilerOptions.LanguageVersion
	}
	return fallbackLangVersion
}

// resolveAnalyzers collects the analyzer paths of the response files and, on hosts reporting compiler options, of
// the assembly itself.
func resolveAnalyzers(ctx *ProjectContext, assembly *types.Assembly, otherArguments ArgumentLookup) []string {
	analyzers := make([]string, 0)
	for _, key := range []string{"analyzer", "a"} {
		for _, value := range otherArguments.Values(key) {
			analyzers = append(analyzers, strings.Split(value, ";")...)
		}
	}
	analyzers = utils.SliceWhere(analyzers, isNotEmpty)

	if ctx.HostVersion.SupportsCompilerOptions() {
		analyzers = append(analyzers, utils.SliceWhere(assembly.CompilerOptions.RoslynAnalyzerDllPaths, isNotEmpty)...)
		return utils.SliceDistinct(utils.SliceSelect(analyzers, ctx.Paths.MakeAbsolute))
	}
	return utils.SliceSelect(utils.SliceDistinct(analyzers), ctx.Paths.MakeAbsolute)
}

// resolveRulesets collects the rule set paths of the response files and, on hosts reporting compiler options, of
// the assembly itself.
func resolveRulesets(ctx *ProjectContext, assembly *types.Assembly, otherArguments ArgumentLookup) []string {
	rulesets := append([]string(nil), otherArguments.Values("ruleset")...)
	if ctx.HostVersion.SupportsCompilerOptions() {
		rulesets = append(rulesets, assembly.CompilerOptions.RoslynAnalyzerRulesetPath)
	}

	rulesets = utils.SliceDistinct(utils.SliceWhere(rulesets, isNotEmpty))
	return utils.SliceSelect(rulesets, func(path string) string {
		return pathutils.NormalizePath(ctx.Paths.MakeAbsolute(path))
	})
}

// isNotEmpty returns true for non-empty strings.
func isNotEmpty(s string) bool {
	return s != ""
}

// ProjectFileName returns the file name of an assembly's project file.
func ProjectFileName(assemblyName string) string {
	return assemblyName + ProjectFileExtension
}

// ProjectFilePath returns the path of an assembly's project file in the output directory.
func ProjectFilePath(outputDirectory string, assemblyName string) string {
	return filepath.Join(outputDirectory, ProjectFileName(assemblyName))
}
