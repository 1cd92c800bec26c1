package types

import "github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"

// Assembly describes a compilation unit of the host build system: a named group of source files compiled together.
// Assemblies are supplied by the host and are treated as read-only.
type Assembly struct {
	// Name uniquely identifies the assembly within one sync.
	Name string

	// OutputPath is the path of the binary the host produces for this assembly. It is used as a binary reference
	// when a dependent assembly references this one but none of its sources are part of the generated output.
	OutputPath string

	// SourceFiles lists the source file paths of the assembly, relative to the project root or absolute.
	SourceFiles []string

	// Defines lists the preprocessor symbols the host compiles the assembly with.
	Defines []string

	// AssemblyReferences lists the other assemblies this assembly references.
	AssemblyReferences []*Assembly

	// CompiledAssemblyReferences lists paths of precompiled binaries this assembly references.
	CompiledAssemblyReferences []string

	// CompilerOptions describes the options the host compiles the assembly with.
	CompilerOptions CompilerOptions
}

// HasSourceFile returns true if any source file of the assembly satisfies the provided predicate.
func (a *Assembly) HasSourceFile(predicate func(path string) bool) bool {
	return utils.SliceAny(a.SourceFiles, predicate)
}

// CompilerOptions describes the compiler settings of an Assembly.
type CompilerOptions struct {
	// AllowUnsafeCode describes whether unsafe code blocks are permitted.
	AllowUnsafeCode bool

	// LanguageVersion is the compiler language version the host reports for the assembly.
	LanguageVersion string

	// ResponseFiles lists paths of response files with additional compiler arguments.
	ResponseFiles []string

	// RoslynAnalyzerDllPaths lists analyzer binaries applied to the assembly.
	RoslynAnalyzerDllPaths []string

	// RoslynAnalyzerRulesetPath is the path of the analyzer rule set, if any.
	RoslynAnalyzerRulesetPath string

	// ApiCompatibilityLevel names the API profile, used to look up system reference directories.
	ApiCompatibilityLevel string
}
