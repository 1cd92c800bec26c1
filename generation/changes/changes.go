// Package changes decides how much regeneration a batch of file notifications requires.
package changes

import (
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/filter"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// assemblyBinarySuffix separates an assembly name from the rest of a binary name.
const assemblyBinarySuffix = ".dll"

// PathFilter decides whether a file belongs in generated output.
type PathFilter interface {
	ShouldInclude(path string) bool
}

// AssemblyResolver maps a file path to the binary name of the assembly that owns it, e.g. "Core.dll".
type AssemblyResolver interface {
	AssemblyNameFromScriptPath(path string) string
}

// Plan describes the extent of a regeneration.
type Plan int

const (
	// PlanNone means nothing is regenerated.
	PlanNone Plan = iota
	// PlanFull means every artifact is regenerated.
	PlanFull
	// PlanPartial means the global artifacts are regenerated along with the project files of the affected
	// assemblies.
	PlanPartial
)

// String returns a readable name of the plan.
func (p Plan) String() string {
	switch p {
	case PlanNone:
		return "none"
	case PlanFull:
		return "full"
	case PlanPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// AssemblyNames is a set of assembly names.
type AssemblyNames map[string]struct{}

// Has returns true if the set contains the name.
func (n AssemblyNames) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Sorted returns the names in lexical order.
func (n AssemblyNames) Sorted() []string {
	names := maps.Keys(n)
	slices.Sort(names)
	return names
}

// ChangeSet is the outcome of evaluating a batch of notifications.
type ChangeSet struct {
	// Plan is the extent of the regeneration.
	Plan Plan

	// Assemblies names the assemblies whose project files are regenerated by a partial plan. It is empty for other
	// plans.
	Assemblies AssemblyNames
}

// Detector evaluates batches of affected and reimported paths.
type Detector struct {
	paths    PathFilter
	resolver AssemblyResolver
}

// NewDetector creates a Detector.
func NewDetector(paths PathFilter, resolver AssemblyResolver) *Detector {
	return &Detector{paths: paths, resolver: resolver}
}

// NeedsResync returns true if any affected path is included in generated output, or if any reimported path can
// change the reference graph.
func (d *Detector) NeedsResync(affectedPaths []string, reimportedPaths []string) bool {
	for _, path := range affectedPaths {
		if d.paths.ShouldInclude(path) {
			return true
		}
	}
	for _, path := range reimportedPaths {
		if filter.ShouldSyncOnReimportedAsset(path) {
			return true
		}
	}
	return false
}

// AffectedAssemblyNames resolves every affected and reimported path to the name of its owning assembly. Paths
// owned by no assembly are skipped.
func (d *Detector) AffectedAssemblyNames(affectedPaths []string, reimportedPaths []string) AssemblyNames {
	names := make(AssemblyNames)
	for _, paths := range [][]string{affectedPaths, reimportedPaths} {
		for _, path := range paths {
			if name, ok := AssemblyNameFromBinaryName(d.resolver.AssemblyNameFromScriptPath(path)); ok {
				names[name] = struct{}{}
			}
		}
	}
	return names
}

// Evaluate plans the regeneration of a batch. warm reports whether a full sync already happened in this process;
// without one, any needed regeneration is full.
func (d *Detector) Evaluate(affectedPaths []string, reimportedPaths []string, warm bool) ChangeSet {
	if !d.NeedsResync(affectedPaths, reimportedPaths) {
		return ChangeSet{Plan: PlanNone, Assemblies: AssemblyNames{}}
	}
	if !warm {
		return ChangeSet{Plan: PlanFull, Assemblies: AssemblyNames{}}
	}
	return ChangeSet{Plan: PlanPartial, Assemblies: d.AffectedAssemblyNames(affectedPaths, reimportedPaths)}
}

// AssemblyNameFromBinaryName extracts the assembly name from a binary name such as "Core.dll": the first non-empty
// part left when splitting on ".dll". The boolean is false for blank names.
func AssemblyNameFromBinaryName(binaryName string) (string, bool) {
	if strings.TrimSpace(binaryName) == "" {
		return "", false
	}
	for _, part := range strings.Split(binaryName, assemblyBinarySuffix) {
		if part != "" {
			return part, true
		}
	}
	return "", false
}
