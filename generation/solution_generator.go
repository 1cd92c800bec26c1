package generation

import (
	"path/filepath"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/emitters"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/filter"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/identity"
)

// SolutionGenerator writes the solution and one project file per relevant assembly.
type SolutionGenerator struct {
	settings *Settings
}

// NewSolutionGenerator creates a SolutionGenerator.
func NewSolutionGenerator(settings *Settings) *SolutionGenerator {
	return &SolutionGenerator{settings: settings}
}

// Name returns "solution".
func (g *SolutionGenerator) Name() string {
	return SolutionGeneratorName
}

// SolutionPath returns the path of the solution.
func (g *SolutionGenerator) SolutionPath() string {
	return filepath.Join(g.settings.outputDirectory, g.settings.projectName+emitters.SolutionExtension)
}

// ProjectFilePath returns the path of an assembly's project file.
func (g *SolutionGenerator) ProjectFilePath(assemblyName string) string {
	return emitters.ProjectFilePath(g.settings.outputDirectory, assemblyName)
}

// Sync writes the solution and the project file of every relevant assembly.
func (g *SolutionGenerator) Sync() error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	stats, err := g.sync()
	if err != nil {
		return err
	}
	return g.settings.publishCompleted(g.Name(), changes.PlanFull, stats)
}

// SyncIfNeeded writes the solution and the project files of the assemblies owning a changed path, if any changed
// path requires it. A process that has not synced yet syncs fully.
func (g *SolutionGenerator) SyncIfNeeded(affectedPaths []string, reimportedPaths []string) error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	plan, stats, err := g.syncIfNeeded(affectedPaths, reimportedPaths)
	if err != nil {
		return err
	}
	return g.settings.publishCompleted(g.Name(), plan, stats)
}

// sync implements Sync. The caller must hold the settings lock.
func (g *SolutionGenerator) sync() (syncStats, error) {
	var stats syncStats
	if err := g.syncAssemblies(g.settings.newFilter(), nil, &stats); err != nil {
		return stats, err
	}
	g.settings.state.MarkSynced(ArtifactSolution, g.settings.userExtensions)
	return stats, nil
}

// syncIfNeeded implements SyncIfNeeded. The caller must hold the settings lock.
func (g *SolutionGenerator) syncIfNeeded(affectedPaths []string, reimportedPaths []string) (changes.Plan, syncStats, error) {
	membership := g.settings.newFilter()
	changeSet := changes.NewDetector(membership, g.settings.host).Evaluate(affectedPaths, reimportedPaths, g.settings.state.IsWarm(ArtifactSolution, g.settings.userExtensions))

	var stats syncStats
	switch changeSet.Plan {
	case changes.PlanNone:
		return changes.PlanNone, stats, nil
	case changes.PlanFull:
		stats, err := g.sync()
		return changes.PlanFull, stats, err
	default:
		err := g.syncAssemblies(membership, changeSet.Assemblies, &stats)
		return changes.PlanPartial, stats, err
	}
}

// syncAssemblies writes the solution and the project files of the relevant assemblies. If only is not nil, project
// files are written only for the assemblies it names.
func (g *SolutionGenerator) syncAssemblies(membership *filter.MembershipFilter, only changes.AssemblyNames, stats *syncStats) error {
	host := g.settings.host
	assemblies := filter.RelevantAssemblies(membership.SelectAssemblies(host))

	if err := g.syncSolution(assemblies, stats); err != nil {
		return err
	}

	ctx := g.projectContext(membership)
	assetParts := emitters.GenerateAssetProjectParts(host.AllAssetPaths(), membership, host.AssemblyNameFromScriptPath, ctx.Paths, ctx.OutputDirectory)
	for _, assembly := range assemblies {
		if only != nil && !only.Has(assembly.Name) {
			continue
		}

		projectFile := emitters.BuildProjectFile(ctx, assembly, g.parseResponseFiles(assembly), assetParts)
		err := g.settings.writeArtifact(ArtifactProjectFile, g.ProjectFilePath(assembly.Name), emitters.RenderProjectFile(projectFile), stats)
		if err != nil {
			return err
		}
	}
	return nil
}

// syncSolution writes the solution listing the given assemblies.
func (g *SolutionGenerator) syncSolution(assemblies []*types.Assembly, stats *syncStats) error {
	allocator := identity.NewAllocator(g.settings.projectName)
	projects := make([]emitters.SolutionProject, len(assemblies))
	for i, assembly := range assemblies {
		projects[i] = emitters.SolutionProject{
			Name:     assembly.Name,
			FileName: emitters.ProjectFileName(assembly.Name),
			TypeGUID: identity.ForSolutionEntry(g.settings.projectName, filter.ExtensionOfSourceFiles(assembly.SourceFiles)),
			GUID:     allocator.ForAssembly(assembly.Name),
		}
	}
	return g.settings.writeArtifact(ArtifactSolution, g.SolutionPath(), emitters.RenderSolution(projects), stats)
}

// projectContext creates the ProjectContext shared by the project files of one sync.
func (g *SolutionGenerator) projectContext(membership *filter.MembershipFilter) *emitters.ProjectContext {
	return &emitters.ProjectContext{
		Identity:        identity.NewAllocator(g.settings.projectName),
		Paths:           g.settings.pathNormalizer(),
		OutputDirectory: g.settings.outputDirectory,
		RootNamespace:   g.settings.rootNamespace,
		HostVersion:     g.settings.hostVersion,
		ShouldInclude:   membership.ShouldInclude,
	}
}

// parseResponseFiles parses the response files of an assembly relative to the project root. A file with parse errors
// is logged and contributes nothing to the project file.
func (g *SolutionGenerator) parseResponseFiles(assembly *types.Assembly) []types.ResponseFileData {
	host := g.settings.host
	systemDirectories := host.SystemAssemblyDirectories(assembly.CompilerOptions.ApiCompatibilityLevel)

	responseFiles := make([]types.ResponseFileData, 0, len(assembly.CompilerOptions.ResponseFiles))
	for _, responseFile := range assembly.CompilerOptions.ResponseFiles {
		data := host.ParseResponseFile(responseFile, g.settings.projectRoot, systemDirectories)
		if len(data.Errors) > 0 {
			for _, parseError := range data.Errors {
				g.settings.logger.Error(responseFile, " Parse Error : ", parseError)
			}
			continue
		}
		responseFiles = append(responseFiles, data)
	}
	return responseFiles
}
