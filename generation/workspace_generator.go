package generation

import (
	"path/filepath"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/emitters"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
)

// WorkspaceGenerator writes the IDE workspace listing the project folders and the packages opted in by the policy.
type WorkspaceGenerator struct {
	settings *Settings

	// solutionReference is the solution path the workspace refers to. Empty omits the reference.
	solutionReference string
}

// NewWorkspaceGenerator creates a WorkspaceGenerator.
func NewWorkspaceGenerator(settings *Settings) *WorkspaceGenerator {
	return &WorkspaceGenerator{settings: settings}
}

// Name returns "workspace".
func (g *WorkspaceGenerator) Name() string {
	return WorkspaceGeneratorName
}

// WorkspacePath returns the path of the workspace.
func (g *WorkspaceGenerator) WorkspacePath() string {
	return filepath.Join(g.settings.outputDirectory, g.settings.projectName+emitters.WorkspaceExtension)
}

// Sync writes the workspace.
func (g *WorkspaceGenerator) Sync() error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	stats, err := g.sync()
	if err != nil {
		return err
	}
	return g.settings.publishCompleted(g.Name(), changes.PlanFull, stats)
}

// SyncIfNeeded writes the workspace if any changed path requires a resync. The workspace is global, so any resync
// rewrites it whole.
func (g *WorkspaceGenerator) SyncIfNeeded(affectedPaths []string, reimportedPaths []string) error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	plan, stats, err := g.syncIfNeeded(affectedPaths, reimportedPaths)
	if err != nil {
		return err
	}
	return g.settings.publishCompleted(g.Name(), plan, stats)
}

// sync implements Sync. The caller must hold the settings lock.
func (g *WorkspaceGenerator) sync() (syncStats, error) {
	var stats syncStats
	membership := g.settings.newFilter()

	// The package list only changes with the policy, which invalidates the cached copy
	packages, ok := g.settings.state.Packages()
	if !ok {
		packages = utils.SliceWhere(g.settings.host.AllPackages(), func(packageInfo *types.PackageInfo) bool {
			return !membership.IsInternalizedPackage(packageInfo)
		})
		g.settings.state.SetPackages(packages)
	}

	err := g.settings.writeArtifact(ArtifactWorkspace, g.WorkspacePath(), emitters.RenderWorkspace(packages, g.solutionReference), &stats)
	if err != nil {
		return stats, err
	}
	g.settings.state.MarkSynced(ArtifactWorkspace, g.settings.userExtensions)
	return stats, nil
}

// syncIfNeeded implements SyncIfNeeded. The caller must hold the settings lock.
func (g *WorkspaceGenerator) syncIfNeeded(affectedPaths []string, reimportedPaths []string) (changes.Plan, syncStats, error) {
	detector := changes.NewDetector(g.settings.newFilter(), g.settings.host)
	if !detector.NeedsResync(affectedPaths, reimportedPaths) {
		return changes.PlanNone, syncStats{}, nil
	}

	plan := changes.PlanPartial
	if !g.settings.state.IsWarm(ArtifactWorkspace, g.settings.userExtensions) {
		plan = changes.PlanFull
	}
	stats, err := g.sync()
	return plan, stats, err
}
