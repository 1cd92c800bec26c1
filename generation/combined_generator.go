package generation

import (
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
)

// CombinedGenerator always writes the workspace. When the policy enables the companion solution, it first runs a
// SolutionGenerator and makes the workspace refer to its solution.
type CombinedGenerator struct {
	settings  *Settings
	solution  *SolutionGenerator
	workspace *WorkspaceGenerator
}

// NewCombinedGenerator creates a CombinedGenerator whose generators share the given settings.
func NewCombinedGenerator(settings *Settings) *CombinedGenerator {
	return &CombinedGenerator{
		settings:  settings,
		solution:  NewSolutionGenerator(settings),
		workspace: NewWorkspaceGenerator(settings),
	}
}

// Name returns "combined".
func (g *CombinedGenerator) Name() string {
	return CombinedGeneratorName
}

// Solution returns the generator of the companion solution.
func (g *CombinedGenerator) Solution() *SolutionGenerator {
	return g.solution
}

// Workspace returns the generator of the workspace.
func (g *CombinedGenerator) Workspace() *WorkspaceGenerator {
	return g.workspace
}

// Sync writes every artifact.
func (g *CombinedGenerator) Sync() error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	var stats syncStats
	if g.companionSolutionEnabled() {
		solutionStats, err := g.solution.sync()
		if err != nil {
			return err
		}
		stats.add(solutionStats)
		g.workspace.solutionReference = g.solution.SolutionPath()
	} else {
		g.workspace.solutionReference = ""
	}

	workspaceStats, err := g.workspace.sync()
	if err != nil {
		return err
	}
	stats.add(workspaceStats)
	return g.settings.publishCompleted(g.Name(), changes.PlanFull, stats)
}

// SyncIfNeeded passes the changed paths to the solution generator, if enabled, and then to the workspace generator.
func (g *CombinedGenerator) SyncIfNeeded(affectedPaths []string, reimportedPaths []string) error {
	g.settings.lock.Lock()
	defer g.settings.lock.Unlock()

	var stats syncStats
	plan := changes.PlanNone
	if g.companionSolutionEnabled() {
		solutionPlan, solutionStats, err := g.solution.syncIfNeeded(affectedPaths, reimportedPaths)
		if err != nil {
			return err
		}
		plan = solutionPlan
		stats.add(solutionStats)
		g.workspace.solutionReference = g.solution.SolutionPath()
	} else {
		g.workspace.solutionReference = ""
	}

	workspacePlan, workspaceStats, err := g.workspace.syncIfNeeded(affectedPaths, reimportedPaths)
	if err != nil {
		return err
	}
	stats.add(workspaceStats)
	return g.settings.publishCompleted(g.Name(), widerPlan(plan, workspacePlan), stats)
}

// companionSolutionEnabled reports whether the policy enables the companion solution. The caller must hold the
// settings lock.
func (g *CombinedGenerator) companionSolutionEnabled() bool {
	return g.settings.flags.Has(config.FlagOmniSharp)
}

// widerPlan returns the plan that regenerates more.
func widerPlan(a changes.Plan, b changes.Plan) changes.Plan {
	if a == changes.PlanFull || b == changes.PlanFull {
		return changes.PlanFull
	}
	if a == changes.PlanPartial || b == changes.PlanPartial {
		return changes.PlanPartial
	}
	return changes.PlanNone
}
