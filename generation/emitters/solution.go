package emitters

import (
	"strings"
)

// SolutionProject is one project entry of a solution.
type SolutionProject struct {
	// Name is the assembly name.
	Name string
	// FileName is the project file name, e.g. "Core.csproj".
	FileName string
	// TypeGUID is the project type marker.
	TypeGUID string
	// GUID is the project identifier.
	GUID string
}

// solutionTemplate is the solution text around the project entries and configuration lines.
var solutionTemplate = strings.Join([]string{
	"",
	"Microsoft Visual Studio Solution File, Format Version 11.00",
	"# Visual Studio 2010",
	"{entries}",
	"Global",
	"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution",
	"\t\tDebug|Any CPU = Debug|Any CPU",
	"\tEndGlobalSection",
	"\tGlobalSection(ProjectConfigurationPlatforms) = postSolution",
	"{configurations}",
	"\tEndGlobalSection",
	"\tGlobalSection(SolutionProperties) = preSolution",
	"\t\tHideSolutionNode = FALSE",
	"\tEndGlobalSection",
	"EndGlobal",
	"",
}, WindowsNewline)

// RenderSolution renders a solution with one entry and one Debug|Any CPU configuration per project.
func RenderSolution(projects []SolutionProject) string {
	entries := make([]string, len(projects))
	configurations := make([]string, len(projects))
	for i, project := range projects {
		entries[i] = `Project("{` + project.TypeGUID + `}") = "` + project.Name + `", "` + project.FileName + `", "{` + project.GUID + `}"` +
			WindowsNewline + "EndProject"
		configurations[i] = "\t\t{" + project.GUID + "}.Debug|Any CPU.ActiveCfg = Debug|Any CPU" +
			WindowsNewline + "\t\t{" + project.GUID + "}.Debug|Any CPU.Build.0 = Debug|Any CPU"
	}

	return strings.NewReplacer(
		"{entries}", strings.Join(entries, WindowsNewline),
		"{configurations}", strings.Join(configurations, WindowsNewline),
	).Replace(solutionTemplate)
}
