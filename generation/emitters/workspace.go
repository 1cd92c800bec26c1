package emitters

import (
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
)

// workspaceTemplate is the workspace text up to the closing bracket of the folder list.
var workspaceTemplate = strings.Join([]string{
	"{",
	"\t\"folders\":",
	"\t[",
	"\t\t{ \"path\": \"../../Assets\", \"file_exclude_patterns\": [\"*.meta\"] },",
	"\t\t{ \"path\": \"../../Packages\", \"name\": \"Package Manifest\", \"file_exclude_patterns\": [\"packages-lock.json\"], \"folder_exclude_patterns\": [\"*\"] },",
	"{entries}",
	"\t]",
}, WindowsNewline)

// RenderWorkspace renders a workspace listing the fixed project folders and one folder per package. If solutionPath
// is not empty, the workspace references it. Backslashes in package and solution paths become forward slashes.
func RenderWorkspace(packages []*types.PackageInfo, solutionPath string) string {
	entries := make([]string, len(packages))
	for i, p := range packages {
		entries[i] = `        { "path": "` + p.ResolvedPath + `", "name": "` + p.DisplayName + `", "file_exclude_patterns": ["*.meta"] }`
	}

	text := strings.Replace(workspaceTemplate, "{entries}", pathutils.ToForwardSlashes(strings.Join(entries, ","+WindowsNewline)), 1)
	if solutionPath != "" {
		text += ",\n\t\"solution_file\": \"" + pathutils.ToForwardSlashes(solutionPath) + "\""
	}
	return text + "\n}"
}
