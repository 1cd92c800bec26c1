package generation

import (
	"strings"
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostProcessorsOrder verifies post-processors run in registration order, each seeing the previous output.
func TestPostProcessorsOrder(t *testing.T) {
	t.Parallel()

	var hooks []string
	appendName := func(name string) PostProcessor {
		return PostProcessor{Name: name, Process: func(hook string, path string, content string) string {
			hooks = append(hooks, hook)
			return content + name
		}}
	}

	postProcessors, err := NewPostProcessors(appendName("a"), appendName("b"))
	require.NoError(t, err)
	require.NoError(t, postProcessors.Register(appendName("c")))
	assert.Equal(t, []string{"a", "b", "c"}, postProcessors.Names())

	assert.Equal(t, "-abc", postProcessors.Apply(ArtifactWorkspace, "Demo.sublime-project", "-"))
	assert.Equal(t, []string{"OnGeneratedSublimeProject", "OnGeneratedSublimeProject", "OnGeneratedSublimeProject"}, hooks)

	var nilList *PostProcessors
	assert.Equal(t, "-", nilList.Apply(ArtifactSolution, "Demo.sln", "-"))
}

// TestPostProcessorsRegisterErrors verifies names must be unique and transforms present.
func TestPostProcessorsRegisterErrors(t *testing.T) {
	t.Parallel()

	identity := func(hook string, path string, content string) string { return content }
	_, err := NewPostProcessors(PostProcessor{Name: "same", Process: identity}, PostProcessor{Name: "same", Process: identity})
	assert.Error(t, err)

	postProcessors, err := NewPostProcessors()
	require.NoError(t, err)
	assert.Error(t, postProcessors.Register(PostProcessor{Name: "", Process: identity}))
	assert.Error(t, postProcessors.Register(PostProcessor{Name: "nothing"}))
}

// TestBuiltinPostProcessors verifies the built-in transforms add their property to project files only.
func TestBuiltinPostProcessors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"enable-nullable", "treat-warnings-as-errors"}, GetSupportedPostProcessors())
	_, err := PostProcessorsFromNames([]string{"enable-nullable", "bogus"})
	assert.Error(t, err)

	postProcessors, err := PostProcessorsFromNames([]string{"treat-warnings-as-errors", "enable-nullable"})
	require.NoError(t, err)

	project := "  <PropertyGroup>\r\n    <LangVersion>latest</LangVersion>\r\n  </PropertyGroup>\r\n"
	expected := "  <PropertyGroup>\r\n    <LangVersion>latest</LangVersion>\r\n" +
		"    <Nullable>enable</Nullable>\r\n" +
		"    <TreatWarningsAsErrors>true</TreatWarningsAsErrors>\r\n" +
		"  </PropertyGroup>\r\n"
	processed := postProcessors.Apply(ArtifactProjectFile, "Core.csproj", project)
	assert.Equal(t, expected, processed)

	// Applying again changes nothing
	assert.Equal(t, expected, postProcessors.Apply(ArtifactProjectFile, "Core.csproj", processed))
	assert.Equal(t, project, postProcessors.Apply(ArtifactSolution, "Demo.sln", project))
}

// TestPostProcessorsDuringSync verifies post-processors shape the written artifacts and keep syncs idempotent.
func TestPostProcessorsDuringSync(t *testing.T) {
	t.Parallel()

	postProcessors, err := PostProcessorsFromNames([]string{"enable-nullable"})
	require.NoError(t, err)
	require.NoError(t, postProcessors.Register(PostProcessor{Name: "banner", Process: func(hook string, path string, content string) string {
		if hook != ArtifactSolution.HookName() {
			return content
		}
		return strings.Replace(content, "# Visual Studio 2010", "# Visual Studio 2010\r\n# generated", 1)
	}}))

	p := newTestProject(t, config.FlagNone, postProcessors, nil)
	generator := NewSolutionGenerator(p.settings)
	require.NoError(t, generator.Sync())

	assert.Contains(t, p.read(t, "Core.csproj"), "</LangVersion>\r\n    <Nullable>enable</Nullable>\r\n")
	assert.Contains(t, p.read(t, "Demo.sln"), "# generated\r\n")

	require.NoError(t, generator.Sync())
	assert.Equal(t, 0, p.last(t).Written)
}

// TestArtifactKindNames verifies the readable and hook names of artifact kinds.
func TestArtifactKindNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "solution", ArtifactSolution.String())
	assert.Equal(t, "project", ArtifactProjectFile.String())
	assert.Equal(t, "workspace", ArtifactWorkspace.String())
	assert.Equal(t, "unknown", ArtifactKind(9).String())
	assert.Equal(t, "OnGeneratedSlnSolution", ArtifactSolution.HookName())
	assert.Equal(t, "OnGeneratedCSProject", ArtifactProjectFile.HookName())
}
