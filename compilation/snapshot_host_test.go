package compilation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSnapshotHost builds a host with an editor set, a player set and two packages.
func newTestSnapshotHost(t *testing.T) *SnapshotHost {
	t.Helper()
	host, err := NewSnapshotHost(&Snapshot{
		EditorAssemblies: []AssemblySnapshot{
			{Name: "Core", SourceFiles: []string{"Assets/Core/A.cs", "Assets/Core/B.cs"}},
			{Name: "Core.Editor", Directories: []string{"Assets/Core/Editor"}, SourceFiles: []string{"Assets/Core/Editor/Inspector.cs"}, References: []string{"Core"}},
			{Name: "Assembly-CSharp", Directories: []string{"Assets"}, SourceFiles: []string{"Assets/Scripts/Player.cs"}},
		},
		PlayerAssemblies: []AssemblySnapshot{
			{Name: "Core", SourceFiles: []string{"Assets/Core/A.cs"}},
			{Name: "Runtime", SourceFiles: []string{"Assets/Runtime/Only.cs"}},
		},
		Assets: []string{"Assets/Core/A.cs", "Assets/Core/B.cs"},
		Packages: []PackageSnapshot{
			{Name: "com.demo.tools", AssetPath: "Packages/com.demo.tools", ResolvedPath: "/cache/tools", Source: types.PackageSourceGit},
			{Name: "com.demo.local", AssetPath: "Packages/com.demo.local", ResolvedPath: "/work/local", Source: types.PackageSourceLocal},
		},
		SystemAssemblyDirectories: map[string][]string{"NET_4_6": {"/sys/4.7.1-api"}},
	})
	require.NoError(t, err)
	return host
}

// TestSnapshotHostAssemblies verifies assembly sets are kept apart and references are linked by name.
func TestSnapshotHostAssemblies(t *testing.T) {
	t.Parallel()
	host := newTestSnapshotHost(t)

	editor := host.Assemblies(types.AssembliesTypeEditor)
	require.Len(t, editor, 3)
	require.Len(t, editor[1].AssemblyReferences, 1)
	assert.Same(t, editor[0], editor[1].AssemblyReferences[0])

	player := host.Assemblies(types.AssembliesTypePlayer)
	require.Len(t, player, 2)
	assert.NotSame(t, editor[0], player[0])
	assert.Equal(t, []string{"Assets/Core/A.cs"}, player[0].SourceFiles)

	assert.Equal(t, []string{"/sys/4.7.1-api"}, host.SystemAssemblyDirectories("NET_4_6"))
	assert.Empty(t, host.SystemAssemblyDirectories("NET_Standard"))
	assert.Len(t, host.AllAssetPaths(), 2)
}

// TestSnapshotHostAssemblyNameFromScriptPath covers source matches, directory ownership and misses.
func TestSnapshotHostAssemblyNameFromScriptPath(t *testing.T) {
	t.Parallel()
	host := newTestSnapshotHost(t)

	tests := []struct {
		path     string
		expected string
	}{
		{"Assets/Core/A.cs", "Core.dll"},
		{"assets\\core\\b.cs", "Core.dll"},
		{"Assets/Core/New.cs", "Core.dll"},
		{"Assets/Core/Editor/Inspector.cs", "Core.Editor.dll"},
		{"Assets/Core/Editor/Sub/Tool.cs", "Core.Editor.dll"},
		{"Assets/Other/Thing.cs", "Assembly-CSharp.dll"},
		{"Assets/Runtime/Only.cs", "Runtime.dll"},
		{"Packages/com.demo.tools/Runtime/X.cs", ""},
		{"", ""},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, host.AssemblyNameFromScriptPath(test.path))
		})
	}
}

// TestSnapshotHostFindPackage verifies packages are found by their root or any path beneath it.
func TestSnapshotHostFindPackage(t *testing.T) {
	t.Parallel()
	host := newTestSnapshotHost(t)

	found := host.FindPackageForAssetPath("packages/com.demo.tools")
	require.NotNil(t, found)
	assert.Equal(t, "com.demo.tools", found.Name)

	found = host.FindPackageForAssetPath("Packages/com.demo.local/Runtime/A.cs")
	require.NotNil(t, found)
	assert.Equal(t, types.PackageSourceLocal, found.Source)

	assert.Nil(t, host.FindPackageForAssetPath("Packages/com.demo.toolsextra"))
	assert.Nil(t, host.FindPackageForAssetPath("Assets/A.cs"))
	assert.Len(t, host.AllPackages(), 2)
}

// TestSnapshotHostParseResponseFile verifies response files are read relative to the project directory.
func TestSnapshotHostParseResponseFile(t *testing.T) {
	t.Parallel()
	host := newTestSnapshotHost(t)

	projectDirectory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDirectory, "csc.rsp"), []byte("-define:FROM_RSP -unsafe"), 0644))

	data := host.ParseResponseFile("csc.rsp", projectDirectory, nil)
	assert.Empty(t, data.Errors)
	assert.Equal(t, []string{"FROM_RSP"}, data.Defines)
	assert.True(t, data.Unsafe)
}

// TestSnapshotConfigLoad verifies relative snapshot paths resolve against the base directory.
func TestSnapshotConfigLoad(t *testing.T) {
	t.Parallel()

	baseDirectory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(baseDirectory, "graph.yaml"), []byte(yamlSnapshot), 0644))

	host, err := NewSnapshotConfig("graph.yaml").Load(baseDirectory)
	require.NoError(t, err)
	assert.Len(t, host.Assemblies(types.AssembliesTypeEditor), 2)

	_, err = (&SnapshotConfig{}).Load(baseDirectory)
	assert.Error(t, err)

	_, err = (&SnapshotConfig{Path: "graph.yaml", Format: "ini"}).Load(baseDirectory)
	assert.ErrorContains(t, err, "unsupported")

	abs := filepath.Join(baseDirectory, "graph.yaml")
	assert.Equal(t, abs, NewSnapshotConfig(abs).ResolvedPath("/elsewhere"))
}
