package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/cmd/exitcodes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/testutils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The commands share global flag state, so these tests run sequentially.

const cmdTestSnapshot = `{
	"editorAssemblies": [
		{"name": "Core", "sourceFiles": ["Assets/Core/A.cs"]},
		{"name": "Game", "sourceFiles": ["Assets/Game/G.cs"], "references": ["Core"]}
	],
	"assets": ["Assets/Core/A.cs", "Assets/Game/G.cs"]
}`

// executeCommand runs the root command with args and returns what the command printed.
func executeCommand(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores the defaults of every flag of a command, since flag values persist between executions.
func resetFlags(t *testing.T, command *cobra.Command) {
	t.Helper()
	command.Flags().VisitAll(func(flag *pflag.Flag) {
		if sliceValue, ok := flag.Value.(pflag.SliceValue); ok {
			require.NoError(t, sliceValue.Replace(nil))
		} else {
			require.NoError(t, flag.Value.Set(flag.DefValue))
		}
		flag.Changed = false
	})
}

// writeTestProject writes a build graph snapshot and a project configuration for project "Demo". Returns the
// project root and the configuration path.
func writeTestProject(t *testing.T) (string, string) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "graph.json"), []byte(cmdTestSnapshot), 0644))

	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Generation.ProjectName = "Demo"
	projectConfig.Compilation = compilation.NewSnapshotConfig("graph.json")
	configPath := filepath.Join(root, DefaultProjectConfigFilename)
	require.NoError(t, projectConfig.WriteToFile(configPath))
	return root, configPath
}

// TestSyncCommand verifies a full sync writes every artifact and an incremental sync succeeds afterward.
func TestSyncCommand(t *testing.T) {
	root, configPath := writeTestProject(t)
	prefsPath := filepath.Join(t.TempDir(), "prefs.db")
	output := filepath.Join(root, filepath.FromSlash(config.DefaultTempDirectory))

	// OmniSharp enables the solution next to the workspace
	_, err := executeCommand("sync", "--config", configPath, "--prefs", prefsPath, "--flags", "OmniSharp")
	require.NoError(t, err)
	for _, name := range []string{"Demo.sln", "Core.csproj", "Game.csproj", "Demo.sublime-project", compilation.GraphHashCacheFileName} {
		assert.FileExists(t, filepath.Join(output, name))
	}

	_, err = executeCommand("sync", "--config", configPath, "--prefs", prefsPath, "--affected", "Assets/Core/A.cs")
	assert.NoError(t, err)
}

// TestSyncCommandIrrelevantChange verifies an incremental sync with nothing to do leaves every file of the output
// directory untouched, including the build graph hash.
func TestSyncCommandIrrelevantChange(t *testing.T) {
	resetFlags(t, syncCmd)
	defer resetFlags(t, syncCmd)

	root, configPath := writeTestProject(t)
	prefsPath := filepath.Join(t.TempDir(), "prefs.db")
	output := filepath.Join(root, filepath.FromSlash(config.DefaultTempDirectory))

	_, err := executeCommand("sync", "--config", configPath, "--prefs", prefsPath)
	require.NoError(t, err)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, entry := range entries {
		require.NoError(t, os.Chtimes(filepath.Join(output, entry.Name()), old, old))
	}

	_, err = executeCommand("sync", "--config", configPath, "--prefs", prefsPath, "--affected", "Assets/readme.txt")
	require.NoError(t, err)

	after, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Len(t, after, len(entries))
	for _, entry := range after {
		info, err := entry.Info()
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "%s was rewritten", entry.Name())
	}
}

// TestWatchBatchHandler verifies batches pick up a changed extension allow-list and that a package manifest change
// runs a full sync.
func TestWatchBatchHandler(t *testing.T) {
	root, configPath := writeTestProject(t)

	projectConfig, err := config.ReadProjectConfigFromFile(configPath)
	require.NoError(t, err)
	require.NoError(t, projectConfig.ResolvePaths(root))
	host, err := projectConfig.Compilation.Load(root)
	require.NoError(t, err)
	settings, err := generation.NewSettings(host, projectConfig.Generation, nil)
	require.NoError(t, err)
	generator, err := generation.NewGenerator(generation.SolutionGeneratorName, settings)
	require.NoError(t, err)

	var plans []changes.Plan
	settings.Events.SyncCompleted.Subscribe(func(event generation.SyncCompletedEvent) error {
		plans = append(plans, event.Plan)
		return nil
	})
	session := &projectSession{
		config:          projectConfig,
		configPath:      configPath,
		configDirectory: root,
		settings:        settings,
		generator:       generator,
	}
	require.NoError(t, generator.Sync())
	handler := newWatchBatchHandler(session)

	require.NoError(t, handler.handle([]string{"Assets/readme.txt"}, nil))
	assert.Equal(t, changes.PlanNone, plans[len(plans)-1])

	// Allow text files and make sure the change is seen as newer than the first read
	changedConfig, err := config.ReadProjectConfigFromFile(configPath)
	require.NoError(t, err)
	changedConfig.Generation.UserExtensions = []string{"txt"}
	require.NoError(t, changedConfig.WriteToFile(configPath))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(configPath, later, later))

	require.NoError(t, handler.handle([]string{"Assets/readme.txt"}, nil))
	assert.Equal(t, changes.PlanFull, plans[len(plans)-1])
	assert.Equal(t, []string{"txt"}, session.config.Generation.UserExtensions)
	assert.True(t, settings.State().IsWarm(generation.ArtifactSolution, []string{"txt"}))

	require.NoError(t, handler.handle(nil, []string{"packages/Manifest.json"}))
	assert.Equal(t, changes.PlanFull, plans[len(plans)-1])

	assert.True(t, touchesPackageManifest([]string{"Packages/packages-lock.json"}))
	assert.False(t, touchesPackageManifest([]string{"Packages/com.demo/package.json"}))
}

// TestSyncCommandConfigErrors verifies configuration problems exit with the config error code.
func TestSyncCommandConfigErrors(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.db")

	_, err := executeCommand("sync", "--config", filepath.Join(t.TempDir(), "missing.json"), "--prefs", prefsPath)
	_, code := exitcodes.GetInnerErrorAndExitCode(err)
	assert.Equal(t, exitcodes.ExitCodeConfigError, code)

	_, configPath := writeTestProject(t)
	_, err = executeCommand("sync", "--config", configPath, "--prefs", prefsPath, "--generator", "rider")
	_, code = exitcodes.GetInnerErrorAndExitCode(err)
	assert.Equal(t, exitcodes.ExitCodeConfigError, code)
}

// TestInitCommand verifies init writes a readable configuration with the requested generator and snapshot.
func TestInitCommand(t *testing.T) {
	// Without --out the configuration lands in the working directory
	workingDirectory := t.TempDir()
	testutils.ExecuteInDirectory(t, workingDirectory, func() {
		_, err := executeCommand("init")
		require.NoError(t, err)

		// Declining the overwrite prompt leaves the file alone
		rootCmd.SetIn(strings.NewReader("n\n"))
		defer rootCmd.SetIn(nil)
		out, err := executeCommand("init", "solution")
		require.NoError(t, err)
		assert.Contains(t, out, "Operation canceled.")
	})
	projectConfig, err := config.ReadProjectConfigFromFile(filepath.Join(workingDirectory, DefaultProjectConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultGenerator, projectConfig.Generation.Generator)

	outputPath := filepath.Join(t.TempDir(), DefaultProjectConfigFilename)
	_, err = executeCommand("init", "solution", "--out", outputPath, "--snapshot", "export/graph.yaml", "--force")
	require.NoError(t, err)

	projectConfig, err = config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "solution", projectConfig.Generation.Generator)
	assert.Equal(t, "export/graph.yaml", projectConfig.Compilation.Path)

	_, err = executeCommand("init", "rider", "--out", outputPath, "--force")
	assert.Error(t, err)
}

// TestPolicyCommands verifies the stored policy can be set, toggled, shown and reset.
func TestPolicyCommands(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.db")

	out, err := executeCommand("policy", "set", "Git|Local", "--prefs", prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Local|Git (0xa)\n", out)

	out, err = executeCommand("policy", "toggle", "git", "--prefs", prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Local (0x2)\n", out)

	out, err = executeCommand("policy", "show", "--prefs", prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Local (0x2)\n", out)

	_, err = executeCommand("policy", "toggle", "Git|Local", "--prefs", prefsPath)
	assert.Error(t, err)

	_, err = executeCommand("policy", "reset", "--prefs", prefsPath)
	require.NoError(t, err)
	out, err = executeCommand("policy", "show", "--prefs", prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "None (0x0)\n", out)
}

// TestVersionCommand verifies the version command prints the build information.
func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version")
	require.NoError(t, err)
	assert.Contains(t, out, "idesync version ")
}

// TestCompletionCommand verifies a script is printed for supported shells and other shells are rejected.
func TestCompletionCommand(t *testing.T) {
	out, err := executeCommand("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")

	_, err = executeCommand("completion", "tcsh")
	assert.Error(t, err)
}
