package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadProjectConfigOverlaysDefaults verifies values missing from the file keep their defaults.
func TestReadProjectConfigOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := `{
		"generation": {"projectName": "Demo", "flags": "Git|OmniSharp", "userExtensions": ["json"]},
		"logging": {"level": "debug"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	projectConfig, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Demo", projectConfig.Generation.ProjectName)
	assert.Equal(t, FlagGit|FlagOmniSharp, projectConfig.Generation.Flags)
	assert.Equal(t, []string{"json"}, projectConfig.Generation.UserExtensions)
	assert.Equal(t, DefaultGenerator, projectConfig.Generation.Generator)
	assert.Equal(t, DefaultTempDirectory, projectConfig.Generation.TempDirectory)
	assert.Equal(t, zerolog.DebugLevel, projectConfig.Logging.Level)
	assert.Equal(t, 10, projectConfig.Logging.MaxSizeMegabytes)
	require.NotNil(t, projectConfig.Compilation)
	assert.Equal(t, DefaultSnapshotPath, projectConfig.Compilation.Path)
	assert.Equal(t, 500, projectConfig.Watch.DebounceMilliseconds)
}

// TestWriteAndReadProjectConfig verifies a written config reads back identically.
func TestWriteAndReadProjectConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	original := GetDefaultProjectConfig()
	original.Generation.Flags = FlagEmbedded | FlagPlayerAssemblies
	original.Generation.PostProcessors = []string{"enable-nullable"}
	require.NoError(t, original.WriteToFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"flags": "Embedded|PlayerAssemblies"`)

	read, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, read)
}

// TestReadProjectConfigErrors verifies missing and malformed files are reported.
func TestReadProjectConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadProjectConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"generation": {"flags": "Bogus"}}`), 0644))
	_, err = ReadProjectConfigFromFile(path)
	assert.Error(t, err)
}

// TestResolvePaths verifies the project root, temp directory and project name defaults.
func TestResolvePaths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	projectConfig := GetDefaultProjectConfig()
	projectConfig.Generation.ProjectRoot = "MyGame"
	require.NoError(t, projectConfig.ResolvePaths(base))

	assert.Equal(t, filepath.Join(base, "MyGame"), projectConfig.Generation.ProjectRoot)
	assert.Equal(t, filepath.Join(base, "MyGame", DefaultTempDirectory), projectConfig.Generation.TempDirectory)
	assert.Equal(t, "MyGame", projectConfig.Generation.ProjectName)

	absoluteTemp := filepath.Join(base, "out")
	projectConfig = GetDefaultProjectConfig()
	projectConfig.Generation.ProjectName = "Named"
	projectConfig.Generation.TempDirectory = absoluteTemp
	require.NoError(t, projectConfig.ResolvePaths(base))
	assert.Equal(t, base, projectConfig.Generation.ProjectRoot)
	assert.Equal(t, absoluteTemp, projectConfig.Generation.TempDirectory)
	assert.Equal(t, "Named", projectConfig.Generation.ProjectName)
}

// TestValidate covers each validation rule.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *ProjectConfig)
		valid  bool
	}{
		{"defaults", func(p *ProjectConfig) {}, true},
		{"missing project name", func(p *ProjectConfig) { p.Generation.ProjectName = " " }, false},
		{"dotted extension", func(p *ProjectConfig) { p.Generation.UserExtensions = []string{".json"} }, false},
		{"empty extension", func(p *ProjectConfig) { p.Generation.UserExtensions = []string{""} }, false},
		{"bad host version", func(p *ProjectConfig) { p.Generation.HostVersion = "unity" }, false},
		{"host version", func(p *ProjectConfig) { p.Generation.HostVersion = "2020.3.14f1" }, true},
		{"no compilation", func(p *ProjectConfig) { p.Compilation = nil }, false},
		{"bad snapshot format", func(p *ProjectConfig) { p.Compilation.Format = "xml" }, false},
		{"negative debounce", func(p *ProjectConfig) { p.Watch.DebounceMilliseconds = -1 }, false},
		{"negative backups", func(p *ProjectConfig) { p.Logging.MaxBackups = -1 }, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			projectConfig := GetDefaultProjectConfig()
			projectConfig.Generation.ProjectName = "Demo"
			test.mutate(projectConfig)

			err := projectConfig.Validate()
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
