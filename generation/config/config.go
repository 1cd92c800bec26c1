package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ProjectConfig describes the configuration of one synchronized project, as read from idesync.json.
type ProjectConfig struct {
	// Generation describes what is generated and where.
	Generation GenerationConfig `json:"generation"`

	// Compilation describes where the host build graph is read from.
	Compilation *compilation.SnapshotConfig `json:"compilation"`

	// Watch describes the file watcher driving incremental syncs.
	Watch WatchConfig `json:"watch"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// GenerationConfig describes the configuration options used by the project generators.
type GenerationConfig struct {
	// ProjectRoot is the directory of the host project. Relative paths are resolved against the directory of the
	// config file.
	ProjectRoot string `json:"projectRoot"`

	// ProjectName names the solution and workspace files. If empty, the base name of ProjectRoot is used.
	ProjectName string `json:"projectName"`

	// TempDirectory is the directory the artifacts are written to. Relative paths are resolved against ProjectRoot.
	TempDirectory string `json:"tempDirectory"`

	// Flags is the generation policy.
	Flags ProjectGenerationFlag `json:"flags"`

	// UserExtensions lists additional file extensions, without the leading dot, included as non-source items.
	UserExtensions []string `json:"userExtensions"`

	// RootNamespace is written to every project file.
	RootNamespace string `json:"rootNamespace"`

	// HostVersion is the version of the host build system. An empty value targets the newest host.
	HostVersion string `json:"hostVersion"`

	// Generator names the generator used for syncing, see generation.GetSupportedGenerators.
	Generator string `json:"generator"`

	// PostProcessors names the built-in transforms applied to rendered artifacts, in order.
	PostProcessors []string `json:"postProcessors"`
}

// WatchConfig describes the configuration options used by the file watcher.
type WatchConfig struct {
	// Directories lists the directories watched for changes, relative to the project root.
	Directories []string `json:"directories"`

	// DebounceMilliseconds is the quiet period after the last change before a batch is synced.
	DebounceMilliseconds int `json:"debounceMilliseconds"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty, then
	// no log files are kept
	LogDirectory string `json:"logDirectory"`

	// NoColor disables colored console output
	NoColor bool `json:"noColor"`

	// MaxSizeMegabytes is the size at which a log file is rotated
	MaxSizeMegabytes int `json:"maxSizeMegabytes"`

	// MaxBackups is the number of rotated log files kept
	MaxBackups int `json:"maxBackups"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Values missing from the
// file keep their defaults.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over the defaults
	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// ResolvePaths makes ProjectRoot absolute against baseDirectory and TempDirectory absolute against ProjectRoot, then
// derives ProjectName from ProjectRoot if it is unset.
func (p *ProjectConfig) ResolvePaths(baseDirectory string) error {
	root := p.Generation.ProjectRoot
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(baseDirectory, root)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return errors.WithStack(err)
	}
	p.Generation.ProjectRoot = root

	if p.Generation.TempDirectory == "" {
		p.Generation.TempDirectory = DefaultTempDirectory
	}
	if !filepath.IsAbs(p.Generation.TempDirectory) {
		p.Generation.TempDirectory = filepath.Join(root, p.Generation.TempDirectory)
	}

	if p.Generation.ProjectName == "" {
		p.Generation.ProjectName = filepath.Base(root)
	}
	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// A project name is required, as every artifact is named after it
	if strings.TrimSpace(p.Generation.ProjectName) == "" {
		return errors.Errorf("generation.projectName must be set or derivable from generation.projectRoot")
	}

	// Verify the user extensions are bare extensions
	for _, extension := range p.Generation.UserExtensions {
		if extension == "" || strings.HasPrefix(extension, ".") || strings.ContainsAny(extension, `/\`) {
			return errors.Errorf("user extension '%s' must be a bare extension without a leading dot", extension)
		}
	}

	// Verify the host version can be parsed
	if _, err := ParseHostVersion(p.Generation.HostVersion); err != nil {
		return err
	}

	// Verify we know where to read the build graph from
	if p.Compilation == nil {
		return errors.Errorf("a compilation snapshot must be configured")
	}
	if err := p.Compilation.Validate(); err != nil {
		return err
	}

	// Verify the debounce period is not negative
	if p.Watch.DebounceMilliseconds < 0 {
		return errors.Errorf("watch.debounceMilliseconds cannot be negative")
	}

	// Verify log rotation limits
	if p.Logging.MaxSizeMegabytes < 0 || p.Logging.MaxBackups < 0 {
		return errors.Errorf("logging rotation limits cannot be negative")
	}
	return nil
}

// ParsedHostVersion returns the parsed GenerationConfig.HostVersion.
func (g *GenerationConfig) ParsedHostVersion() (*HostVersion, error) {
	return ParseHostVersion(g.HostVersion)
}
