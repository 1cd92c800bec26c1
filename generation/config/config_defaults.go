package config

import (
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/rs/zerolog"
)

const (
	// DefaultConfigFileName is the name of the project config file looked up in the working directory.
	DefaultConfigFileName = "idesync.json"

	// DefaultTempDirectory is where artifacts are written, relative to the project root.
	DefaultTempDirectory = "Library/com.jcaballol94.ide.sublime"

	// DefaultSnapshotPath is where the host exports its build graph, relative to the config file.
	DefaultSnapshotPath = "Library/idesync-graph.json"

	// DefaultGenerator is the generator used when none is configured.
	DefaultGenerator = "combined"
)

// GetDefaultProjectConfig obtains a default configuration for a project.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Generation: GenerationConfig{
			ProjectRoot:    ".",
			TempDirectory:  DefaultTempDirectory,
			Flags:          FlagNone,
			UserExtensions: []string{},
			Generator:      DefaultGenerator,
			PostProcessors: []string{},
		},
		Compilation: compilation.NewSnapshotConfig(DefaultSnapshotPath),
		Watch: WatchConfig{
			Directories:          []string{"Assets", "Packages"},
			DebounceMilliseconds: 500,
		},
		Logging: LoggingConfig{
			Level:            zerolog.InfoLevel,
			LogDirectory:     "",
			NoColor:          false,
			MaxSizeMegabytes: 10,
			MaxBackups:       3,
		},
	}
}
