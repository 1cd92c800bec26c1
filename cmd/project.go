package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/cmd/exitcodes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/prefs"
	"github.com/spf13/cobra"
)

// projectSession holds everything a command needs to sync one project.
type projectSession struct {
	// config is the resolved and validated project configuration.
	config *config.ProjectConfig

	// configPath is the configuration file the session was loaded from. The file may not exist when the default
	// configuration is used.
	configPath string

	// configDirectory is the directory relative config values are resolved against.
	configDirectory string

	settings  *generation.Settings
	generator generation.Generator

	// logWriters are detached from the global logger and closed by Close.
	logWriters []io.WriteCloser
}

// Close releases the resources of the session, such as log files.
func (s *projectSession) Close() {
	for _, writer := range s.logWriters {
		logging.GlobalLogger.RemoveWriter(writer, logging.STRUCTURED, false)
		if err := writer.Close(); err != nil {
			cmdLogger.Warn("Failed to close a log file", err)
		}
	}
	s.logWriters = nil
}

// loadProjectConfig navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (idesync.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If idesync.json can't be found, use the default project configuration.
// Returns the configuration along with the absolute path of its file. Relative paths are resolved against the
// directory of that file.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, string, error) {
	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	// If --config was not used, look for `idesync.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}
	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return nil, "", err
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err := config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, "", err
		}
		return projectConfig, configPath, nil
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed {
		return nil, "", existenceError
	}

	// Possibility #3: --config flag was not used and idesync.json was not found, so use the default project config
	cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
	return config.GetDefaultProjectConfig(), configPath, nil
}

// applyLoggingConfig applies the logging section of a project configuration to the global logger. Returns the log
// file writer, if one was configured, so the caller can close it.
func applyLoggingConfig(loggingConfig config.LoggingConfig, configDirectory string) (io.WriteCloser, error) {
	logging.GlobalLogger.SetLevel(loggingConfig.Level)

	if loggingConfig.NoColor {
		logging.GlobalLogger.RemoveWriter(os.Stdout, logging.UNSTRUCTURED, true)
		logging.GlobalLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, false)
	}

	if loggingConfig.LogDirectory == "" {
		return nil, nil
	}

	directory := loggingConfig.LogDirectory
	if !filepath.IsAbs(directory) {
		directory = filepath.Join(configDirectory, directory)
	}
	writer, err := logging.NewFileWriter(logging.FileWriterConfig{
		Directory:        directory,
		MaxSizeMegabytes: loggingConfig.MaxSizeMegabytes,
		MaxBackups:       loggingConfig.MaxBackups,
	})
	if err != nil {
		return nil, err
	}
	logging.GlobalLogger.AddWriter(writer, logging.STRUCTURED, false)
	return writer, nil
}

// openPrefs opens the preference database named by --prefs, or the default one.
func openPrefs(cmd *cobra.Command) (*prefs.Store, error) {
	path, err := cmd.Flags().GetString("prefs")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return prefs.Open(path)
}

// resolvePolicy determines the generation policy. The --flags flag wins, then a policy stored in the preference
// database, then the configuration.
func resolvePolicy(cmd *cobra.Command, projectConfig *config.ProjectConfig) (config.ProjectGenerationFlag, error) {
	if cmd.Flags().Changed("flags") {
		value, err := cmd.Flags().GetString("flags")
		if err != nil {
			return config.FlagNone, err
		}
		return config.ParseProjectGenerationFlag(value)
	}

	store, err := openPrefs(cmd)
	if err != nil {
		cmdLogger.Warn("Unable to open the preference database, using the configured policy", err)
		return projectConfig.Generation.Flags, nil
	}
	defer store.Close()

	stored, err := store.HasKey(prefs.ProjectGenerationFlagKey)
	if err != nil || !stored {
		return projectConfig.Generation.Flags, err
	}
	return store.ProjectGenerationFlag()
}

// newProjectSession loads, resolves and validates the project configuration, applies the command's overrides,
// reads the build graph snapshot and creates the configured generator. Errors carry ExitCodeConfigError.
func newProjectSession(cmd *cobra.Command, applyOverrides func(projectConfig *config.ProjectConfig) error) (*projectSession, error) {
	configError := func(err error) error {
		cmdLogger.Error("Failed to load the project", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeConfigError)
	}

	projectConfig, configPath, err := loadProjectConfig(cmd)
	if err != nil {
		return nil, configError(err)
	}
	configDirectory := filepath.Dir(configPath)

	if applyOverrides != nil {
		if err = applyOverrides(projectConfig); err != nil {
			return nil, configError(err)
		}
	}
	if projectConfig.Generation.Flags, err = resolvePolicy(cmd, projectConfig); err != nil {
		return nil, configError(err)
	}
	if err = projectConfig.ResolvePaths(configDirectory); err != nil {
		return nil, configError(err)
	}
	if err = projectConfig.Validate(); err != nil {
		return nil, configError(err)
	}

	session := &projectSession{config: projectConfig, configPath: configPath, configDirectory: configDirectory}
	logWriter, err := applyLoggingConfig(projectConfig.Logging, configDirectory)
	if err != nil {
		return nil, configError(err)
	}
	if logWriter != nil {
		session.logWriters = append(session.logWriters, logWriter)
	}

	host, err := projectConfig.Compilation.Load(configDirectory)
	if err != nil {
		session.Close()
		return nil, configError(err)
	}

	postProcessors, err := generation.PostProcessorsFromNames(projectConfig.Generation.PostProcessors)
	if err != nil {
		session.Close()
		return nil, configError(err)
	}

	session.settings, err = generation.NewSettings(host, projectConfig.Generation, postProcessors)
	if err != nil {
		session.Close()
		return nil, configError(err)
	}
	session.generator, err = generation.NewGenerator(projectConfig.Generation.Generator, session.settings)
	if err != nil {
		session.Close()
		return nil, configError(err)
	}

	session.settings.Events.ArtifactWritten.Subscribe(func(event generation.ArtifactWrittenEvent) error {
		cmdLogger.Info("Updated ", event.Kind.String(), " ", colors.Bold, event.Path, colors.Reset)
		return nil
	})

	cmdLogger.Info(
		"Syncing ", colors.Bold, session.settings.ProjectName(), colors.Reset,
		" with the ", colors.Bold, session.generator.Name(), colors.Reset,
		" generator (policy: ", session.settings.Flags().String(), ")",
	)
	compilation.NotifyGraphHashStatus(session.settings.SelectedAssemblies(), session.settings.OutputDirectory(), cmdLogger)
	return session, nil
}

// syncError wraps a failed sync with ExitCodeSyncError.
func syncError(err error) error {
	cmdLogger.Error("Failed to sync the project", err)
	return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeSyncError)
}
