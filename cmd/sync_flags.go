package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// addSyncFlags adds the various flags for the sync command
func addSyncFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	syncCmd.Flags().SortFlags = false

	// Config file
	syncCmd.Flags().String("config", "", ConfigFlagDescription)

	// Shared project overrides
	addProjectOverrideFlags(syncCmd, defaultConfig)

	// Changed paths
	syncCmd.Flags().StringArray("affected", []string{},
		"path of a created, removed or moved file, relative to the project root (repeatable)")
	syncCmd.Flags().StringArray("reimported", []string{},
		"path of a file whose content changed, relative to the project root (repeatable)")
	return nil
}

// addProjectOverrideFlags adds the flags that override the project configuration to a command
func addProjectOverrideFlags(cmd *cobra.Command, defaultConfig *config.ProjectConfig) {
	// Build graph snapshot
	cmd.Flags().String("snapshot", "",
		fmt.Sprintf("path to the build graph snapshot (unless a config file is provided, default is %q)", defaultConfig.Compilation.Path))

	// Generation policy
	cmd.Flags().String("flags", "",
		fmt.Sprintf("generation policy, flag names separated by '|' (options: %s). Overrides the stored policy", strings.Join(config.GetFlagNames(), ", ")))

	// Generator
	cmd.Flags().String("generator", "",
		fmt.Sprintf("generator to sync with (options: %s, unless a config file is provided, default is %q)",
			strings.Join(generation.GetSupportedGenerators(), ", "), defaultConfig.Generation.Generator))
}

// updateProjectConfigWithSyncFlags will update the given projectConfig with any CLI arguments that were provided to the sync command
func updateProjectConfigWithSyncFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	return updateProjectConfigWithOverrideFlags(cmd, projectConfig)
}

// updateProjectConfigWithOverrideFlags applies --snapshot and --generator. --flags is resolved separately, since the
// stored policy sits between it and the configuration.
func updateProjectConfigWithOverrideFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update the snapshot path, relative to the working directory rather than the config file
	if cmd.Flags().Changed("snapshot") {
		snapshotPath, err := cmd.Flags().GetString("snapshot")
		if err != nil {
			return err
		}
		snapshotPath, err = filepath.Abs(snapshotPath)
		if err != nil {
			return errors.WithStack(err)
		}
		projectConfig.Compilation = compilation.NewSnapshotConfig(snapshotPath)
	}

	// Update the generator
	if cmd.Flags().Changed("generator") {
		name, err := cmd.Flags().GetString("generator")
		if err != nil {
			return err
		}
		if !generation.IsSupportedGenerator(name) {
			return errors.Errorf("generator '%s' is unsupported (options: %s)", name, strings.Join(generation.GetSupportedGenerators(), ", "))
		}
		projectConfig.Generation.Generator = name
	}
	return nil
}
