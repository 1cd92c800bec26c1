package cmd

import (
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Build graph snapshot
	initCmd.Flags().String("snapshot", "", "path to the build graph snapshot, relative to the configuration file")

	// Project root
	initCmd.Flags().String("project-root", "", "directory of the host project, relative to the configuration file")

	// Overwrite without asking
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file without asking")
	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update the snapshot path. It stays relative so the configuration can be checked in with the project
	if cmd.Flags().Changed("snapshot") {
		snapshotPath, err := cmd.Flags().GetString("snapshot")
		if err != nil {
			return err
		}
		projectConfig.Compilation = compilation.NewSnapshotConfig(snapshotPath)
	}

	// Update the project root
	if cmd.Flags().Changed("project-root") {
		projectRoot, err := cmd.Flags().GetString("project-root")
		if err != nil {
			return err
		}
		projectConfig.Generation.ProjectRoot = projectRoot
	}
	return nil
}
