package cmd

import (
	"fmt"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// addWatchFlags adds the various flags for the watch command
func addWatchFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	watchCmd.Flags().SortFlags = false

	// Config file
	watchCmd.Flags().String("config", "", ConfigFlagDescription)

	// Shared project overrides
	addProjectOverrideFlags(watchCmd, defaultConfig)

	// Debounce
	watchCmd.Flags().Duration("debounce", 0,
		fmt.Sprintf("quiet period after the last change before syncing (unless a config file is provided, default is %dms)", defaultConfig.Watch.DebounceMilliseconds))

	// Watched directories
	watchCmd.Flags().StringSlice("dirs", []string{},
		fmt.Sprintf("directories to watch, relative to the project root (unless a config file is provided, default is %v)", defaultConfig.Watch.Directories))
	return nil
}

// updateProjectConfigWithWatchFlags will update the given projectConfig with any CLI arguments that were provided to the watch command
func updateProjectConfigWithWatchFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	if err := updateProjectConfigWithOverrideFlags(cmd, projectConfig); err != nil {
		return err
	}

	// Update the debounce period
	if cmd.Flags().Changed("debounce") {
		debounce, err := cmd.Flags().GetDuration("debounce")
		if err != nil {
			return err
		}
		if debounce < 0 {
			return errors.Errorf("--debounce cannot be negative")
		}
		projectConfig.Watch.DebounceMilliseconds = int(debounce / time.Millisecond)
	}

	// Update the watched directories
	if cmd.Flags().Changed("dirs") {
		directories, err := cmd.Flags().GetStringSlice("dirs")
		if err != nil {
			return err
		}
		projectConfig.Watch.Directories = directories
	}
	return nil
}
