package cmd

import (
	"fmt"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// syncCmd represents the command provider for a one-off sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generates the project files once",
	Long: `Generates the project files once. Without --affected or --reimported every artifact is regenerated,
otherwise only the project files of the assemblies owning the given paths are.`,
	Args:              cmdValidateSyncArgs,
	ValidArgsFunction: cmdValidSyncArgs,
	RunE:              cmdRunSync,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the sync command
	err := addSyncFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the sync command", err)
	}

	// Add the sync command and its associated flags to the root command
	rootCmd.AddCommand(syncCmd)
}

// cmdValidSyncArgs will return which flags are valid for dynamic completion for the sync command
func cmdValidSyncArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateSyncArgs makes sure that there are no positional arguments provided to the sync command
func cmdValidateSyncArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("sync does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the sync command", err)
		return err
	}
	return nil
}

// cmdRunSync executes the sync CLI command
func cmdRunSync(cmd *cobra.Command, args []string) error {
	session, err := newProjectSession(cmd, func(projectConfig *config.ProjectConfig) error {
		return updateProjectConfigWithSyncFlags(cmd, projectConfig)
	})
	if err != nil {
		return err
	}
	defer session.Close()

	affected, err := cmd.Flags().GetStringArray("affected")
	if err != nil {
		return err
	}
	reimported, err := cmd.Flags().GetStringArray("reimported")
	if err != nil {
		return err
	}

	// Without any changed paths there is nothing to compare against, so everything is regenerated
	if len(affected) == 0 && len(reimported) == 0 {
		err = session.generator.Sync()
	} else {
		err = session.generator.SyncIfNeeded(affected, reimported)
	}
	if err != nil {
		return syncError(err)
	}
	return nil
}
