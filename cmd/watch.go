package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/cmd/exitcodes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// watchCmd represents the command provider for continuous syncing
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Generates the project files and keeps them in sync with file changes",
	Long: `Generates the project files, then watches the configured directories and regenerates the project files
affected by each batch of changes until interrupted.`,
	Args:              cmdValidateWatchArgs,
	ValidArgsFunction: cmdValidWatchArgs,
	RunE:              cmdRunWatch,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the watch command
	err := addWatchFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the watch command", err)
	}

	// Add the watch command and its associated flags to the root command
	rootCmd.AddCommand(watchCmd)
}

// cmdValidWatchArgs will return which flags are valid for dynamic completion for the watch command
func cmdValidWatchArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateWatchArgs makes sure that there are no positional arguments provided to the watch command
func cmdValidateWatchArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("watch does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the watch command", err)
		return err
	}
	return nil
}

// cmdRunWatch executes the watch CLI command
func cmdRunWatch(cmd *cobra.Command, args []string) error {
	session, err := newProjectSession(cmd, func(projectConfig *config.ProjectConfig) error {
		return updateProjectConfigWithWatchFlags(cmd, projectConfig)
	})
	if err != nil {
		return err
	}
	defer session.Close()

	// The watcher only reports changes, so start from up-to-date artifacts
	if err = session.generator.Sync(); err != nil {
		return syncError(err)
	}

	watchConfig := session.config.Watch
	fileWatcher, err := watcher.NewWatcher(
		session.settings.ProjectRoot(),
		watchConfig.Directories,
		time.Duration(watchConfig.DebounceMilliseconds)*time.Millisecond,
		newWatchBatchHandler(session).handle,
	)
	if err != nil {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}

	// Stop watching on keyboard interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = fileWatcher.Start(ctx); err != nil {
		cmdLogger.Error("Failed to start watching", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	cmdLogger.Info("Press ", colors.Bold, "Ctrl+C", colors.Reset, " to stop watching")

	<-ctx.Done()
	cmdLogger.Info("Stopping the watcher")
	return fileWatcher.Stop()
}
