package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// supportedGenerators caches the registered generator names for argument validation and completion
var supportedGenerators = generation.GetSupportedGenerators()

// initCmd writes a new idesync.json
var initCmd = &cobra.Command{
	Use:   "init [generator]",
	Short: "Write a new project configuration",
	Long: `Write a new project configuration with default values.

The optional argument selects the generator; the default is "` + config.DefaultGenerator + `".
Relative paths given through flags are stored as-is and resolved against the configuration file.`,
	Args:              cmdValidateInitArgs,
	ValidArgsFunction: cmdValidInitArgs,
	RunE:              cmdRunInit,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	if err := addInitFlags(); err != nil {
		cmdLogger.Panic("Failed to initialize the init command", err)
	}
	rootCmd.AddCommand(initCmd)
}

// cmdValidInitArgs completes unused flags, plus the generator names while nothing was given yet
func cmdValidInitArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var suggestions []string
	anyFlagSet := false
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			anyFlagSet = true
			return
		}
		suggestions = append(suggestions, "--"+flag.Name)
	})

	if len(args) == 0 && !anyFlagSet {
		suggestions = append(suggestions, supportedGenerators...)
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateInitArgs accepts at most one argument, which must name a registered generator
func cmdValidateInitArgs(cmd *cobra.Command, args []string) error {
	options := strings.Join(supportedGenerators, ", ")

	var err error
	if len(args) > 1 {
		err = fmt.Errorf("init accepts at most 1 generator argument (options: %s), the default is %s", options, config.DefaultGenerator)
	} else if len(args) == 1 && !generation.IsSupportedGenerator(args[0]) {
		err = fmt.Errorf("unknown generator '%s' (options: %s)", args[0], options)
	}
	if err != nil {
		cmdLogger.Error("Failed to validate args to the init command", err)
	}
	return err
}

// initOutputPath returns the absolute path the configuration is written to: --out, or idesync.json in the working
// directory.
func initOutputPath(cmd *cobra.Command) (string, error) {
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return "", err
	}
	if !cmd.Flags().Changed("out") {
		outputPath = DefaultProjectConfigFilename
	}
	return filepath.Abs(outputPath)
}

// confirmOverwrite asks on the command input whether an existing file may be replaced. --force skips the question.
func confirmOverwrite(cmd *cobra.Command, outputPath string) (bool, error) {
	if _, err := os.Stat(outputPath); err != nil {
		return true, nil
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil || force {
		return force, err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s already exists. Overwrite? (y/n): ", outputPath)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// cmdRunInit builds the default configuration, applies the generator argument and flags, and writes it
func cmdRunInit(cmd *cobra.Command, args []string) error {
	fail := func(err error) error {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	outputPath, err := initOutputPath(cmd)
	if err != nil {
		return fail(err)
	}

	projectConfig := config.GetDefaultProjectConfig()
	if len(args) == 1 {
		projectConfig.Generation.Generator = args[0]
	}
	if err = updateProjectConfigWithInitFlags(cmd, projectConfig); err != nil {
		return fail(err)
	}

	overwrite, err := confirmOverwrite(cmd, outputPath)
	if err != nil {
		return fail(err)
	}
	if !overwrite {
		fmt.Fprintln(cmd.OutOrStdout(), "Operation canceled.")
		return nil
	}

	if err = projectConfig.WriteToFile(outputPath); err != nil {
		return fail(err)
	}
	cmdLogger.Info("Project configuration written to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}
