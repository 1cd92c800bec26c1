package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionShells lists the shells a completion script can be generated for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCmd prints a shell completion script for idesync
var completionCmd = &cobra.Command{
	Use:       "completion <shell>",
	Short:     "Print a completion script for idesync commands (bash, zsh, fish or powershell)",
	ValidArgs: completionShells,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Print a shell completion script to stdout.

Load it in the current bash session:

  $ source <(idesync completion bash)

Install it for every bash session:

  # Linux:
  $ idesync completion bash > /etc/bash_completion.d/idesync
  # macOS:
  $ idesync completion bash > $(brew --prefix)/etc/bash_completion.d/idesync

The zsh, fish and powershell scripts are loaded the way each shell loads completions.`,
	RunE:         cmdRunCompletion,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// cmdRunCompletion writes the completion script of the requested shell
func cmdRunCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var err error
	switch args[0] {
	case "bash":
		err = cmd.Root().GenBashCompletionV2(out, true)
	case "zsh":
		err = cmd.Root().GenZshCompletion(out)
	case "fish":
		err = cmd.Root().GenFishCompletion(out, true)
	case "powershell":
		err = cmd.Root().GenPowerShellCompletionWithDesc(out)
	default:
		err = fmt.Errorf("unsupported shell %q", args[0])
	}
	if err != nil {
		cmdLogger.Error("Unable to generate a completion script", err)
	}
	return err
}
