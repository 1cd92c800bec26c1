package cmd

import (
	"fmt"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging/colors"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/prefs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// policyCmd groups the commands reading and modifying the stored generation policy
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Shows or modifies the stored generation policy",
	Long: `Shows or modifies the generation policy stored in the preference database. The stored policy
replaces the policy of the project configuration, and is itself overridden by --flags.`,
}

// policyShowCmd prints the stored policy
var policyShowCmd = &cobra.Command{
	Use:           "show",
	Short:         "Prints the stored generation policy",
	Args:          cobra.NoArgs,
	RunE:          cmdRunPolicyShow,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// policyToggleCmd toggles one flag of the stored policy
var policyToggleCmd = &cobra.Command{
	Use:               "toggle <flag>",
	Short:             "Toggles one flag of the stored generation policy",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: cmdValidPolicyFlagArgs,
	RunE:              cmdRunPolicyToggle,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// policySetCmd replaces the stored policy
var policySetCmd = &cobra.Command{
	Use:               "set <flags>",
	Short:             "Replaces the stored generation policy, flag names separated by '|'",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: cmdValidPolicyFlagArgs,
	RunE:              cmdRunPolicySet,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// policyResetCmd removes the stored policy
var policyResetCmd = &cobra.Command{
	Use:           "reset",
	Short:         "Removes the stored generation policy so the configured one applies again",
	Args:          cobra.NoArgs,
	RunE:          cmdRunPolicyReset,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	policyCmd.AddCommand(policyShowCmd, policyToggleCmd, policySetCmd, policyResetCmd)
	rootCmd.AddCommand(policyCmd)
}

// cmdValidPolicyFlagArgs completes flag names
func cmdValidPolicyFlagArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.GetFlagNames(), cobra.ShellCompDirectiveNoFileComp
}

// withPrefs opens the preference database, runs f and closes the database again
func withPrefs(cmd *cobra.Command, f func(store *prefs.Store) error) error {
	store, err := openPrefs(cmd)
	if err != nil {
		cmdLogger.Error("Failed to open the preference database", err)
		return err
	}
	defer store.Close()
	return f(store)
}

// printPolicy writes a policy and its raw value to the command output
func printPolicy(cmd *cobra.Command, flags config.ProjectGenerationFlag) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (0x%x)\n", flags.String(), uint32(flags))
}

// cmdRunPolicyShow executes the policy show CLI command
func cmdRunPolicyShow(cmd *cobra.Command, args []string) error {
	return withPrefs(cmd, func(store *prefs.Store) error {
		stored, err := store.HasKey(prefs.ProjectGenerationFlagKey)
		if err != nil {
			return err
		}
		if !stored {
			cmdLogger.Info("No policy is stored in ", colors.Bold, store.Path(), colors.Reset, ", the configured policy applies")
		}

		flags, err := store.ProjectGenerationFlag()
		if err != nil {
			return err
		}
		printPolicy(cmd, flags)
		return nil
	})
}

// cmdRunPolicyToggle executes the policy toggle CLI command
func cmdRunPolicyToggle(cmd *cobra.Command, args []string) error {
	flag, err := config.ParseProjectGenerationFlag(args[0])
	if err != nil {
		return err
	}
	if flag == config.FlagNone || strings.ContainsAny(args[0], "|,") {
		return errors.Errorf("toggle accepts exactly one flag name (options: %s)", strings.Join(config.GetFlagNames(), ", "))
	}

	return withPrefs(cmd, func(store *prefs.Store) error {
		flags, err := store.ToggleProjectGenerationFlag(flag)
		if err != nil {
			return err
		}
		printPolicy(cmd, flags)
		return nil
	})
}

// cmdRunPolicySet executes the policy set CLI command
func cmdRunPolicySet(cmd *cobra.Command, args []string) error {
	flags, err := config.ParseProjectGenerationFlag(args[0])
	if err != nil {
		return err
	}

	return withPrefs(cmd, func(store *prefs.Store) error {
		if err := store.SetProjectGenerationFlag(flags); err != nil {
			return err
		}
		printPolicy(cmd, flags)
		return nil
	})
}

// cmdRunPolicyReset executes the policy reset CLI command
func cmdRunPolicyReset(cmd *cobra.Command, args []string) error {
	return withPrefs(cmd, func(store *prefs.Store) error {
		return store.Delete(prefs.ProjectGenerationFlagKey)
	})
}
