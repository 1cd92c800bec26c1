package cmd

import (
	"fmt"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/version"
	"github.com/spf13/cobra"
)

// versionCmd prints the build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print the release version of idesync along with the module path, source revision,
revision time and Go toolchain of the binary, when they are known.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.GetInfo().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
