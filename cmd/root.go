package cmd

import (
	"os"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cmdLogger is the logger of the command line interface. It shares the writers of logging.GlobalLogger.
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)

var rootCmd = &cobra.Command{
	Use:   "idesync",
	Short: "Keeps IDE project files in sync with a host build graph",
	Long: "idesync renders the assemblies of a host build graph into a solution, one project file per assembly and " +
		"a workspace file, rewriting only the files whose content changed",
	Version: version.GetInfo().Short(),
}

func init() {
	// Console output is always on, the project configuration may adjust its level and coloring later
	logging.GlobalLogger.SetLevel(zerolog.InfoLevel)
	logging.GlobalLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, true)

	rootCmd.PersistentFlags().String("prefs", "", "path to the preference database (default is in the user configuration directory)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
