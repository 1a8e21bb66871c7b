package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sunset",
	Short: "Fail the build when deprecated code outlives its version",
	Long: `sunset checks compiled output for DeprecatedAfter markers and fails when the
current project version has reached a marker's threshold.

Markers are read from unit descriptors (*.unit.yaml, *.unit.yml, *.unit.json)
written next to the compiled units. Versions are dotted numbers compared
segment by segment, so 1.2 equals 1.2.0 and 2 is newer than 1.9.9.

Configuration is read from sunset.yaml in the project directory, then from the
environment (SUNSET_VERSION, SUNSET_MARKER_TYPE, optionally via .env), then
from command-line flags.

Exit Codes:
  0  - Success (or project version unspecified)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Output directory could not be scanned
  20 - Expired declarations found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag returns the value of the persistent --verbose flag.
func getVerboseFlag(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("verbose")
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup("verbose")
	}
	if flag == nil {
		return false
	}
	return flag.Value.String() == "true"
}
