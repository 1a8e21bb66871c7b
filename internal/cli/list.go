package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sunset/internal/tui"
	"github.com/vvka-141/sunset/pkg/sunset"
)

var listCmd = &cobra.Command{
	Use:   "list [project_dir]",
	Short: "List every DeprecatedAfter marker and whether it is due",
	Long: `List every DeprecatedAfter marker found in the compiled output, with its
threshold and whether the current version has reached it.

Never fails because of due markers; use validate for that.

Examples:
  # Show the marker inventory
  sunset list ./myproject

  # Inventory for a future version, as JSON
  sunset list ./myproject --version 3.0 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	listFlags checkFlags
	listJSON  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	addCheckFlags(listCmd, &listFlags)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the inventory as JSON")
}

// listOutput is the JSON shape of the list command.
type listOutput struct {
	Version string              `json:"version"`
	Reports []sunset.ScanReport `json:"reports"`
}

func runList(cmd *cobra.Command, args []string) error {
	logger := newCommandLogger(cmd)

	settings, err := resolveSettings(projectDirFromArgs(args), listFlags, false, logger)
	if err != nil {
		return err
	}

	if settings.Unspecified() {
		logger.Warn("Project version is %q, pass --version to evaluate markers", sunset.UnspecifiedVersion)
		return nil
	}

	reports, err := scanAll(settings, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		jsonBytes, err := json.MarshalIndent(listOutput{Version: settings.Version, Reports: reports}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal inventory: %w", err)
		}
		_, err = fmt.Fprintln(out, string(jsonBytes))
		return err
	}

	return tui.RenderInventory(out, themeFor(out), reports)
}
