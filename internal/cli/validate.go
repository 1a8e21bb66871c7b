package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/sunset/internal/tui"
	"github.com/vvka-141/sunset/pkg/sunset"
)

var validateCmd = &cobra.Command{
	Use:     "validate [project_dir]",
	Aliases: []string{"check"},
	Short:   "Fail when a DeprecatedAfter threshold has been reached",
	Long: `Scan the compiled output of a project and fail when the current version has
reached the threshold of any DeprecatedAfter marker.

Units, routines, fields and constructors are checked. Nested units (names
containing "$") are not. Descriptors that cannot be loaded are skipped and
reported with --verbose.

When the project version is "unspecified" the check is skipped with a warning.

Examples:
  # Check ./build/classes using the version from sunset.yaml
  sunset validate

  # Check a release candidate
  sunset validate ./myproject --version 2.0.0

  # Check several output directories
  sunset check -o build/classes/java/main -o build/classes/kotlin/main

  # Report without failing
  sunset validate --warn-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateFlags    checkFlags
	validateWarnOnly bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	addCheckFlags(validateCmd, &validateFlags)
	validateCmd.Flags().BoolVar(&validateWarnOnly, "warn-only", false, "Report expired declarations without failing")
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newCommandLogger(cmd)

	settings, err := resolveSettings(projectDirFromArgs(args), validateFlags, validateWarnOnly, logger)
	if err != nil {
		return err
	}

	if settings.Unspecified() {
		logger.Warn("Project version is %q, skipping deprecation check", sunset.UnspecifiedVersion)
		return nil
	}

	reports, err := scanAll(settings, logger)
	if err != nil {
		return err
	}

	violations, units := collectViolations(reports)

	if len(violations) == 0 {
		out := cmd.OutOrStdout()
		return tui.RenderSuccess(out, themeFor(out), settings.Version, units)
	}

	if !settings.FailOnViolation {
		errOut := cmd.ErrOrStderr()
		return tui.RenderViolations(errOut, themeFor(errOut), settings.Version, violations)
	}

	return sunset.NewViolationsError(settings.Version, violations)
}
