package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sunset/internal/config"
	"github.com/vvka-141/sunset/internal/tui"
	"github.com/vvka-141/sunset/internal/watch"
	"github.com/vvka-141/sunset/pkg/sunset"
)

var watchCmd = &cobra.Command{
	Use:   "watch [project_dir]",
	Short: "Re-run the deprecation check whenever the compiled output changes",
	Long: `Watch the compiled output and run the same check as validate after every
change. Expired declarations are reported but never stop the watch.

Each run is a full scan. Output directories that do not exist yet are watched
for creation. Press Ctrl+C to stop.

Examples:
  # Watch ./build/classes while a continuous build runs
  sunset watch --version 2.0.0

  # Collapse bursts of writes over one second
  sunset watch ./myproject --debounce 1s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchFlags    checkFlags
	watchDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	addCheckFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after the last change before re-scanning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newCommandLogger(cmd)

	settings, err := resolveSettings(projectDirFromArgs(args), watchFlags, true, logger)
	if err != nil {
		return err
	}

	if settings.Unspecified() {
		logger.Warn("Project version is %q, skipping deprecation check", sunset.UnspecifiedVersion)
		return nil
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	check := func(context.Context) {
		if err := checkOnce(cmd, settings, logger); err != nil {
			logger.Error("%v", err)
		}
	}

	check(ctx)
	logger.Info("Watching %d output director(ies) for changes. Press Ctrl+C to stop.", len(settings.OutputDirs))

	return watch.New(settings.OutputDirs, watchDebounce, logger, check).Run(ctx)
}

// checkOnce scans and reports without failing on violations.
func checkOnce(cmd *cobra.Command, settings *config.Settings, logger sunset.Logger) error {
	reports, err := scanAll(settings, logger)
	if err != nil {
		return err
	}

	violations, units := collectViolations(reports)

	if len(violations) == 0 {
		out := cmd.OutOrStdout()
		return tui.RenderSuccess(out, themeFor(out), settings.Version, units)
	}
	errOut := cmd.ErrOrStderr()
	return tui.RenderViolations(errOut, themeFor(errOut), settings.Version, violations)
}
