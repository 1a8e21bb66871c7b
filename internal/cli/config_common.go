package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sunset/internal/config"
	"github.com/vvka-141/sunset/internal/files/filesystem"
	"github.com/vvka-141/sunset/internal/files/scanner"
	"github.com/vvka-141/sunset/internal/logging"
	"github.com/vvka-141/sunset/internal/tui"
	"github.com/vvka-141/sunset/pkg/sunset"
)

// checkFlags holds the flag values shared by validate and list.
type checkFlags struct {
	version    string
	outputDirs []string
	markerType string
	envFile    string
}

func addCheckFlags(cmd *cobra.Command, f *checkFlags) {
	cmd.Flags().StringVar(&f.version, "version", "", "Current project version (overrides sunset.yaml and SUNSET_VERSION)")
	cmd.Flags().StringSliceVarP(&f.outputDirs, "output-dir", "o", nil, "Compiled output directory to scan, relative to the project (repeatable)")
	cmd.Flags().StringVar(&f.markerType, "marker-type", "", "Fully-qualified marker type name (default \""+sunset.DefaultMarkerType+"\")")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Read environment overrides from this file instead of <project_dir>/.env")
}

// projectDirFromArgs returns the project directory argument, defaulting to ".".
func projectDirFromArgs(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

// newCommandLogger returns a console logger writing to the command's stderr.
func newCommandLogger(cmd *cobra.Command) sunset.Logger {
	return logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// loadProjectConfig loads the project configuration.
// Returns nil config if sunset.yaml does not exist (not an error).
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	projectCfg, err := config.Load(projectDir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("%w: failed to load %s: %v", sunset.ErrInvalidConfig, config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveSettings merges sunset.yaml, the environment and flags.
// Priority (highest to lowest): flags > environment > .env > sunset.yaml > defaults
func resolveSettings(projectDir string, flags checkFlags, warnOnly bool, logger sunset.Logger) (*config.Settings, error) {
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: project directory %s does not exist", sunset.ErrInvalidConfig, projectDir)
	}

	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return nil, err
	}
	if projectCfg == nil {
		logger.Verbose("No %s in %s, using defaults", config.ConfigFileName, projectDir)
	}

	lookup, err := config.LoadEnv(projectDir, flags.envFile)
	if err != nil {
		return nil, err
	}

	settings, err := config.Resolve(projectDir, projectCfg, lookup, config.Overrides{
		Version:    flags.version,
		OutputDirs: flags.outputDirs,
		MarkerType: flags.markerType,
		WarnOnly:   warnOnly,
	})
	if err != nil {
		return nil, err
	}

	logger.Verbose("Settings resolved:")
	logger.Verbose("  Version: %s", settings.Version)
	logger.Verbose("  Marker type: %s", settings.MarkerType)
	for _, dir := range settings.OutputDirs {
		logger.Verbose("  Output dir: %s", dir)
	}
	logger.Verbose("  Fail on violation: %t", settings.FailOnViolation)
	return settings, nil
}

// scanAll scans every configured output directory in order.
func scanAll(settings *config.Settings, logger sunset.Logger) ([]sunset.ScanReport, error) {
	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), logger, scanner.Options{
		MarkerType:      settings.MarkerType,
		AmbientPackages: settings.AmbientPackages,
	})

	reports := make([]sunset.ScanReport, 0, len(settings.OutputDirs))
	for _, dir := range settings.OutputDirs {
		logger.Verbose("Scanning %s", dir)
		report, err := s.ScanDetailed(dir, settings.Version)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// collectViolations flattens the violations of all reports in scan order and
// counts the units loaded.
func collectViolations(reports []sunset.ScanReport) ([]sunset.Violation, int) {
	var violations []sunset.Violation
	units := 0
	for _, r := range reports {
		violations = append(violations, r.Violations...)
		units += r.UnitsLoaded
	}
	return violations, units
}

// themeFor picks a styled theme only when w is a terminal.
func themeFor(w io.Writer) tui.Theme {
	if f, ok := w.(*os.File); ok {
		return tui.NewTheme(tui.DetectMode(f))
	}
	return tui.NewTheme(tui.ModePlain)
}
