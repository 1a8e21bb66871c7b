package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vvka-141/sunset/internal/version"
	"github.com/vvka-141/sunset/pkg/sunset"
)

// Environment variables that override sunset.yaml.
const (
	EnvVersion    = "SUNSET_VERSION"
	EnvMarkerType = "SUNSET_MARKER_TYPE"
)

// DotEnvFileName is read from the project directory when no env file is given.
const DotEnvFileName = ".env"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadEnv returns a lookup over the process environment backed by a dotenv
// file. Process variables win, matching godotenv.Load.
//
// When envFile is empty, <projectDir>/.env is used if present. An explicit
// envFile must exist.
func LoadEnv(projectDir, envFile string) (LookupFunc, error) {
	path := envFile
	if path == "" {
		path = filepath.Join(projectDir, DotEnvFileName)
		if _, err := os.Stat(path); err != nil {
			return os.LookupEnv, nil
		}
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read env file %s: %v", sunset.ErrInvalidConfig, path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

// Overrides holds values given on the command line. Zero values mean "not set".
type Overrides struct {
	Version    string
	OutputDirs []string
	MarkerType string
	WarnOnly   bool
}

// Settings is the effective configuration of one run.
type Settings struct {
	ProjectDir      string
	Version         string
	OutputDirs      []string // resolved against ProjectDir
	MarkerType      string
	FailOnViolation bool
	AmbientPackages []string
}

// Unspecified reports whether no project version was configured.
func (s *Settings) Unspecified() bool {
	return s.Version == sunset.UnspecifiedVersion
}

// Resolve merges defaults, the project file, the environment and command-line
// overrides, in increasing priority, and validates the result.
// cfg may be nil when the project has no sunset.yaml.
func Resolve(projectDir string, cfg *ProjectConfig, lookup LookupFunc, o Overrides) (*Settings, error) {
	s := &Settings{
		ProjectDir:      projectDir,
		Version:         sunset.UnspecifiedVersion,
		OutputDirs:      []string{sunset.DefaultOutputDir},
		MarkerType:      sunset.DefaultMarkerType,
		FailOnViolation: true,
	}

	if cfg != nil {
		if cfg.Version != "" {
			s.Version = cfg.Version
		}
		if len(cfg.OutputDirs) > 0 {
			s.OutputDirs = cfg.OutputDirs
		}
		if cfg.MarkerType != "" {
			s.MarkerType = cfg.MarkerType
		}
		if cfg.FailOnViolation != nil {
			s.FailOnViolation = *cfg.FailOnViolation
		}
		s.AmbientPackages = cfg.AmbientPackages
	}

	if lookup != nil {
		if v, ok := lookup(EnvVersion); ok && v != "" {
			s.Version = v
		}
		if v, ok := lookup(EnvMarkerType); ok && v != "" {
			s.MarkerType = v
		}
	}

	if o.Version != "" {
		s.Version = o.Version
	}
	if len(o.OutputDirs) > 0 {
		s.OutputDirs = o.OutputDirs
	}
	if o.MarkerType != "" {
		s.MarkerType = o.MarkerType
	}
	if o.WarnOnly {
		s.FailOnViolation = false
	}

	s.Version = strings.TrimSpace(s.Version)
	s.MarkerType = strings.TrimSpace(s.MarkerType)

	if err := s.validate(); err != nil {
		return nil, err
	}

	resolved := make([]string, 0, len(s.OutputDirs))
	for _, dir := range s.OutputDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(projectDir, dir)
		}
		resolved = append(resolved, dir)
	}
	s.OutputDirs = resolved

	return s, nil
}

func (s *Settings) validate() error {
	var errs []error

	if !s.Unspecified() {
		if err := version.Validate(s.Version); err != nil {
			errs = append(errs, fmt.Errorf("version: %w", err))
		}
	}

	if s.MarkerType == "" || strings.ContainsAny(s.MarkerType, " \t/") {
		errs = append(errs, fmt.Errorf("marker_type: %q is not a qualified type name", s.MarkerType))
	}

	for i, dir := range s.OutputDirs {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("output_dirs[%d]: empty path", i))
		}
	}

	for i, p := range s.AmbientPackages {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("ambient_packages[%d]: empty prefix", i))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", sunset.ErrInvalidConfig, errors.Join(errs...))
}
