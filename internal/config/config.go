package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig mirrors sunset.yaml. Every field is optional.
type ProjectConfig struct {
	Version         string   `yaml:"version"`
	OutputDirs      []string `yaml:"output_dirs"`
	MarkerType      string   `yaml:"marker_type"`
	FailOnViolation *bool    `yaml:"fail_on_violation"`
	AmbientPackages []string `yaml:"ambient_packages"`
}

const ConfigFileName = "sunset.yaml"

func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}
