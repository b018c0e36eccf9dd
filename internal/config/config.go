package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/orsynth/internal/gen"
)

// Config holds all runtime configuration for an orsynth run.
type Config struct {
	DSN        string
	OutDir     string
	DatasetDir string
	LogFormat  string // "text" or "json"
	Force      bool

	Run    gen.RunConfig
	Params gen.Params
}

// Default returns a Config with the built-in generation defaults.
func Default() Config {
	return Config{
		LogFormat: "text",
		Run:       gen.DefaultRunConfig(),
		Params:    gen.DefaultParams(),
	}
}

// fileConfig is the on-disk YAML structure. Sections unmarshal over the
// current values, so a file only needs the keys it overrides.
type fileConfig struct {
	Run    *gen.RunConfig `yaml:"run"`
	Params *gen.Params    `yaml:"params"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{Run: &c.Run, Params: &c.Params}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ValidateGenerate checks the fields the generate and plan commands need.
// Stage parameters validate themselves when the pipeline starts.
func (c *Config) ValidateGenerate() error {
	if c.OutDir == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

// ValidateLoad checks the fields the load command needs.
func (c *Config) ValidateLoad() error {
	if c.DatasetDir == "" {
		return fmt.Errorf("--dataset is required")
	}
	if _, err := os.Stat(c.DatasetDir); err != nil {
		return fmt.Errorf("dataset dir not accessible: %w", err)
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or ORSYNTH_DB_URL is required")
	}
	return nil
}
