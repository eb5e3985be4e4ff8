// Package config provides analyzer configuration with defaults, YAML file
// loading, and validation.
package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// Config holds engine and analysis settings.
type Config struct {
	// EnginePath is the UCI engine binary. Empty means auto-discover.
	EnginePath string `yaml:"engine_path"`

	// Depth is the search depth limit per evaluator query.
	Depth int `yaml:"depth"`

	// MoveTimeMS is the time limit per evaluator query in milliseconds.
	MoveTimeMS int `yaml:"move_time_ms"`

	// SkillLevel is the engine skill level, 0 (weakest) to 20.
	SkillLevel int `yaml:"skill_level"`

	// Workers is the number of concurrent game analyses in batch mode.
	// Each worker owns its own engine session.
	Workers int `yaml:"workers"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Depth:      12,
		MoveTimeMS: 1000,
		SkillLevel: 20,
		Workers:    runtime.NumCPU(),
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "parsing %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Depth < 1 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "depth must be positive, got %d", c.Depth)
	}
	if c.MoveTimeMS < 1 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "move time must be positive, got %d", c.MoveTimeMS)
	}
	if c.SkillLevel < 0 || c.SkillLevel > 20 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "skill level must be 0-20, got %d", c.SkillLevel)
	}
	if c.Workers < 1 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	}
	return nil
}
