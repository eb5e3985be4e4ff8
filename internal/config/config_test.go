package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/chesskit/analyzer-go/internal/errors"
	"github.com/chesskit/analyzer-go/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	want := &Config{
		Depth:      12,
		MoveTimeMS: 1000,
		SkillLevel: 20,
		Workers:    runtime.NumCPU(),
	}
	testutil.AssertEqual(t, cfg, want)
	testutil.AssertNoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
engine_path: /opt/engines/stockfish
depth: 18
skill_level: 15
`)

	cfg, err := Load(path)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.EnginePath, "/opt/engines/stockfish")
	testutil.AssertEqual(t, cfg.Depth, 18)
	testutil.AssertEqual(t, cfg.SkillLevel, 15)

	// Unset keys keep their defaults.
	testutil.AssertEqual(t, cfg.MoveTimeMS, 1000)
	testutil.AssertEqual(t, cfg.Workers, runtime.NumCPU())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.AssertError(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "depth: [not a number")

	_, err := Load(path)
	testutil.AssertError(t, err)
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "depth: -3")

	_, err := Load(path)
	testutil.AssertError(t, err)
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero depth", func(c *Config) { c.Depth = 0 }, true},
		{"zero move time", func(c *Config) { c.MoveTimeMS = 0 }, true},
		{"negative skill", func(c *Config) { c.SkillLevel = -1 }, true},
		{"skill too high", func(c *Config) { c.SkillLevel = 21 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"minimum skill", func(c *Config) { c.SkillLevel = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				testutil.AssertError(t, err)
				if !errors.Is(err, apperrors.ErrInvalidConfig) {
					t.Errorf("error = %v, want ErrInvalidConfig", err)
				}
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}
