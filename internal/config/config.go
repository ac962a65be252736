// Package config provides TOML configuration loading and XDG path helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Progress ProgressConfig `toml:"progress"`
	Session  SessionConfig  `toml:"session"`
}

// ProgressConfig overrides pieces of the default engine configuration.
// Keys are game type identifiers; unknown keys are rejected.
type ProgressConfig struct {
	Weights         map[string]float64 `toml:"weights"`
	TotalLevels     map[string]int     `toml:"total_levels"`
	MinimumLevels   map[string]int     `toml:"minimum_levels"`
	ScoreThresholds map[string]int     `toml:"score_thresholds"`

	// Achievements, when present, replaces the stock definition list.
	Achievements []progress.AchievementDefinition `toml:"achievements"`
}

// SessionConfig maps session lifecycle settings.
type SessionConfig struct {
	TimeoutMinutes *int `toml:"timeout_minutes"`
}

// Load reads a TOML config from the given path. A missing file is not an
// error; the zero FileConfig applies no overrides.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Apply merges the file overrides over base and returns the result.
// Unknown game type keys surface as configuration errors; threshold
// sanity is left to progress.Config.Validate.
func (fc FileConfig) Apply(base progress.Config) (progress.Config, error) {
	for key, w := range fc.Progress.Weights {
		t := game.Type(key)
		if !t.Valid() {
			return base, &progress.ConfigError{Field: "weights", Reason: fmt.Sprintf("unknown game type %q", key)}
		}
		base.GameWeights[t] = w
	}
	for key, n := range fc.Progress.TotalLevels {
		t := game.Type(key)
		if !t.Valid() {
			return base, &progress.ConfigError{Field: "total_levels", Reason: fmt.Sprintf("unknown game type %q", key)}
		}
		base.TotalLevels[t] = n
	}
	for key, n := range fc.Progress.MinimumLevels {
		t := game.Type(key)
		if !t.Valid() {
			return base, &progress.ConfigError{Field: "minimum_levels", Reason: fmt.Sprintf("unknown game type %q", key)}
		}
		base.MinimumLevels[t] = n
	}
	for key, n := range fc.Progress.ScoreThresholds {
		t := game.Type(key)
		if !t.Valid() {
			return base, &progress.ConfigError{Field: "score_thresholds", Reason: fmt.Sprintf("unknown game type %q", key)}
		}
		base.ScoreThresholds[t] = n
	}
	if fc.Progress.Achievements != nil {
		base.Achievements = fc.Progress.Achievements
	}
	return base, nil
}

// SessionTimeout returns the configured sweep timeout, or the default.
func (fc FileConfig) SessionTimeout() time.Duration {
	if fc.Session.TimeoutMinutes != nil && *fc.Session.TimeoutMinutes > 0 {
		return time.Duration(*fc.Session.TimeoutMinutes) * time.Minute
	}
	return 30 * time.Minute
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "wreckdiver", "config.toml")
}
