// Package config loads tool configuration by layering defaults, an optional
// YAML file, and environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds defaults for the CLI. Every value can be overridden per
// invocation by a flag.
type Config struct {
	// DBPath locates the SQLite feature store.
	DBPath string `koanf:"db_path"`

	// Window is the trailing game count for form, head-to-head, and splits.
	Window int `koanf:"window"`

	// MinHistory skips games where either team has fewer prior games.
	MinHistory int `koanf:"min_history"`

	// Workers controls parallel feature assembly; 1 = sequential.
	Workers int `koanf:"workers"`

	// RollingWindows are the trailing-mean windows of the per-team variant.
	RollingWindows []int `koanf:"rolling_windows"`

	// Split ratios for dataset building; must sum to 1.
	TrainRatio float64 `koanf:"train_ratio"`
	ValRatio   float64 `koanf:"val_ratio"`
	TestRatio  float64 `koanf:"test_ratio"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:         filepath.Join(userHome(), ".hoopsfeat", "features.db"),
		Window:         10,
		MinHistory:     5,
		Workers:        1,
		RollingWindows: []int{5, 10, 20},
		TrainRatio:     0.70,
		ValRatio:       0.15,
		TestRatio:      0.15,
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if HOOPSFEAT_CONFIG is set
//  3. env (prefix HOOPSFEAT_), e.g. HOOPSFEAT_WINDOW=20
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path := os.Getenv("HOOPSFEAT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like HOOPSFEAT_MIN_HISTORY -> min_history (flat keys,
	// underscores preserved to match the koanf tags).
	envProvider := env.Provider("HOOPSFEAT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "hoopsfeat_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.Window <= 0 {
		return nil, errors.New("window must be positive")
	}
	return &cfg, nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
