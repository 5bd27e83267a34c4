// Package config loads photoflow settings from an optional YAML file with
// environment overrides. Everything the engine needs travels inside the
// returned struct; nothing is read ambiently at call sites.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AIConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	GapMinutes      int    `yaml:"gap_minutes"`
	Concurrency     int    `yaml:"concurrency"`
	DryRun          bool   `yaml:"dry_run"`
	ForceReclassify bool   `yaml:"force_reclassify"`
	Overwrite       bool   `yaml:"overwrite"`
	BlockNames      bool   `yaml:"block_names"`
	AutoName        bool   `yaml:"auto_name"`
	CachePath       string `yaml:"cache_path"`
	ListenAddr      string `yaml:"listen_addr"`
	Debug           bool   `yaml:"debug"`

	AI AIConfig `yaml:"ai"`
}

// Default returns the built-in settings: a 10 minute continuity gap and a
// single analyzer worker.
func Default() Config {
	return Config{
		GapMinutes:  10,
		Concurrency: 1,
		CachePath:   "photoflow-cache.db",
		ListenAddr:  ":8686",
	}
}

// Load reads path on top of the defaults. A missing file is fine; the
// defaults apply. The OPENAI_API_KEY environment variable overrides the
// file's API key either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	if cfg.GapMinutes <= 0 {
		cfg.GapMinutes = 10
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return cfg, nil
}

// AITimeout returns the configured analyzer timeout.
func (c Config) AITimeout() time.Duration {
	if c.AI.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}
