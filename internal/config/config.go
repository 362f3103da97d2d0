// Package config loads the bridge configuration from an optional YAML
// file, with environment-variable overrides for deployment knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// #region config

// Config is the full bridge configuration.
type Config struct {
	// ServiceAddr is the UDP endpoint of the adaptive-tuning service.
	ServiceAddr string `yaml:"service_addr"`
	// ServiceTimeoutMS bounds one remote exchange.
	ServiceTimeoutMS int `yaml:"service_timeout_ms"`

	ListenAddr string `yaml:"listen_addr"` // websocket motion feed
	DBPath     string `yaml:"db_path"`

	TickRate       int `yaml:"tick_rate"` // ticks per second
	MaxPlayers     int `yaml:"max_players"`
	HistorySize    int `yaml:"history_size"`
	UpdateInterval int `yaml:"update_interval"` // ticks between AI passes

	// DifficultyTrendRate drifts global difficulty toward mean skill per
	// AI tick. Zero disables.
	DifficultyTrendRate float32 `yaml:"difficulty_trend_rate"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ServiceAddr:         "127.0.0.1:8080",
		ServiceTimeoutMS:    100,
		ListenAddr:          ":9190",
		DBPath:              "bridge.db",
		TickRate:            60,
		MaxPlayers:          4,
		HistorySize:         16,
		UpdateInterval:      16,
		DifficultyTrendRate: 0.01,
	}
}

// ServiceTimeout returns the remote-exchange deadline as a duration.
func (c Config) ServiceTimeout() time.Duration {
	return time.Duration(c.ServiceTimeoutMS) * time.Millisecond
}

// #endregion config

// #region load

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Environment overrides apply last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults are a complete configuration.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ServiceAddr = envOr("BRIDGE_SERVICE_ADDR", cfg.ServiceAddr)
	cfg.ListenAddr = envOr("BRIDGE_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DBPath = envOr("BRIDGE_DB", cfg.DBPath)

	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("config %s: tick_rate must be positive", path)
	}
	if cfg.MaxPlayers <= 0 {
		return Config{}, fmt.Errorf("config %s: max_players must be positive", path)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load
