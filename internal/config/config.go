// Package config loads server configuration from an optional TOML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	Redis   RedisConfig   `toml:"redis"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration wraps time.Duration so TOML values like "15s" decode.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	// Type is "memory" or "redis".
	Type string `toml:"type"`
}

// RedisConfig holds Redis connection settings (used when storage type is redis).
type RedisConfig struct {
	URL          string `toml:"url"`
	PoolSize     int    `toml:"pool_size"`
	MinIdleConns int    `toml:"min_idle_conns"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second}, // Long timeout for SSE
			ShutdownTimeout: Duration{30 * time.Second},
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Type: "memory",
		},
		Redis: RedisConfig{
			URL:          "redis://localhost:6379",
			PoolSize:     10,
			MinIdleConns: 2,
		},
	}
}

// Load reads configuration from path (if non-empty and the file exists),
// layered over defaults, then applies MMLEDGER_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.Storage.Type != "memory" && cfg.Storage.Type != "redis" {
		return cfg, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MMLEDGER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("MMLEDGER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MMLEDGER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MMLEDGER_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("MMLEDGER_REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}
