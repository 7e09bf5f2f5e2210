// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds HTTP server and storage settings.
type ServerConfig struct {
	Port         string `toml:"port"`
	DBPath       string `toml:"db_path"`
	KnowledgeDir string `toml:"knowledge_dir"`
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	Endpoint    string  `toml:"endpoint"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	Temperature float64 `toml:"temperature"`
	RateLimit   float64 `toml:"rate_limit"`
	RateBurst   int     `toml:"rate_burst"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			DBPath:       "./data/lifeos.db",
			KnowledgeDir: "./knowledge",
		},
		Provider: ProviderConfig{
			Endpoint:    "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:       "gemini-2.0-flash",
			Temperature: 0.7,
			RateLimit:   2.0,
			RateBurst:   3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.Server.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not configured")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("provider model cannot be empty")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFEOS_PORT"); v != "" {
		cfg.Server.Port = v
	}

	if v := os.Getenv("LIFEOS_DB_PATH"); v != "" {
		cfg.Server.DBPath = v
	}

	if v := os.Getenv("LIFEOS_KNOWLEDGE_DIR"); v != "" {
		cfg.Server.KnowledgeDir = v
	}

	if v := os.Getenv("LIFEOS_PROVIDER_ENDPOINT"); v != "" {
		cfg.Provider.Endpoint = v
	}

	if v := os.Getenv("LIFEOS_PROVIDER_MODEL"); v != "" {
		cfg.Provider.Model = v
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}

	if v := os.Getenv("LIFEOS_PROVIDER_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Provider.Temperature = f
		}
	}

	if v := os.Getenv("LIFEOS_PROVIDER_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Provider.RateLimit = f
		}
	}

	if v := os.Getenv("LIFEOS_PROVIDER_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Provider.RateBurst = n
		}
	}

	if v := os.Getenv("LIFEOS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("LIFEOS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
