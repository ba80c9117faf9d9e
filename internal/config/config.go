// Package config loads the application configuration from defaults, an
// optional TOML file and TRIPFLOW_-prefixed environment variables, in
// that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TRIPFLOW_"

// Config represents the application configuration.
type Config struct {
	Server struct {
		Addr            string        `koanf:"addr"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"server"`

	Storage struct {
		// Backend selects the checkpoint store: postgres, sqlite or memory.
		Backend     string `koanf:"backend"`
		DatabaseURL string `koanf:"database_url"`
		SQLitePath  string `koanf:"sqlite_path"`
	} `koanf:"storage"`

	OpenAI struct {
		APIKey      string  `koanf:"api_key"`
		BaseURL     string  `koanf:"base_url"`
		Model       string  `koanf:"model"`
		Temperature float64 `koanf:"temperature"`
	} `koanf:"openai"`

	Search struct {
		APIKey      string `koanf:"api_key"`
		BaseURL     string `koanf:"base_url"`
		Country     string `koanf:"country"`
		Language    string `koanf:"language"`
		Currency    string `koanf:"currency"`
		TravelClass string `koanf:"travel_class"`
		Stops       string `koanf:"stops"`
		SortBy      string `koanf:"sort_by"`
		Adults      int    `koanf:"adults"`
	} `koanf:"search"`

	Agent struct {
		MaxIterations int `koanf:"max_iterations"`
	} `koanf:"agent"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// Load reads the configuration. An empty configPath falls back to the
// default locations; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"server.addr":             ":8080",
		"server.shutdown_timeout": "10s",
		"storage.backend":         "memory",
		"storage.sqlite_path":     "tripflow.db",
		"openai.model":            "gpt-4o-mini",
		"openai.temperature":      0.2,
		"search.country":          "IN",
		"search.language":         "en",
		"search.currency":         "INR",
		"search.travel_class":     "economy",
		"search.stops":            "any",
		"search.sort_by":          "price",
		"search.adults":           1,
		"agent.max_iterations":    10,
		"log.level":               "info",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range []string{"./tripflow.toml", "$HOME/.tripflow.toml"} {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// TRIPFLOW_OPENAI_API_KEY -> openai.api_key: only the first
	// underscore separates the section from the key.
	k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &config, nil
}

// Validate checks the configuration for the selected backends.
func Validate(config *Config) error {
	switch config.Storage.Backend {
	case "postgres":
		if config.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is required for the postgres backend")
		}
	case "sqlite":
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if config.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required")
	}
	if config.Agent.MaxIterations <= 0 {
		return fmt.Errorf("agent.max_iterations must be positive")
	}
	return nil
}
