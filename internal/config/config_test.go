package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing-but-no-fallback.toml"))
	// A named path that does not exist is an error; defaults are only
	// used when no path is given and no default file is found.
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "INR", cfg.Search.Currency)
	assert.Equal(t, 10, cfg.Agent.MaxIterations)
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"

[storage]
backend = "sqlite"
sqlite_path = "/tmp/agent.db"

[agent]
max_iterations = 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/agent.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 5, cfg.Agent.MaxIterations)
	// Untouched keys keep their defaults.
	assert.Equal(t, "economy", cfg.Search.TravelClass)
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	t.Setenv("TRIPFLOW_OPENAI_API_KEY", "sk-test")
	t.Setenv("TRIPFLOW_STORAGE_BACKEND", "postgres")
	t.Setenv("TRIPFLOW_STORAGE_DATABASE_URL", "postgres://localhost/tripflow")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost/tripflow", cfg.Storage.DatabaseURL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.OpenAI.APIKey = "sk-test"
		cfg.Search.APIKey = "sa-test"
		return cfg
	}

	t.Run("memory backend needs no storage settings", func(t *testing.T) {
		assert.NoError(t, Validate(base()))
	})

	t.Run("postgres requires database url", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "postgres"
		assert.Error(t, Validate(cfg))
		cfg.Storage.DatabaseURL = "postgres://localhost/tripflow"
		assert.NoError(t, Validate(cfg))
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Backend = "redis"
		assert.Error(t, Validate(cfg))
	})

	t.Run("missing api keys rejected", func(t *testing.T) {
		cfg := base()
		cfg.OpenAI.APIKey = ""
		assert.Error(t, Validate(cfg))

		cfg = base()
		cfg.Search.APIKey = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("non-positive iteration bound rejected", func(t *testing.T) {
		cfg := base()
		cfg.Agent.MaxIterations = 0
		assert.Error(t, Validate(cfg))
	})
}
