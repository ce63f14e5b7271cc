package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"CONFIG_PATH", "PORT", "HTTP_ADDRESS", "GROQ_API_KEY", "LLM_API_KEY", "LLM_BASE_URL",
	"LLM_MODEL", "LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT", "KNOWLEDGE_PATH",
	"KNOWLEDGE_VENUE", "KNOWLEDGE_POSTGRES_DSN", "STATS_LIMIT", "STATS_VALKEY_ENABLED", "STATS_VALKEY_ADDR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedEnv {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.HTTP.Address)
	require.Equal(t, "llama3-8b-8192", cfg.LLM.Model)
	require.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
	require.Equal(t, 300, cfg.LLM.MaxTokens)
	require.False(t, cfg.LLM.RemoteEnabled())
	require.Empty(t, cfg.Knowledge.Path)
	require.Equal(t, 10, cfg.Stats.Limit)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LLM_MODEL", "llama-3.1-8b-instant")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_MAX_TOKENS", "128")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("STATS_VALKEY_ENABLED", "true")
	t.Setenv("STATS_VALKEY_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.True(t, cfg.LLM.RemoteEnabled())
	require.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	require.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	require.Equal(t, 128, cfg.LLM.MaxTokens)
	require.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	require.True(t, cfg.Stats.Valkey.Enabled)
}

func TestLoadIgnoresMalformedPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.HTTP.Address)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http:\n  address: \":7000\"\nllm:\n  apiKey: from-file\n  maxTokens: 64\nknowledge:\n  path: /srv/kb.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_API_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.HTTP.Address)
	require.Equal(t, "from-env", cfg.LLM.APIKey)
	require.Equal(t, 64, cfg.LLM.MaxTokens)
	require.Equal(t, "/srv/kb.yaml", cfg.Knowledge.Path)
	require.Equal(t, "llama3-8b-8192", cfg.LLM.Model, "unset keys keep defaults")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "empty model", mutate: func(c *Config) { c.LLM.Model = " " }},
		{name: "temperature", mutate: func(c *Config) { c.LLM.Temperature = 3 }},
		{name: "max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }},
		{name: "timeout", mutate: func(c *Config) { c.LLM.Timeout = -time.Second }},
		{name: "postgres venue", mutate: func(c *Config) { c.Knowledge.Postgres.DSN = "postgres://x"; c.Knowledge.Venue = "" }},
		{name: "stats limit", mutate: func(c *Config) { c.Stats.Limit = -1 }},
		{name: "valkey addr", mutate: func(c *Config) { c.Stats.Valkey.Enabled = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}
