package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, []string{
		"filme completo dublado",
		"filme dublado pt-br",
		"filme dublado português",
	}, cfg.Ingest.DefaultTerms)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
logLevel: debug
youtube:
  apiKey: file-key
ingest:
  defaultTerms:
    - "filme dublado"
`), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "file-key", cfg.YouTube.APIKey)
	assert.Equal(t, []string{"filme dublado"}, cfg.Ingest.DefaultTerms)
	assert.Equal(t, "localhost", cfg.Postgres.Host, "unset file values keep defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
youtube:
  apiKey: file-key
`), 0o644))
	t.Setenv(configPathEnv, path)
	t.Setenv(youtubeAPIKeyEnv, "env-key")
	t.Setenv(postgresHostEnv, "db.internal")
	t.Setenv(apiPortEnv, "3000")

	cfg := Load()

	assert.Equal(t, "env-key", cfg.YouTube.APIKey)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 3000, cfg.Port)
}

func TestUnreadableFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
}

func TestSlogLevel(t *testing.T) {
	for _, tc := range []struct {
		value string
		exp   slog.Level
	}{
		{value: "debug", exp: slog.LevelDebug},
		{value: "info", exp: slog.LevelInfo},
		{value: "WARN", exp: slog.LevelWarn},
		{value: "warning", exp: slog.LevelWarn},
		{value: " error ", exp: slog.LevelError},
		{value: "", exp: slog.LevelInfo},
		{value: "bogus", exp: slog.LevelInfo},
	} {
		assert.Equal(t, tc.exp, Config{LogLevel: tc.value}.SlogLevel(), "level %q", tc.value)
	}
}
