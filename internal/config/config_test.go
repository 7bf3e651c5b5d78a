package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_RepositoryConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "feedme.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.URL)
	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
	assert.Equal(t, "/api", cfg.MockAPI.BasePath)
	assert.Equal(t, 7, cfg.Display.Days)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  url: http://food.example/api
display:
  timezone: America/Los_Angeles
  days: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://food.example/api", cfg.API.URL)
	assert.Equal(t, "feedme", cfg.API.UserAgent, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.Display.Days)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FEEDME_API_URL", "http://env.example")
	t.Setenv("FEEDME_LOG_LEVEL", "debug")
	t.Setenv("FEEDME_ENV", "production")
	t.Setenv("FEEDME_TIMEZONE", "UTC")
	t.Setenv("FEEDME_REQUEST_TIMEOUT", "2s")
	t.Setenv("FEEDME_MOCKAPI_PORT", "9090")
	t.Setenv("FEEDME_METRICS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.API.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.MockAPI.Port)
	assert.True(t, cfg.Metrics)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.False(t, lc.Development)
}

func TestLoad_IgnoresMalformedNumericEnv(t *testing.T) {
	t.Setenv("FEEDME_MOCKAPI_PORT", "eighty")
	t.Setenv("FEEDME_METRICS", "perhaps")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.MockAPI.Port)
	assert.False(t, cfg.Metrics)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "api: [unclosed"},
		{"bad timeout", "api:\n  timeout: soon\n"},
		{"bad timezone", "display:\n  timezone: Mars/Olympus\n"},
		{"no days", "display:\n  days: 0\n"},
		{"empty url", "api:\n  url: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
