package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STEAM_EXTRACT_CONFIG", "APP_ADDR", "CACHE_DB_PATH", "CACHE_NAMESPACE", "STEAM_API_URL",
		"CATALOG_BASE_URL", "API_RPS", "API_TIMEOUT", "SCRAPE_ENABLED", "BROWSER_ENABLED", "OBSERVE_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":8080"
cache_namespace: test-ns
api_rps: 4
browser_enabled: true
observe_interval: 500ms
`), 0644))

	t.Setenv("STEAM_EXTRACT_CONFIG", path)
	t.Setenv("APP_ADDR", ":7070")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SCRAPE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "test-ns", cfg.CacheNamespace)
	assert.Equal(t, 4.0, cfg.APIRPS)
	assert.True(t, cfg.BrowserEnabled)
	assert.False(t, cfg.ScrapeEnabled)
	assert.Equal(t, 500*time.Millisecond, cfg.ObserveInterval)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"API_RPS":          "fast",
		"API_TIMEOUT":      "soon",
		"BROWSER_ENABLED":  "maybe",
		"OBSERVE_INTERVAL": "0s",
	}

	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
