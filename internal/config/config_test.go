package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Lookup.Mode, cfg.Lookup.Mode)
	assert.Equal(t, time.Second, cfg.UI.RefreshDelay)
	assert.Equal(t, def.UI.Suggestions, cfg.UI.Suggestions)
	assert.Equal(t, 20, cfg.Brave.NewsResults)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
lookup:
  mode: catalog
cache:
  ttl: 2m
ui:
  refresh_delay: 250ms
  suggestions: ["Solana", "Dogecoin"]
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CRYPTOSCOPE_GEMINI_API_KEY", "secret")
	t.Setenv("CRYPTOSCOPE_SERVER_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeCatalog, cfg.Lookup.Mode)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.RefreshDelay)
	assert.Equal(t, []string{"Solana", "Dogecoin"}, cfg.UI.Suggestions)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9191", cfg.Server.Addr())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lookup.Mode = "psychic"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.UI.RefreshDelay = 0
	assert.Error(t, cfg.Validate())
}
