package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.anthropic.com", cfg.AnthropicBaseURL)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.DefaultModel)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadJSONCFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydra.jsonc")
	content := `{
		// listen port
		"port": 9090,
		"defaultModel": "claude-haiku-4-5-20251001",
		"theme": "light",
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.DefaultModel)
	assert.Equal(t, "light", cfg.Theme)
	// Untouched fields keep their defaults.
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydra.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvBaseURL, "http://localhost:9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:9999", cfg.AnthropicBaseURL)
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv(EnvAnthropicKey, "sk-test")
	t.Setenv(EnvGoogleKey, "g-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKeys["anthropic"])
	assert.Equal(t, "g-test", cfg.APIKeys["google"])
}
