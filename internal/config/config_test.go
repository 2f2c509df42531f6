package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_URL", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventhub.yaml")
	data := []byte("api_url: https://file.example.com/\nport: \"9000\"\nallowed_origins:\n  - https://a.example.com\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_URL", "")
	t.Setenv("PORT", "7000")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("API_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, []string{"https://a.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
}

func TestLoadConfig_RejectsRelativeAPIURL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_URL", "localhost:5000/api")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}
