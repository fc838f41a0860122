package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	svc := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.UI.PageSize)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Company = "Sharma Traders"
	cfg.UI.VimKeys = true
	cfg.UI.PageSize = 50
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("company = \"Acme\"\n[ui]\nvim_keys = true\n"), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Company)
	assert.True(t, cfg.UI.VimKeys)
	assert.Equal(t, 20, cfg.UI.PageSize)
	assert.Equal(t, "15s", cfg.API.Timeout)
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://books.example.com")
	cfg, err := NewConfigService(filepath.Join(t.TempDir(), "config.toml")).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://books.example.com", cfg.API.BaseURL)
}

func TestLoadRejectsBadFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = ["), 0644))

	_, err := NewConfigService(path).Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "localhost:8080" }},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }},
		{"huge page size", func(c *Config) { c.UI.PageSize = 1000 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	cfg.API.Timeout = "2m"
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout())
	cfg.API.Timeout = ""
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
}
