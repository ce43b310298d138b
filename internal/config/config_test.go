package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvLogLevel, "")
	return home
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := setupHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultProfileName, cfg.ActiveProfile)
	assert.False(t, cfg.IsValid())
	assert.Equal(t, DefaultModel, cfg.GetModel())
	assert.Equal(t, "pt-BR", cfg.GetLanguage())
	assert.InDelta(t, 0.2, cfg.GetTemperature(), 1e-6)
	assert.Equal(t, DefaultMaxDimension, cfg.GetMaxDimension())
	assert.Zero(t, cfg.GetTimeout())
	assert.False(t, cfg.ClampValues())
	assert.Equal(t, "info", cfg.GetLogLevel())

	info, err := os.Stat(filepath.Join(home, ".nutrivision", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveAndReload(t *testing.T) {
	setupHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Profiles["work"] = Profile{
		APIKey:         "sk-work",
		BaseURL:        "https://llm.example.com/v1",
		Model:          "gpt-4o",
		Language:       "en",
		TimeoutSeconds: 45,
		MaxDimension:   -1,
		ClampValues:    true,
	}
	require.NoError(t, cfg.Use("work"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "work", reloaded.ActiveProfile)
	assert.True(t, reloaded.IsValid())
	assert.Equal(t, "sk-work", reloaded.GetAPIKey())
	assert.Equal(t, "https://llm.example.com/v1", reloaded.GetBaseURL())
	assert.Equal(t, "gpt-4o", reloaded.GetModel())
	assert.Equal(t, "en", reloaded.GetLanguage())
	assert.Equal(t, 45*time.Second, reloaded.GetTimeout())
	assert.Zero(t, reloaded.GetMaxDimension())
	assert.True(t, reloaded.ClampValues())
}

func TestEnvironmentOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvAPIKey, "sk-from-env")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsValid())
	assert.Equal(t, "sk-from-env", cfg.GetAPIKey())
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestUnknownActiveProfileFallsBack(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, ".nutrivision")
	require.NoError(t, os.MkdirAll(dir, 0755))
	raw := `{"profiles": {"only": {"api_key": "k", "model": "m"}}, "active_profile": "gone"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "only", cfg.ActiveProfile)
	assert.Equal(t, "m", cfg.GetModel())
	assert.Error(t, cfg.Use("missing"))
}

func TestEmptyProfilesIsAnError(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, ".nutrivision")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"profiles": {}}`), 0600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestAddProfile(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.AddProfile("work", DefaultProfile()))
	assert.Error(t, cfg.AddProfile("work", DefaultProfile()))
	assert.Error(t, cfg.AddProfile("", DefaultProfile()))
	assert.Equal(t, []string{"work"}, cfg.ProfileNames())
}

func TestDeleteProfile(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{
		"a": {Model: "model-a"},
		"b": {Model: "model-b"},
		"c": {Model: "model-c"},
	}}
	require.NoError(t, cfg.Use("b"))

	require.NoError(t, cfg.DeleteProfile("c"))
	assert.Equal(t, "b", cfg.ActiveProfile)

	require.NoError(t, cfg.DeleteProfile("b"))
	assert.Equal(t, "a", cfg.ActiveProfile)
	assert.Equal(t, "model-a", cfg.GetModel())

	require.NoError(t, cfg.DeleteProfile("a"))
	assert.Equal(t, []string{DefaultProfileName}, cfg.ProfileNames())
	assert.Equal(t, DefaultProfileName, cfg.ActiveProfile)
	assert.Equal(t, DefaultModel, cfg.GetModel())

	assert.Error(t, cfg.DeleteProfile("missing"))
}
