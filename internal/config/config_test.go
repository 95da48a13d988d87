package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	_, vr := NormalizeAndValidate(Defaults())
	assert.True(t, vr.OK(), vr.Errors)
	assert.NoError(t, Validate(Defaults()))
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Backend.BaseURL = "  https://api.example.com/ "
	cfg.Session.CookieName = ""
	cfg.Auth.SignInPath = "api/v1/user/login"

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), vr.Errors)
	assert.Equal(t, "https://api.example.com", out.Backend.BaseURL)
	assert.Equal(t, "accessToken", out.Session.CookieName)
	assert.Equal(t, "/api/v1/user/login", out.Auth.SignInPath)
}

func TestValidationErrors(t *testing.T) {
	cfg := Defaults()
	cfg.App.Port = 0
	cfg.Backend.BaseURL = "ftp://x"
	cfg.Leads.PageSize = 30
	cfg.Backend.TimeoutSeconds = 0

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Len(t, vr.Errors, 4)
	assert.Error(t, Validate(cfg))
}

func TestPlainHTTPRemoteWarns(t *testing.T) {
	cfg := Defaults()
	cfg.Backend.BaseURL = "http://crm.example.com"
	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.NotEmpty(t, vr.Warnings)
}

func TestEnsureUserConfigAndLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	cfg.Leads.PageSize = 50
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, again.Leads.PageSize)

	cfg.Leads.PageSize = 7
	assert.Error(t, SaveAtomic(path, cfg))
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: https://leads.example.com\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://leads.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 20, cfg.Leads.PageSize)
	assert.Equal(t, "accessToken", cfg.Session.CookieName)
}

func TestOverlayEnv(t *testing.T) {
	t.Setenv(EnvBackendURL, "https://override.example.com")
	t.Setenv(EnvPort, "40000")
	t.Setenv(EnvAppEnv, "development")

	cfg := Defaults()
	require.NoError(t, OverlayEnv(&cfg))
	assert.Equal(t, "https://override.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 40000, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)

	t.Setenv(EnvPort, "abc")
	assert.Error(t, OverlayEnv(&cfg))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEADCONSOLE_TEST_DOTENV=yes\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("LEADCONSOLE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "yes", os.Getenv("LEADCONSOLE_TEST_DOTENV"))
}
