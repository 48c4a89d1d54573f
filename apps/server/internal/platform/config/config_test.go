package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsafe/intake/apps/server/internal/platform/config"
)

// clearEnv blanks every config-related variable so tests see a clean slate.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "REPO_FULL_NAME", "GITHUB_BRANCH", "GITHUB_BASE_URL",
		"GITHUB_TOKEN", "GITHUB_APP_ID", "GITHUB_INSTALLATION_ID", "GITHUB_PRIVATE_KEY_PATH",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPO_FULL_NAME", "acme/fatigue-reports")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Repo.Owner)
	assert.Equal(t, "fatigue-reports", cfg.Repo.Name)
	assert.Equal(t, "acme/fatigue-reports", cfg.Repo.String())
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.UsesAppAuth())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: \"9999\"\nrepository: acme/from-file\nbranch: archive\ngithub:\n  token: file-token\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("REPO_FULL_NAME", "acme/from-env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "acme/from-env", cfg.Repo.String())
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "archive", cfg.Branch)
	assert.Equal(t, "file-token", cfg.GitHub.Token)
}

func TestLoad_MissingRepo_ReturnsError(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	_, err := config.Load()
	assert.ErrorContains(t, err, "REPO_FULL_NAME")
}

func TestLoad_MalformedRepo_ReturnsError(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPO_FULL_NAME", "not-a-full-name")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	_, err := config.Load()
	assert.ErrorContains(t, err, "owner/name")
}

func TestLoad_MissingCredential_ReturnsError(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPO_FULL_NAME", "acme/fatigue-reports")

	_, err := config.Load()
	assert.ErrorContains(t, err, "credential")
}

func TestLoad_AppAuthRequiresKeyAndInstallation(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPO_FULL_NAME", "acme/fatigue-reports")
	t.Setenv("GITHUB_APP_ID", "1234")

	_, err := config.Load()
	assert.ErrorContains(t, err, "GITHUB_INSTALLATION_ID")

	t.Setenv("GITHUB_INSTALLATION_ID", "5678")
	t.Setenv("GITHUB_PRIVATE_KEY_PATH", "/etc/intake/app.pem")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesAppAuth())
}
