// Package config builds the immutable process configuration for the intake
// server. It is constructed once in main, before any request is served, and
// passed down — handlers never read the environment themselves.
//
// Values come from an optional YAML file named by CONFIG_FILE, with
// environment variables taking precedence:
//
//	PORT                    listen port (default 8080)
//	REPO_FULL_NAME          target repository as "owner/name" (required)
//	GITHUB_BRANCH           target branch (default main)
//	GITHUB_BASE_URL         API base URL override, e.g. a mock server
//	GITHUB_TOKEN            personal access token auth
//	GITHUB_APP_ID           GitHub App auth (with the two below)
//	GITHUB_INSTALLATION_ID
//	GITHUB_PRIVATE_KEY_PATH
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Repo identifies the target repository.
type Repo struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form.
func (r Repo) String() string { return r.Owner + "/" + r.Name }

// GitHub holds the credential and API endpoint settings.
type GitHub struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	AppID          int64  `yaml:"app_id"`
	InstallationID int64  `yaml:"installation_id"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

// Config is the full server configuration. It holds no live resources and
// needs no teardown.
type Config struct {
	Port   string
	Repo   Repo
	Branch string
	GitHub GitHub
}

// UsesAppAuth reports whether GitHub App credentials are configured.
// When false, token auth is used.
func (c *Config) UsesAppAuth() bool {
	return c.GitHub.AppID != 0
}

type fileConfig struct {
	Port       string `yaml:"port"`
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
	GitHub     GitHub `yaml:"github"`
}

// Load reads the optional CONFIG_FILE, applies environment overrides, and
// validates that a repository and a credential are present.
func Load() (*Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:   override(fc.Port, "PORT"),
		Branch: override(fc.Branch, "GITHUB_BRANCH"),
		GitHub: GitHub{
			BaseURL:        override(fc.GitHub.BaseURL, "GITHUB_BASE_URL"),
			Token:          override(fc.GitHub.Token, "GITHUB_TOKEN"),
			AppID:          fc.GitHub.AppID,
			InstallationID: fc.GitHub.InstallationID,
			PrivateKeyPath: override(fc.GitHub.PrivateKeyPath, "GITHUB_PRIVATE_KEY_PATH"),
		},
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}

	var err error
	if cfg.GitHub.AppID, err = overrideInt(cfg.GitHub.AppID, "GITHUB_APP_ID"); err != nil {
		return nil, err
	}
	if cfg.GitHub.InstallationID, err = overrideInt(cfg.GitHub.InstallationID, "GITHUB_INSTALLATION_ID"); err != nil {
		return nil, err
	}

	fullName := override(fc.Repository, "REPO_FULL_NAME")
	if cfg.Repo, err = parseRepo(fullName); err != nil {
		return nil, err
	}

	if cfg.GitHub.Token == "" && cfg.GitHub.AppID == 0 {
		return nil, fmt.Errorf("no credential configured: set GITHUB_TOKEN or GITHUB_APP_ID")
	}
	if cfg.GitHub.AppID != 0 && (cfg.GitHub.InstallationID == 0 || cfg.GitHub.PrivateKeyPath == "") {
		return nil, fmt.Errorf("GitHub App auth requires GITHUB_INSTALLATION_ID and GITHUB_PRIVATE_KEY_PATH")
	}
	return cfg, nil
}

func parseRepo(fullName string) (Repo, error) {
	if fullName == "" {
		return Repo{}, fmt.Errorf("no target repository configured: set REPO_FULL_NAME")
	}
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, fmt.Errorf("invalid repository %q: expected owner/name", fullName)
	}
	return Repo{Owner: owner, Name: name}, nil
}

func override(fileVal, envKey string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fileVal
}

func overrideInt(fileVal int64, envKey string) (int64, error) {
	v := os.Getenv(envKey)
	if v == "" {
		return fileVal, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
	}
	return n, nil
}
