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
	// When
	cfg, err := LoadConfig("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "UTC", cfg.Location)
	assert.Equal(t, "us-east-1", cfg.DefaultRegion)
	assert.Equal(t, StoreDynamoDB, cfg.Store.Backend)
	assert.Equal(t, "CostGuardianResourceLogs", cfg.Store.Table)
	assert.Equal(t, PublisherGitHub, cfg.Publisher.Backend)
	assert.Equal(t, "main", cfg.Publisher.Branch)
	assert.Equal(t, "public/data.json", cfg.Publisher.Path)
	assert.False(t, cfg.Publisher.GitHub.Configured())
	assert.Zero(t, cfg.ExportInterval)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `listen: "127.0.0.1:9000"
location: "Europe/Berlin"
export_interval: 15m
store:
  backend: sqlite
  sqlite_path: /tmp/logs.db
  page_size: 250
publisher:
  backend: s3
  path: dashboard/data.json
  s3:
    bucket: dashboards`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := LoadConfig(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/logs.db", cfg.Store.SQLitePath)
	assert.Equal(t, 250, cfg.Store.PageSize)
	assert.Equal(t, 15*time.Minute, cfg.ExportInterval)
	assert.Equal(t, PublisherS3, cfg.Publisher.Backend)
	assert.Equal(t, "dashboards", cfg.Publisher.S3.Bucket)
	assert.Equal(t, "dashboard/data.json", cfg.Publisher.Path)

	loc, err := cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Run("legacy names", func(t *testing.T) {
		t.Setenv("DYNAMODB_TABLE", "LegacyTable")
		t.Setenv("GITHUB_TOKEN", "ghp_legacy")
		t.Setenv("GITHUB_REPO", "acme/dashboard")
		t.Setenv("GITHUB_BRANCH", "gh-pages")
		t.Setenv("DATA_FILE_PATH", "data.json")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "LegacyTable", cfg.Store.Table)
		assert.Equal(t, "ghp_legacy", cfg.Publisher.GitHub.Token)
		assert.Equal(t, "acme/dashboard", cfg.Publisher.GitHub.Repo)
		assert.Equal(t, "gh-pages", cfg.Publisher.Branch)
		assert.Equal(t, "data.json", cfg.Publisher.Path)
		assert.True(t, cfg.Publisher.GitHub.Configured())
	})

	t.Run("prefixed names win", func(t *testing.T) {
		t.Setenv("DYNAMODB_TABLE", "LegacyTable")
		t.Setenv("COSTGUARDIAN_STORE_TABLE", "PrefixedTable")
		t.Setenv("COSTGUARDIAN_LISTEN", ":9999")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "PrefixedTable", cfg.Store.Table)
		assert.Equal(t, ":9999", cfg.Listen)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name: "collects every problem",
			mutate: func(c *Config) {
				c.Listen = ""
				c.Location = "Mars/Olympus"
				c.Store.Backend = "postgres"
				c.Publisher.Backend = "ftp"
			},
			wantErr: []string{
				"listen address is required",
				`unknown location "Mars/Olympus"`,
				`unknown store backend "postgres"`,
				`unknown publisher backend "ftp"`,
			},
		},
		{
			name: "malformed repository",
			mutate: func(c *Config) {
				c.Publisher.GitHub.Repo = "dashboard"
			},
			wantErr: []string{`repository "dashboard" must be in owner/name form`},
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Config) {
				c.Publisher.Backend = PublisherS3
			},
			wantErr: []string{"publisher.s3.bucket is required"},
		},
		{
			name: "negative page size",
			mutate: func(c *Config) {
				c.Store.PageSize = -1
			},
			wantErr: []string{"store.page_size must not be negative"},
		},
		{
			name: "negative export interval",
			mutate: func(c *Config) {
				c.ExportInterval = -time.Minute
			},
			wantErr: []string{"export_interval must not be negative"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()

			if len(tc.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tc.wantErr {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}

func TestGitHubConfig_OwnerRepo(t *testing.T) {
	owner, name, err := GitHubConfig{Repo: "acme/costguardian-dashboard"}.OwnerRepo()
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "costguardian-dashboard", name)

	_, _, err = GitHubConfig{Repo: "acme/a/b"}.OwnerRepo()
	assert.Error(t, err)
}
