package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "data/sessions.csv", cfg.Data.SessionsCSV)
	assert.Equal(t, "data/actions.csv", cfg.Data.ActionsCSV)
	assert.Equal(t, "data/users.csv", cfg.Data.UsersCSV)
	assert.Equal(t, "public/data/personas", cfg.OutputDir)
	assert.Equal(t, 5, cfg.Clustering.MinClusters)
	assert.Equal(t, 5, cfg.Clustering.MaxClusters)
	assert.Equal(t, int64(42), cfg.Clustering.Seed)
	assert.Equal(t, 10, cfg.Clustering.Restarts)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalens.yaml")
	content := `
data:
  sessions_csv: custom/sessions.csv
clustering:
  min_clusters: 3
  max_clusters: 8
  seed: 7
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/sessions.csv", cfg.Data.SessionsCSV)
	// Unset keys keep defaults
	assert.Equal(t, "data/actions.csv", cfg.Data.ActionsCSV)
	assert.Equal(t, 3, cfg.Clustering.MinClusters)
	assert.Equal(t, 8, cfg.Clustering.MaxClusters)
	assert.Equal(t, int64(7), cfg.Clustering.Seed)
	assert.Equal(t, 10, cfg.Clustering.Restarts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personalens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clustering: [not: a: map"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	content := "output_dir: elsewhere\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "personalens.yaml"), []byte(content), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.OutputDir)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	sessions := "flag/sessions.csv"
	out := "flag/out"
	minK := 2
	seed := int64(99)
	cfg.MergeWithFlags(&sessions, nil, nil, &out, &minK, nil, &seed)

	assert.Equal(t, "flag/sessions.csv", cfg.Data.SessionsCSV)
	assert.Equal(t, "data/actions.csv", cfg.Data.ActionsCSV)
	assert.Equal(t, "flag/out", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Clustering.MinClusters)
	assert.Equal(t, 5, cfg.Clustering.MaxClusters)
	assert.Equal(t, int64(99), cfg.Clustering.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"empty sessions path", func(c *Config) { c.Data.SessionsCSV = "" }, "sessions_csv"},
		{"empty actions path", func(c *Config) { c.Data.ActionsCSV = "" }, "actions_csv"},
		{"empty users path", func(c *Config) { c.Data.UsersCSV = "" }, "users_csv"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"min clusters below 2", func(c *Config) { c.Clustering.MinClusters = 1 }, "min_clusters"},
		{"min above max", func(c *Config) {
			c.Clustering.MinClusters = 6
			c.Clustering.MaxClusters = 4
		}, "cannot exceed"},
		{"zero restarts", func(c *Config) { c.Clustering.Restarts = 0 }, "restarts"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
