// Package config loads and validates pipeline configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfig holds paths to the three input tables.
type DataConfig struct {
	// SessionsCSV is the path to the sessions table
	SessionsCSV string `yaml:"sessions_csv"`

	// ActionsCSV is the path to the actions table
	ActionsCSV string `yaml:"actions_csv"`

	// UsersCSV is the path to the users table
	UsersCSV string `yaml:"users_csv"`
}

// ClusterConfig holds clustering parameters.
type ClusterConfig struct {
	// MinClusters is the lowest candidate cluster count to score
	MinClusters int `yaml:"min_clusters"`

	// MaxClusters is the highest candidate cluster count to score
	MaxClusters int `yaml:"max_clusters"`

	// Seed seeds all random number generation for reproducible runs
	Seed int64 `yaml:"seed"`

	// Restarts is the number of k-means initializations per candidate count
	Restarts int `yaml:"restarts"`
}

// Config represents pipeline configuration options.
type Config struct {
	// Data holds input table paths
	Data DataConfig `yaml:"data"`

	// OutputDir is the directory where JSON artifacts are written
	OutputDir string `yaml:"output_dir"`

	// Clustering holds clustering parameters
	Clustering ClusterConfig `yaml:"clustering"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
// The default cluster range collapses to a single count of 5.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			SessionsCSV: "data/sessions.csv",
			ActionsCSV:  "data/actions.csv",
			UsersCSV:    "data/users.csv",
		},
		OutputDir: "public/data/personas",
		Clustering: ClusterConfig{
			MinClusters: 5,
			MaxClusters: 5,
			Seed:        42,
			Restarts:    10,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from personalens.yaml in the specified
// directory. If the directory or file doesn't exist, returns defaults without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, "personalens.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, letting CLI flags take
// precedence over config file settings.
func (c *Config) MergeWithFlags(sessionsCSV, actionsCSV, usersCSV, outputDir *string, minClusters, maxClusters *int, seed *int64) {
	if sessionsCSV != nil {
		c.Data.SessionsCSV = *sessionsCSV
	}
	if actionsCSV != nil {
		c.Data.ActionsCSV = *actionsCSV
	}
	if usersCSV != nil {
		c.Data.UsersCSV = *usersCSV
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if minClusters != nil {
		c.Clustering.MinClusters = *minClusters
	}
	if maxClusters != nil {
		c.Clustering.MaxClusters = *maxClusters
	}
	if seed != nil {
		c.Clustering.Seed = *seed
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.Data.SessionsCSV == "" {
		return fmt.Errorf("data.sessions_csv cannot be empty")
	}
	if c.Data.ActionsCSV == "" {
		return fmt.Errorf("data.actions_csv cannot be empty")
	}
	if c.Data.UsersCSV == "" {
		return fmt.Errorf("data.users_csv cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	if c.Clustering.MinClusters < 2 {
		return fmt.Errorf("clustering.min_clusters must be >= 2, got %d", c.Clustering.MinClusters)
	}
	if c.Clustering.MinClusters > c.Clustering.MaxClusters {
		return fmt.Errorf("clustering.min_clusters (%d) cannot exceed clustering.max_clusters (%d)",
			c.Clustering.MinClusters, c.Clustering.MaxClusters)
	}
	if c.Clustering.Restarts <= 0 {
		return fmt.Errorf("clustering.restarts must be > 0, got %d", c.Clustering.Restarts)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
