package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"taskman/internal/persistence"
	"taskman/internal/storage/sqlite"
)

// Config holds all configuration options for the task manager application
type Config struct {
	Database    DatabaseConfig
	Storage     StorageConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir           string `env:"TASKMAN_DB_DIR"`
	Filename      string `env:"TASKMAN_DB_FILENAME"`
	MaxValueBytes int    `env:"TASKMAN_DB_MAX_VALUE_BYTES"`
}

// StorageConfig holds snapshot storage configuration
type StorageConfig struct {
	Key            string `env:"TASKMAN_STORAGE_KEY"`
	ExportFilename string `env:"TASKMAN_EXPORT_FILENAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TASKMAN_APP_TIMEOUT"`
	Verbose bool          `env:"TASKMAN_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskman")

	return &Config{
		Database: DatabaseConfig{
			Dir:           defaultDBDir,
			Filename:      "taskman.db",
			MaxValueBytes: sqlite.DefaultMaxValueBytes,
		},
		Storage: StorageConfig{
			Key:            persistence.DefaultStorageKey,
			ExportFilename: persistence.DefaultExportFilename,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// DatabasePath returns the full path to the database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKMAN_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKMAN_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if maxBytes := os.Getenv("TASKMAN_DB_MAX_VALUE_BYTES"); maxBytes != "" {
		if n, err := strconv.Atoi(maxBytes); err == nil && n > 0 {
			c.Database.MaxValueBytes = n
		}
	}

	// Storage configuration
	if key := os.Getenv("TASKMAN_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if filename := os.Getenv("TASKMAN_EXPORT_FILENAME"); filename != "" {
		c.Storage.ExportFilename = filename
	}

	// Application configuration
	if timeout := os.Getenv("TASKMAN_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TASKMAN_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.MaxValueBytes <= 0 {
		return &ConfigError{Field: "database.max_value_bytes", Message: "capacity must be positive"}
	}
	if c.Storage.Key == "" {
		return &ConfigError{Field: "storage.key", Message: "storage key cannot be empty"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	return nil
}

// Load builds the configuration using the cascading strategy:
// defaults, then environment variables, then validation. Command line
// flag overrides are applied afterwards by the root command.
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
