// Package config handles the XDG configuration directory and the optional
// config.yaml inside it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"todo/internal/storage"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// DefaultKey is the storage key holding the task collection.
	DefaultKey = "todoTasks"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`

	// Storage selects the persistence backend.
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig is the storage section of config.yaml.
type StorageConfig struct {
	// Backend is nutsdb, sqlite or memory.
	Backend string `yaml:"backend"`

	// Path overrides the backend's location. Relative paths are
	// resolved against the config directory.
	Path string `yaml:"path"`

	// Key is the storage key holding the task collection.
	Key string `yaml:"key"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir: dir,
		Storage: StorageConfig{
			Backend: storage.BackendNutsDB,
			Key:     DefaultKey,
		},
	}, nil
}

// Load is New followed by reading config.yaml, if present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Path())
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = storage.BackendNutsDB
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultKey
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// StoragePath returns where the configured backend keeps its data.
func (c *Config) StoragePath() string {
	p := c.Storage.Path
	if p == "" {
		switch c.Storage.Backend {
		case storage.BackendSQLite:
			p = "todo.db"
		default:
			p = filepath.Join("data", "nutsdb")
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// StorageOptions returns the options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Storage.Backend,
		Path:    c.StoragePath(),
	}
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
