// Package config provides configuration file support for revlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/revlog-project/revlog/pkg/fsutil"
)

// Config represents the revlog configuration stored at
// <root>/.revlog/config.yaml.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Backend is one of: file, badger, memory.
	Backend string `yaml:"backend"`
}

// LoggingConfig configures CLI logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// MetricsConfig configures Prometheus metrics export.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: "file"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9464",
		},
	}
}

func configPath(root string) string {
	return filepath.Join(root, ".revlog", "config.yaml")
}

// Load loads configuration from <root>/.revlog/config.yaml.
// Returns the default config if the file does not exist.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath(root))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to <root>/.revlog/config.yaml.
func Save(root string, cfg *Config) error {
	path := configPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
