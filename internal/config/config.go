// Package config loads and saves SwiftCart configuration.
// Config lives at ~/.swiftcart/config.yaml; a missing file yields defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all SwiftCart configuration.
type Config struct {
	// Remote storefront API
	API APIConfig `yaml:"api"`

	// Local cart storage
	Storage StorageConfig `yaml:"storage"`

	// UI behavior
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the remote catalog service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures the durable local store.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme         string `yaml:"theme"`          // auto, light, dark
	TrendingCount int    `yaml:"trending_count"` // products in the trending strip
	ToastDuration string `yaml:"toast_duration"` // how long notifications stay visible
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://fakestoreapi.com",
			Timeout: "15s",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(baseDir(), "swiftcart.db"),
		},
		UI: UIConfig{
			Theme:         "auto",
			TrendingCount: 3,
			ToastDuration: "3s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(baseDir(), "logs", "swiftcart.log"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swiftcart"
	}
	return filepath.Join(home, ".swiftcart")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet: defaults, but env overrides still apply.
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SWIFTCART_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if path := os.Getenv("SWIFTCART_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
	if theme := os.Getenv("SWIFTCART_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// APITimeout parses the configured request timeout, falling back to 15s.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// ToastDuration parses the configured toast lifetime, falling back to 3s.
func (c *Config) ToastDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.ToastDuration)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}
