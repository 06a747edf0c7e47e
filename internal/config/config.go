// Package config provides application configuration management with
// support for TOML files, environment variable overrides, and
// environment-specific configuration overlays.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/pagedeck/pagedeck/pkg/logging"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for
	// environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvAppEnv selects the environment name for configuration overlays.
	EnvAppEnv = "PAGEDECK_ENV"
)

// Config represents the root application configuration.
type Config struct {
	Logging logging.Config `toml:"logging"`
	Storage StorageConfig  `toml:"storage"`
	Editor  EditorConfig   `toml:"editor"`
}

// Load reads and parses the base configuration file and applies any
// environment-specific overlay. A missing base file yields an empty
// configuration that Finalize fills with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = BaseConfigFile
	}

	cfg, err := load(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &Config{}
		} else {
			return nil, err
		}
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates
// the configuration.
func (c *Config) Finalize() error {
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Editor.Finalize(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero
// values.
func (c *Config) Merge(overlay *Config) {
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Editor.Merge(&overlay.Editor)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvAppEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
