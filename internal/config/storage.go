package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Environment variable names for storage configuration overrides.
const (
	EnvOutputDir   = "PAGEDECK_OUTPUT_DIR"
	EnvMaxOpenSize = "PAGEDECK_MAX_OPEN_SIZE"
)

// StorageConfig controls where edited documents are written and how
// large a source document may be opened.
type StorageConfig struct {
	// OutputDir is the default directory for saved documents when the
	// destination is given as a bare file name. Default: ".data/output"
	OutputDir string `toml:"output_dir"`

	// MaxOpenSize bounds the source file size accepted by open, as a
	// human-readable size. Default: "200MB"
	MaxOpenSize    string `toml:"max_open_size"`
	maxOpenSizeVal int64
}

// MaxOpenSizeBytes returns the open size limit in bytes.
func (c *StorageConfig) MaxOpenSizeBytes() int64 {
	return c.maxOpenSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates
// the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero
// values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.OutputDir != "" {
		c.OutputDir = overlay.OutputDir
	}
	if overlay.MaxOpenSize != "" {
		c.MaxOpenSize = overlay.MaxOpenSize
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = ".data/output"
	}
	if c.MaxOpenSize == "" {
		c.MaxOpenSize = "200MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvMaxOpenSize); v != "" {
		c.MaxOpenSize = v
	}
}

func (c *StorageConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxOpenSize)
	if err != nil {
		return fmt.Errorf("invalid max_open_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_open_size must be positive")
	}
	c.maxOpenSizeVal = size

	return nil
}
