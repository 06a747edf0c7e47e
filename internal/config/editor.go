package config

import (
	"fmt"
	"slices"
)

// EditorConfig carries presentation settings consumed by the interactive
// shell. The edit engine itself does not read it.
type EditorConfig struct {
	// ZoomLevels are the page preview sizes, in pixels, the shell may
	// cycle through. Default: [200, 300, 400]
	ZoomLevels []int `toml:"zoom_levels"`
}

// Finalize applies defaults and validates the editor configuration.
func (c *EditorConfig) Finalize() error {
	if len(c.ZoomLevels) == 0 {
		c.ZoomLevels = []int{200, 300, 400}
	}

	slices.Sort(c.ZoomLevels)

	for _, level := range c.ZoomLevels {
		if level < 1 {
			return fmt.Errorf("zoom levels must be positive, got %d", level)
		}
	}

	return nil
}

// Merge applies values from overlay configuration that differ from zero
// values.
func (c *EditorConfig) Merge(overlay *EditorConfig) {
	if len(overlay.ZoomLevels) > 0 {
		c.ZoomLevels = slices.Clone(overlay.ZoomLevels)
	}
}
