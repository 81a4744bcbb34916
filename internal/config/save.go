package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Save writes the configuration to the user config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), FileName))
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return geometry.Wrap(geometry.KindIO, "config save", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return geometry.Wrap(geometry.KindIO, "config save", err)
	}
	return geometry.Wrap(geometry.KindIO, "config save", os.WriteFile(path, data, 0o644))
}
