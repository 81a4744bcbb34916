package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/meshio"
)

// FileName is the configuration file looked up in the standard locations.
const FileName = "modelgen.yaml"

// Overrides carry command line values that take priority over the file.
// Empty fields leave the loaded value alone.
type Overrides struct {
	LogLevel  string
	LogFile   string
	OutputDir string
	MeshCells int
}

// Load loads configuration with priority: defaults < file < overrides.
// An explicit path must exist; otherwise the standard locations are
// searched and a missing file is not an error.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, geometry.Wrap(geometry.KindIO, "config "+path, err)
		}
	}

	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the non-empty overrides into cfg.
func (c *Config) Apply(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File.Path = o.LogFile
	}
	if o.OutputDir != "" {
		c.Export.OutputDir = o.OutputDir
	}
	if o.MeshCells > 0 {
		c.Kernel.MeshCells = o.MeshCells
	}
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Kernel.MeshCells <= 0 {
		errs = append(errs, fmt.Errorf("kernel.mesh_cells must be positive, got %d", c.Kernel.MeshCells))
	}
	if c.Engine.Timeout < 0 {
		errs = append(errs, fmt.Errorf("engine.timeout must not be negative, got %s", c.Engine.Timeout))
	}
	if f := c.Export.DefaultFormat; f != "" {
		if _, ok := meshio.FormatFromPath("x." + f); !ok {
			errs = append(errs, fmt.Errorf("export.default_format %q is not supported", f))
		}
	}
	if err := c.Primitives.Cube.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("primitives.cube: %w", err))
	}
	if err := c.Primitives.Sphere.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("primitives.sphere: %w", err))
	}
	if err := c.Primitives.Cylinder.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("primitives.cylinder: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}
	return geometry.Wrap(geometry.KindInvalidModel, "config", errors.Join(errs...))
}

// OutputPath returns path with the default format's extension appended
// when it has none.
func (c *Config) OutputPath(path string) string {
	if filepath.Ext(path) != "" || c.Export.DefaultFormat == "" {
		return path
	}
	return path + "." + strings.TrimPrefix(c.Export.DefaultFormat, ".")
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "modelgen")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "modelgen")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelgen")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "modelgen")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
