// Package config handles modelgen configuration.
package config

import (
	"time"

	"github.com/chazu/modelgen/internal/logger"
	"github.com/chazu/modelgen/pkg/engine"
	"github.com/chazu/modelgen/pkg/recipe"
)

// Config holds all modelgen settings.
type Config struct {
	Logging    LoggingConfig            `yaml:"logging"`
	Primitives recipe.PrimitiveDefaults `yaml:"primitives"`
	Kernel     KernelConfig             `yaml:"kernel"`
	Engine     EngineConfig             `yaml:"engine"`
	Export     ExportConfig             `yaml:"export"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"` // debug, info, warn, error
	File  logger.FileConfig `yaml:"file"`
}

// KernelConfig holds solid kernel settings.
type KernelConfig struct {
	// MeshCells is the marching cubes resolution along the longest axis.
	MeshCells int `yaml:"mesh_cells"`
}

// EngineConfig holds Lisp engine settings.
type EngineConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	// DefaultFormat is appended to output paths that have no extension.
	DefaultFormat string `yaml:"default_format"`
	// OutputDir prefixes relative recipe outputs.
	OutputDir string `yaml:"output_dir"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
		Primitives: recipe.DefaultPrimitives(),
		Kernel: KernelConfig{
			MeshCells: 100,
		},
		Engine: EngineConfig{
			Timeout: engine.EvalTimeout,
		},
		Export: ExportConfig{
			DefaultFormat: "obj",
		},
	}
}
