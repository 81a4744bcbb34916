package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/kernel"
	"github.com/chazu/modelgen/pkg/meshio"
	"github.com/chazu/modelgen/pkg/plugin"
)

// Runner executes recipes. The zero value is usable: it has no solid
// kernel, the default plugin registry and a no-op logger.
type Runner struct {
	Registry   *plugin.Registry
	Kernel     kernel.Kernel
	Logger     *zap.Logger
	Primitives PrimitiveDefaults
	// OutputDir is prepended to relative output paths.
	OutputDir string
}

// NewRunner returns a runner with the generators' default settings.
func NewRunner(reg *plugin.Registry, k kernel.Kernel, logger *zap.Logger) *Runner {
	return &Runner{
		Registry:   reg,
		Kernel:     k,
		Logger:     logger,
		Primitives: DefaultPrimitives(),
	}
}

func (rn *Runner) log() *zap.Logger {
	if rn.Logger == nil {
		return zap.NewNop()
	}
	return rn.Logger
}

func (rn *Runner) registry() *plugin.Registry {
	if rn.Registry == nil {
		rn.Registry = plugin.Default()
	}
	return rn.Registry
}

// Build validates r, generates its primitive and applies every step in
// order. It stops at the first failing step.
func (rn *Runner) Build(r *Recipe) (*geometry.Model, error) {
	if errs := Validate(r); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, geometry.Wrap(geometry.KindInvalidModel, "recipe", errors.Join(joined...))
	}
	if rn.Primitives == (PrimitiveDefaults{}) {
		rn.Primitives = DefaultPrimitives()
	}
	logger := rn.log().With(zap.String("recipe", r.Name))

	model, err := primitiveBuilders[r.Primitive.Kind](rn, r.Primitive.Params)
	if err != nil {
		return nil, fmt.Errorf("recipe: primitive %s: %w", r.Primitive.Kind, err)
	}
	if r.Name != "" {
		model.Name = r.Name
	}
	logger.Debug("built primitive",
		zap.String("kind", r.Primitive.Kind),
		zap.Int("vertices", model.Mesh.VertexCount()),
		zap.Int("faces", model.Mesh.FaceCount()))

	for i, step := range r.Steps {
		t, err := ops[step.Op](rn, step.Params)
		if err != nil {
			return nil, fmt.Errorf("recipe: step %d (%s): %w", i, step.Op, err)
		}
		if err := t.Apply(model); err != nil {
			return nil, fmt.Errorf("recipe: step %d (%s): %w", i, step.Op, err)
		}
		logger.Debug("applied step", zap.Int("step", i), zap.String("op", step.Op))
	}
	return model, nil
}

// Run builds r and writes every output. It returns the model and the paths
// written.
func (rn *Runner) Run(r *Recipe) (*geometry.Model, []string, error) {
	model, err := rn.Build(r)
	if err != nil {
		return nil, nil, err
	}
	var written []string
	for _, out := range r.Outputs {
		path := out
		if rn.OutputDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(rn.OutputDir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return model, written, geometry.Wrap(geometry.KindIO, "recipe output "+out, err)
		}
		if err := meshio.Save(path, model); err != nil {
			return model, written, fmt.Errorf("recipe: output %s: %w", out, err)
		}
		rn.log().Info("wrote model",
			zap.String("recipe", r.Name),
			zap.String("path", path),
			zap.Int("vertices", model.Mesh.VertexCount()),
			zap.Int("faces", model.Mesh.FaceCount()))
		written = append(written, path)
	}
	return model, written, nil
}
