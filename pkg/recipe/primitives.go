package recipe

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/kernel"
	"github.com/chazu/modelgen/pkg/meshio"
	"github.com/chazu/modelgen/pkg/primitive"
)

// PrimitiveDefaults are the generator settings used for parameters a
// recipe leaves out.
type PrimitiveDefaults struct {
	Cube     primitive.CubeConfig     `yaml:"cube"`
	Sphere   primitive.SphereConfig   `yaml:"sphere"`
	Cylinder primitive.CylinderConfig `yaml:"cylinder"`
}

// DefaultPrimitives returns the generators' own defaults.
func DefaultPrimitives() PrimitiveDefaults {
	return PrimitiveDefaults{
		Cube:     primitive.DefaultCube(),
		Sphere:   primitive.DefaultSphere(),
		Cylinder: primitive.DefaultCylinder(),
	}
}

type primitiveFunc func(rn *Runner, p Params) (*geometry.Model, error)

// primitiveBuilders maps primitive kinds to generators. The sdf-* kinds
// go through the solid kernel; obj loads a mesh from disk.
var primitiveBuilders = map[string]primitiveFunc{
	"cube":         cubePrimitive,
	"sphere":       spherePrimitive,
	"cylinder":     cylinderPrimitive,
	"sdf-box":      sdfBoxPrimitive,
	"sdf-sphere":   sdfSpherePrimitive,
	"sdf-cylinder": sdfCylinderPrimitive,
	"obj":          objPrimitive,
}

func cubePrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	cfg := rn.Primitives.Cube
	var err error
	if cfg.Size, err = p.Float("size", cfg.Size); err != nil {
		return nil, err
	}
	if cfg.Center, err = p.Vec3("center", cfg.Center); err != nil {
		return nil, err
	}
	if cfg.WithUVs, err = p.Bool("uvs", cfg.WithUVs); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func spherePrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	cfg := rn.Primitives.Sphere
	var err error
	if cfg.Radius, err = p.Float("radius", cfg.Radius); err != nil {
		return nil, err
	}
	if cfg.Center, err = p.Vec3("center", cfg.Center); err != nil {
		return nil, err
	}
	if cfg.Segments, err = p.Int("segments", cfg.Segments); err != nil {
		return nil, err
	}
	if cfg.Rings, err = p.Int("rings", cfg.Rings); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func cylinderPrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	cfg := rn.Primitives.Cylinder
	var err error
	if cfg.Radius, err = p.Float("radius", cfg.Radius); err != nil {
		return nil, err
	}
	if cfg.Height, err = p.Float("height", cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Center, err = p.Vec3("center", cfg.Center); err != nil {
		return nil, err
	}
	if cfg.Segments, err = p.Int("segments", cfg.Segments); err != nil {
		return nil, err
	}
	if cfg.Caps, err = p.Bool("caps", cfg.Caps); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func sdfBoxPrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	size, err := p.Vec3("size", ones)
	if err != nil {
		return nil, err
	}
	return rn.solid(p, "sdf-box", func(k kernel.Kernel) (kernel.Solid, error) {
		return k.Box(size.X(), size.Y(), size.Z())
	})
}

func sdfSpherePrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	r, err := p.Float("radius", 1)
	if err != nil {
		return nil, err
	}
	return rn.solid(p, "sdf-sphere", func(k kernel.Kernel) (kernel.Solid, error) {
		return k.Sphere(r)
	})
}

func sdfCylinderPrimitive(rn *Runner, p Params) (*geometry.Model, error) {
	nums, err := floats(p, []string{"height", "radius"}, []float64{2, 1})
	if err != nil {
		return nil, err
	}
	return rn.solid(p, "sdf-cylinder", func(k kernel.Kernel) (kernel.Solid, error) {
		return k.Cylinder(nums[0], nums[1])
	})
}

// solid builds a kernel solid, places it by the optional rotate (Euler
// degrees) and center parameters, and tessellates it.
func (rn *Runner) solid(p Params, kind string, build func(k kernel.Kernel) (kernel.Solid, error)) (*geometry.Model, error) {
	if rn.Kernel == nil {
		return nil, geometry.InvalidModelError(kind, "no solid kernel configured")
	}
	rot, err := p.Vec3("rotate", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	center, err := p.Vec3("center", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	s, err := build(rn.Kernel)
	if err != nil {
		return nil, err
	}
	if rot != (mgl64.Vec3{}) {
		s = rn.Kernel.Rotate(s, rot.X(), rot.Y(), rot.Z())
	}
	if center != (mgl64.Vec3{}) {
		s = rn.Kernel.Translate(s, center.X(), center.Y(), center.Z())
	}
	return rn.Kernel.ToModel(s, kind)
}

func objPrimitive(_ *Runner, p Params) (*geometry.Model, error) {
	path, err := p.String("path", "")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, paramError("path", "is required")
	}
	return meshio.LoadOBJ(path)
}
