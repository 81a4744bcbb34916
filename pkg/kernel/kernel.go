// Package kernel defines the abstract solid-modeling kernel interface.
// A kernel builds implicit solids and tessellates them into a
// geometry.Model, which then flows through the same transform and export
// path as the closed-form primitives. Backends can be swapped without
// touching the rest of the system.
package kernel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max mgl64.Vec3)
}

// Kernel is the abstract solid-modeling kernel interface.
// All solids are centred on the origin until moved.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Placement
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Tessellation
	ToModel(s Solid, name string) (*geometry.Model, error)
}
