// Package primitive generates closed-form meshes for the basic solids.
//
// Each shape is configured with a plain struct. Validate runs before any
// geometry is generated, so Build either returns a complete model or an
// error and never a partial mesh.
package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Builder is implemented by every primitive configuration.
type Builder interface {
	Validate() error
	Build() (*geometry.Model, error)
}

// Compile-time interface checks.
var (
	_ Builder = CubeConfig{}
	_ Builder = SphereConfig{}
	_ Builder = CylinderConfig{}
)

// Minimum tessellation counts.
const (
	MinSegments = 3
	MinRings    = 2
)

func checkPositive(op, field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return geometry.InvalidModelError(op, "%s must be positive, got %g", field, v)
	}
	return nil
}

func checkCenter(op string, c mgl64.Vec3) error {
	for _, x := range c {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return geometry.InvalidModelError(op, "center %v is not finite", c)
		}
	}
	return nil
}
