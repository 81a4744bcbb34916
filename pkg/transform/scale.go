package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Scale multiplies positions componentwise by Factors.
//
// When all three factors are equal, normals are only renormalized.
// Otherwise each normal component is divided by the factor of the same
// axis, which requires every factor to be nonzero.
type Scale struct {
	Factors mgl64.Vec3
}

var _ Transform = (*Scale)(nil)

// NewScale returns a per-axis scale.
func NewScale(x, y, z float64) *Scale {
	return &Scale{Factors: mgl64.Vec3{x, y, z}}
}

// UniformScale returns a scale by s on every axis.
func UniformScale(s float64) *Scale {
	return NewScale(s, s, s)
}

// Uniform reports whether all three factors are equal.
func (s *Scale) Uniform() bool {
	f := s.Factors
	return f[0] == f[1] && f[1] == f[2]
}

// Apply scales m in place. A zero factor in non-uniform mode fails before
// any vertex is touched.
func (s *Scale) Apply(m *geometry.Model) error {
	mesh, err := mesh("scale", m)
	if err != nil {
		return err
	}
	uniform := s.Uniform()
	if !uniform {
		for i, f := range s.Factors {
			if f == 0 {
				return geometry.TransformError("scale", "zero factor on axis %d in non-uniform scale %v", i, s.Factors)
			}
		}
	}

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		for a := 0; a < 3; a++ {
			v.Position[a] *= s.Factors[a]
		}
		if !uniform {
			for a := 0; a < 3; a++ {
				v.Normal[a] /= s.Factors[a]
			}
		}
		v.Normal = normalizeOr(v.Normal, v.Normal)
	}
	return nil
}
