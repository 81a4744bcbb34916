package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// minDepth replaces non-positive depths so points behind the eye still
// project to finite coordinates.
const minDepth = 0.01

// Perspective projects positions through Eye looking down +Z onto a plane
// FocalLength in front of it. Unless PreserveZ is set, z becomes the
// distance from the eye. Normals are replaced with the direction back
// toward the eye.
type Perspective struct {
	Eye         mgl64.Vec3
	FocalLength float64
	PreserveZ   bool
}

var _ Transform = (*Perspective)(nil)

// NewPerspective returns a perspective projection.
func NewPerspective(eye mgl64.Vec3, focalLength float64, preserveZ bool) *Perspective {
	return &Perspective{Eye: eye, FocalLength: focalLength, PreserveZ: preserveZ}
}

// PerspectiveAlongZ returns a projection from (x, y, z) looking down +Z.
func PerspectiveAlongZ(x, y, z, focalLength float64) *Perspective {
	return NewPerspective(mgl64.Vec3{x, y, z}, focalLength, false)
}

// Apply projects m in place.
func (p *Perspective) Apply(m *geometry.Model) error {
	mesh, err := mesh("perspective", m)
	if err != nil {
		return err
	}
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		toVertex := v.Position.Sub(p.Eye)
		if toVertex.Z() <= 0 {
			toVertex[2] = minDepth
		}
		f := p.FocalLength / toVertex.Z()
		v.Position[0] = p.Eye.X() + toVertex.X()*f
		v.Position[1] = p.Eye.Y() + toVertex.Y()*f
		if !p.PreserveZ {
			v.Position[2] = toVertex.Len()
		}
		v.Normal = normalizeOr(toVertex, axisZ).Mul(-1)
	}
	return nil
}
