package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Orthographic flattens positions onto the plane through the origin
// orthogonal to Direction. With PreserveZ the depth along Direction is kept.
// Normals lose their Direction component; normals parallel to Direction
// become Direction.
type Orthographic struct {
	Direction mgl64.Vec3
	PreserveZ bool
}

var _ Transform = (*Orthographic)(nil)

// NewOrthographic returns an orthographic projection along direction.
func NewOrthographic(direction mgl64.Vec3, preserveZ bool) *Orthographic {
	return &Orthographic{Direction: direction, PreserveZ: preserveZ}
}

// OntoXY projects along Z.
func OntoXY() *Orthographic { return NewOrthographic(axisZ, false) }

// OntoXZ projects along Y.
func OntoXZ() *Orthographic { return NewOrthographic(axisY, false) }

// OntoYZ projects along X.
func OntoYZ() *Orthographic { return NewOrthographic(axisX, false) }

// Apply projects m in place.
func (o *Orthographic) Apply(m *geometry.Model) error {
	mesh, err := mesh("orthographic", m)
	if err != nil {
		return err
	}
	d, err := unitAxis("orthographic", o.Direction)
	if err != nil {
		return err
	}

	seed := axisX
	if math.Abs(d.X()) > 0.9 {
		seed = axisY
	}
	u := normalizeOr(d.Cross(seed), axisX)
	w := normalizeOr(d.Cross(u), axisY)

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		p := v.Position
		out := u.Mul(u.Dot(p)).Add(w.Mul(w.Dot(p)))
		if o.PreserveZ {
			out = out.Add(d.Mul(d.Dot(p)))
		}
		v.Position = out

		n := v.Normal.Sub(d.Mul(v.Normal.Dot(d)))
		if n.Len() > 1e-6 {
			v.Normal = n.Normalize()
		} else {
			v.Normal = d
		}
	}
	return nil
}
