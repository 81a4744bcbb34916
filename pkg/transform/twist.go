package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Twist rotates each vertex about an axis through Center by an angle
// proportional to its signed distance from Center along the axis.
type Twist struct {
	Axis         mgl64.Vec3
	AnglePerUnit float64 // degrees per unit of distance
	Center       mgl64.Vec3
}

var _ Transform = (*Twist)(nil)

// NewTwist returns a twist about axis through center.
func NewTwist(axis mgl64.Vec3, degreesPerUnit float64, center mgl64.Vec3) *Twist {
	return &Twist{Axis: axis, AnglePerUnit: degreesPerUnit, Center: center}
}

// TwistX twists about the X axis through (0, cy, cz).
func TwistX(degreesPerUnit, cy, cz float64) *Twist {
	return NewTwist(axisX, degreesPerUnit, mgl64.Vec3{0, cy, cz})
}

// TwistY twists about the Y axis through (cx, 0, cz).
func TwistY(degreesPerUnit, cx, cz float64) *Twist {
	return NewTwist(axisY, degreesPerUnit, mgl64.Vec3{cx, 0, cz})
}

// TwistZ twists about the Z axis through (cx, cy, 0).
func TwistZ(degreesPerUnit, cx, cy float64) *Twist {
	return NewTwist(axisZ, degreesPerUnit, mgl64.Vec3{cx, cy, 0})
}

// Apply twists m in place. A model with no extent along the axis is left
// unchanged.
func (t *Twist) Apply(m *geometry.Model) error {
	mesh, err := mesh("twist", m)
	if err != nil {
		return err
	}
	axis, err := unitAxis("twist", t.Axis)
	if err != nil {
		return err
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	minProj, maxProj := math.Inf(1), math.Inf(-1)
	for _, v := range mesh.Vertices {
		p := v.Position.Sub(t.Center).Dot(axis)
		minProj = math.Min(minProj, p)
		maxProj = math.Max(maxProj, p)
	}
	if maxProj-minProj < epsilon {
		return nil
	}

	perUnit := mgl64.DegToRad(t.AnglePerUnit)
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		rel := v.Position.Sub(t.Center)
		d := rel.Dot(axis)
		rot := axisRotation(axis, d*perUnit)

		along := axis.Mul(d)
		v.Position = t.Center.Add(along).Add(rot.Rotate(rel.Sub(along)))

		nAlong := axis.Mul(v.Normal.Dot(axis))
		n := nAlong.Add(rot.Rotate(v.Normal.Sub(nAlong)))
		v.Normal = normalizeOr(n, n)
	}
	return nil
}
