package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Bend curves the slab of the model lying between Start and End along
// DirectionAxis around BendAxis. The bend angle grows linearly from zero
// at Start to Angle degrees at End. Vertices outside the slab are left
// exactly as they were.
type Bend struct {
	BendAxis      mgl64.Vec3
	DirectionAxis mgl64.Vec3
	Angle         float64
	Start, End    float64
}

var _ Transform = (*Bend)(nil)

// NewBend returns a bend of degrees about bendAxis over [start, end] along
// direction.
func NewBend(bendAxis mgl64.Vec3, degrees, start, end float64, direction mgl64.Vec3) *Bend {
	return &Bend{
		BendAxis:      bendAxis,
		DirectionAxis: direction,
		Angle:         degrees,
		Start:         start,
		End:           end,
	}
}

// BendX bends about X over a Y range.
func BendX(degrees, yMin, yMax float64) *Bend {
	return NewBend(axisX, degrees, yMin, yMax, axisY)
}

// BendY bends about Y over an X range.
func BendY(degrees, xMin, xMax float64) *Bend {
	return NewBend(axisY, degrees, xMin, xMax, axisX)
}

// BendZ bends about Z over an X range.
func BendZ(degrees, xMin, xMax float64) *Bend {
	return NewBend(axisZ, degrees, xMin, xMax, axisX)
}

// Apply bends m in place. A reversed region, or one shorter than epsilon,
// is a no-op.
func (b *Bend) Apply(m *geometry.Model) error {
	mesh, err := mesh("bend", m)
	if err != nil {
		return err
	}
	axis, err := unitAxis("bend", b.BendAxis)
	if err != nil {
		return err
	}
	dir, err := unitAxis("bend", b.DirectionAxis)
	if err != nil {
		return err
	}
	span := b.End - b.Start
	if span < epsilon {
		return nil
	}

	angle := mgl64.DegToRad(b.Angle)
	offsetAxis := normalizeOr(axis.Cross(dir), mgl64.Vec3{})
	pivot := dir.Mul(b.Start)

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		along := v.Position.Dot(dir)
		if along < b.Start || along > b.End {
			continue
		}

		theta := angle * (along - b.Start) / span
		rot := axisRotation(axis, theta)

		rel := v.Position.Sub(pivot)
		dist := rel.Dot(dir)
		projDir := dir.Mul(dist)
		rotatedPerp := rot.Rotate(rel.Sub(projDir))

		if math.Abs(theta) < epsilon {
			v.Position = pivot.Add(projDir).Add(rotatedPerp)
		} else {
			radius := dist / theta
			v.Position = pivot.
				Add(rotatedPerp).
				Add(dir.Mul(radius * (1 - math.Cos(theta)))).
				Add(offsetAxis.Mul(radius * math.Sin(theta)))
		}
		v.Normal = normalizeOr(rot.Rotate(v.Normal), v.Normal)
	}
	return nil
}
