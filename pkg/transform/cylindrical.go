package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// minRadial is the radial distance below which a vertex is treated as lying
// on the cylinder axis and left in place.
const minRadial = 1e-6

// Cylindrical wraps positions onto a cylinder about Axis through Center.
// Height along the axis and the angle around it are kept. Without
// PreserveRadius every vertex is pushed to Radius and its normal points
// radially outward. With PreserveRadius vertices keep their distance from
// the axis and normals are rotated by the vertex angle.
type Cylindrical struct {
	Axis           mgl64.Vec3
	Center         mgl64.Vec3
	Radius         float64
	PreserveRadius bool
}

var _ Transform = (*Cylindrical)(nil)

// NewCylindrical returns a cylindrical projection.
func NewCylindrical(axis, center mgl64.Vec3, radius float64, preserveRadius bool) *Cylindrical {
	return &Cylindrical{Axis: axis, Center: center, Radius: radius, PreserveRadius: preserveRadius}
}

// CylindricalX projects onto a cylinder about X through (0, cy, cz).
func CylindricalX(cy, cz, radius float64) *Cylindrical {
	return NewCylindrical(axisX, mgl64.Vec3{0, cy, cz}, radius, false)
}

// CylindricalY projects onto a cylinder about Y through (cx, 0, cz).
func CylindricalY(cx, cz, radius float64) *Cylindrical {
	return NewCylindrical(axisY, mgl64.Vec3{cx, 0, cz}, radius, false)
}

// CylindricalZ projects onto a cylinder about Z through (cx, cy, 0).
func CylindricalZ(cx, cy, radius float64) *Cylindrical {
	return NewCylindrical(axisZ, mgl64.Vec3{cx, cy, 0}, radius, false)
}

// Apply projects m in place.
func (c *Cylindrical) Apply(m *geometry.Model) error {
	mesh, err := mesh("cylindrical", m)
	if err != nil {
		return err
	}
	axis, err := unitAxis("cylindrical", c.Axis)
	if err != nil {
		return err
	}
	perp1, perp2 := perpendicularBasis(axis)

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		rel := v.Position.Sub(c.Center)
		height := axis.Mul(rel.Dot(axis))
		radial := rel.Sub(height)
		dist := radial.Len()
		if dist < minRadial {
			continue
		}

		angle := math.Atan2(radial.Dot(perp2), radial.Dot(perp1))
		r := c.Radius
		if c.PreserveRadius {
			r = dist
		}
		newRadial := perp1.Mul(r * math.Cos(angle)).Add(perp2.Mul(r * math.Sin(angle)))
		v.Position = c.Center.Add(height).Add(newRadial)

		if !c.PreserveRadius {
			v.Normal = normalizeOr(newRadial, v.Normal)
			continue
		}
		v.Normal = rotateNormalAbout(v.Normal, axis, perp1, perp2, angle)
	}
	return nil
}

// rotateNormalAbout turns the perpendicular part of n by angle within the
// (perp1, perp2) plane, keeping its axial part and magnitude.
func rotateNormalAbout(n, axis, perp1, perp2 mgl64.Vec3, angle float64) mgl64.Vec3 {
	nAxial := axis.Mul(n.Dot(axis))
	nPerp := n.Sub(nAxial)
	if l := nPerp.Len(); l > minRadial {
		normalAngle := math.Acos(mgl64.Clamp(nPerp.Mul(1/l).Dot(perp1), -1, 1))
		sign := 1.0
		if nPerp.Dot(perp2) < 0 {
			sign = -1
		}
		rotated := angle + normalAngle*sign
		n = nAxial.Add(perp1.Mul(math.Cos(rotated)).Add(perp2.Mul(math.Sin(rotated))).Mul(l))
	}
	return normalizeOr(n, n)
}
