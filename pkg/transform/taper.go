package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Taper scales the cross-section perpendicular to Axis by a factor that
// varies linearly from StartScale at Min to EndScale at Max. The scale
// vectors are indexed by world axis; the component along Axis is ignored.
// Vertices outside [Min, Max] are skipped.
type Taper struct {
	Axis       mgl64.Vec3
	StartScale mgl64.Vec3
	EndScale   mgl64.Vec3
	Min, Max   float64
}

var _ Transform = (*Taper)(nil)

// NewTaper returns a taper along axis over [min, max].
func NewTaper(axis, startScale, endScale mgl64.Vec3, min, max float64) *Taper {
	return &Taper{Axis: axis, StartScale: startScale, EndScale: endScale, Min: min, Max: max}
}

// TaperX tapers along X. Scales are (y, z) pairs.
func TaperX(start, end [2]float64, xMin, xMax float64) *Taper {
	return NewTaper(axisX, mgl64.Vec3{1, start[0], start[1]}, mgl64.Vec3{1, end[0], end[1]}, xMin, xMax)
}

// TaperY tapers along Y. Scales are (x, z) pairs.
func TaperY(start, end [2]float64, yMin, yMax float64) *Taper {
	return NewTaper(axisY, mgl64.Vec3{start[0], 1, start[1]}, mgl64.Vec3{end[0], 1, end[1]}, yMin, yMax)
}

// TaperZ tapers along Z. Scales are (x, y) pairs.
func TaperZ(start, end [2]float64, zMin, zMax float64) *Taper {
	return NewTaper(axisZ, mgl64.Vec3{start[0], start[1], 1}, mgl64.Vec3{end[0], end[1], 1}, zMin, zMax)
}

// Apply tapers m in place. Zero-length bounds are a no-op.
func (tp *Taper) Apply(m *geometry.Model) error {
	mesh, err := mesh("taper", m)
	if err != nil {
		return err
	}
	axis, err := unitAxis("taper", tp.Axis)
	if err != nil {
		return err
	}
	span := tp.Max - tp.Min
	if math.Abs(span) < epsilon {
		return nil
	}

	perp1, perp2 := perpendicularBasis(axis)
	i1, i2 := dominantAxis(perp1), dominantAxis(perp2)

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		along := v.Position.Dot(axis)
		if along < tp.Min || along > tp.Max {
			continue
		}
		t := (along - tp.Min) / span
		s1 := lerp(tp.StartScale[i1], tp.EndScale[i1], t)
		s2 := lerp(tp.StartScale[i2], tp.EndScale[i2], t)

		onAxis := axis.Mul(along)
		rel := v.Position.Sub(onAxis)
		v.Position = onAxis.
			Add(perp1.Mul(rel.Dot(perp1) * s1)).
			Add(perp2.Mul(rel.Dot(perp2) * s2))

		n1, n2 := v.Normal.Dot(perp1), v.Normal.Dot(perp2)
		if s1 != 0 {
			n1 /= s1
		}
		if s2 != 0 {
			n2 /= s2
		}
		n := axis.Mul(v.Normal.Dot(axis)).Add(perp1.Mul(n1)).Add(perp2.Mul(n2))
		v.Normal = normalizeOr(n, n)
	}
	return nil
}
