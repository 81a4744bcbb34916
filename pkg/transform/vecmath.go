package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// epsilon is the degeneracy threshold shared by the deforming transforms.
const epsilon = 1e-5

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// normalizeOr returns v scaled to unit length, or fallback when v is zero.
func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// unitAxis normalizes a user-supplied axis. A zero axis cannot define a
// direction and is reported as a transform error.
func unitAxis(op string, axis mgl64.Vec3) (mgl64.Vec3, error) {
	l := axis.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, geometry.TransformError(op, "axis %v has no direction", axis)
	}
	return axis.Mul(1 / l), nil
}

// perpendicularBasis returns two unit vectors orthogonal to the unit axis a
// and to each other. The seed is X unless a is nearly parallel to X.
func perpendicularBasis(a mgl64.Vec3) (perp1, perp2 mgl64.Vec3) {
	seed := axisX
	if math.Abs(a.X()) >= 0.9 {
		seed = axisY
	}
	perp1 = normalizeOr(seed.Sub(a.Mul(seed.Dot(a))), axisY)
	perp2 = normalizeOr(a.Cross(perp1), axisZ)
	return perp1, perp2
}

// dominantAxis returns the index of v's largest-magnitude component.
func dominantAxis(v mgl64.Vec3) int {
	best := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	return best
}

// axisRotation returns the rotation by angle radians about the unit axis.
func axisRotation(axis mgl64.Vec3, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axis)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
