package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Quaternion rotates positions and normals by Q. Q is normalized before
// use; a zero quaternion is rejected.
type Quaternion struct {
	Q mgl64.Quat
}

var _ Transform = (*Quaternion)(nil)

// parallelTolerance bounds how close |from·to| must be to 1 before two
// directions are treated as parallel or opposite.
const parallelTolerance = 1e-6

// NewQuaternion wraps an existing rotation.
func NewQuaternion(q mgl64.Quat) *Quaternion {
	return &Quaternion{Q: q}
}

// QuaternionFromAxisAngle returns a rotation of degrees about axis. A zero
// axis yields the identity.
func QuaternionFromAxisAngle(axis mgl64.Vec3, degrees float64) *Quaternion {
	a, err := unitAxis("quaternion", axis)
	if err != nil {
		return NewQuaternion(mgl64.QuatIdent())
	}
	return NewQuaternion(axisRotation(a, mgl64.DegToRad(degrees)))
}

// QuaternionFromEuler composes roll about X, pitch about Y and yaw about Z
// (degrees) as Rz(yaw)·Ry(pitch)·Rx(roll).
func QuaternionFromEuler(roll, pitch, yaw float64) *Quaternion {
	qx := axisRotation(axisX, mgl64.DegToRad(roll))
	qy := axisRotation(axisY, mgl64.DegToRad(pitch))
	qz := axisRotation(axisZ, mgl64.DegToRad(yaw))
	return NewQuaternion(qz.Mul(qy).Mul(qx))
}

// QuaternionFromDirections returns the shortest rotation taking from onto
// to. Parallel inputs (or a zero input) give the identity. Opposite inputs
// rotate 180° about an axis perpendicular to from, built by crossing the
// cardinal axis least aligned with from.
func QuaternionFromDirections(from, to mgl64.Vec3) *Quaternion {
	f, errF := unitAxis("quaternion", from)
	t, errT := unitAxis("quaternion", to)
	if errF != nil || errT != nil {
		return NewQuaternion(mgl64.QuatIdent())
	}

	dot := f.Dot(t)
	switch {
	case dot > 1-parallelTolerance:
		return NewQuaternion(mgl64.QuatIdent())
	case dot < -1+parallelTolerance:
		axis := normalizeOr(leastAlignedAxis(f).Cross(f), axisY)
		return NewQuaternion(axisRotation(axis, math.Pi))
	default:
		axis := normalizeOr(f.Cross(t), axisY)
		return NewQuaternion(axisRotation(axis, math.Acos(mgl64.Clamp(dot, -1, 1))))
	}
}

// leastAlignedAxis returns the cardinal axis with the smallest absolute
// component of v.
func leastAlignedAxis(v mgl64.Vec3) mgl64.Vec3 {
	best := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) < math.Abs(v[best]) {
			best = i
		}
	}
	return [3]mgl64.Vec3{axisX, axisY, axisZ}[best]
}

// Slerp returns the spherical interpolation between two rotations at
// t in [0, 1].
func Slerp(a, b *Quaternion, t float64) *Quaternion {
	return NewQuaternion(mgl64.QuatSlerp(a.Q, b.Q, t))
}

// Then returns the rotation that applies q first and next second.
func (q *Quaternion) Then(next *Quaternion) *Quaternion {
	return NewQuaternion(next.Q.Mul(q.Q))
}

// Apply rotates m in place.
func (q *Quaternion) Apply(m *geometry.Model) error {
	mesh, err := mesh("quaternion", m)
	if err != nil {
		return err
	}
	if q.Q.Len() == 0 {
		return geometry.TransformError("quaternion", "zero quaternion is not a rotation")
	}
	rot := q.Q.Normalize()
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position = rot.Rotate(v.Position)
		v.Normal = rot.Rotate(v.Normal)
	}
	return nil
}
