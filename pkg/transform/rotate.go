package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Rotate turns positions and normals by Angle degrees about Axis through
// the origin. Axis need not be unit length but must be nonzero.
type Rotate struct {
	Axis  mgl64.Vec3
	Angle float64
}

var _ Transform = (*Rotate)(nil)

// NewRotate returns a rotation of degrees about axis.
func NewRotate(axis mgl64.Vec3, degrees float64) *Rotate {
	return &Rotate{Axis: axis, Angle: degrees}
}

// RotateX returns a rotation about the X axis.
func RotateX(degrees float64) *Rotate { return NewRotate(axisX, degrees) }

// RotateY returns a rotation about the Y axis.
func RotateY(degrees float64) *Rotate { return NewRotate(axisY, degrees) }

// RotateZ returns a rotation about the Z axis.
func RotateZ(degrees float64) *Rotate { return NewRotate(axisZ, degrees) }

// Matrix returns the 3x3 rotation matrix.
func (r *Rotate) Matrix() (mgl64.Mat3, error) {
	axis, err := unitAxis("rotate", r.Axis)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	return mgl64.HomogRotate3D(mgl64.DegToRad(r.Angle), axis).Mat3(), nil
}

// Apply rotates m in place.
func (r *Rotate) Apply(m *geometry.Model) error {
	mesh, err := mesh("rotate", m)
	if err != nil {
		return err
	}
	rot, err := r.Matrix()
	if err != nil {
		return err
	}
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position = rot.Mul3x1(v.Position)
		v.Normal = rot.Mul3x1(v.Normal)
	}
	return nil
}
