package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Matrix applies an arbitrary 4x4 homogeneous transform to positions and
// its inverse-transpose to normals.
type Matrix struct {
	M mgl64.Mat4
}

var _ Transform = (*Matrix)(nil)

// NewMatrix wraps a column-major mgl64 matrix.
func NewMatrix(m mgl64.Mat4) *Matrix {
	return &Matrix{M: m}
}

// MatrixFromRows builds the transform from 16 values in row-major order,
// the order matrices are usually written down in.
func MatrixFromRows(v [16]float64) *Matrix {
	return NewMatrix(mgl64.Mat4FromRows(
		mgl64.Vec4{v[0], v[1], v[2], v[3]},
		mgl64.Vec4{v[4], v[5], v[6], v[7]},
		mgl64.Vec4{v[8], v[9], v[10], v[11]},
		mgl64.Vec4{v[12], v[13], v[14], v[15]},
	))
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 block,
// or the identity when that block is singular.
func (t *Matrix) NormalMatrix() mgl64.Mat3 {
	linear := t.M.Mat3()
	if det := linear.Det(); det == 0 || math.IsNaN(det) {
		return mgl64.Ident3()
	}
	return linear.Inv().Transpose()
}

// Apply transforms m in place. Every position is computed before the mesh
// is written, so a vertex mapping to w == 0 leaves m untouched.
func (t *Matrix) Apply(m *geometry.Model) error {
	mesh, err := mesh("matrix", m)
	if err != nil {
		return err
	}

	positions := make([]mgl64.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		h := t.M.Mul4x1(v.Position.Vec4(1))
		if h.W() == 0 {
			return geometry.TransformError("matrix", "vertex %d maps to w = 0", i)
		}
		positions[i] = h.Vec3().Mul(1 / h.W())
	}

	normal := t.NormalMatrix()
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position = positions[i]
		v.Normal = normalizeOr(normal.Mul3x1(v.Normal), mgl64.Vec3{})
	}
	return nil
}
