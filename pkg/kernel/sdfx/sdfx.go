// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max mgl64.Vec3) {
	bb := s.s.BoundingBox()
	return toVec(bb.Min), toVec(bb.Max)
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel rendering with cells marching-cubes cells
// along the longest bounding-box axis. Non-positive values use
// DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Cells returns the tessellation resolution.
func (k *SdfxKernel) Cells() int {
	return k.cells
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func toVec(v v3.Vec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func checkDims(op string, dims ...float64) error {
	for _, d := range dims {
		if !(d > 0) {
			return geometry.InvalidModelError(op, "dimensions must be positive, got %v", dims)
		}
	}
	return nil
}

// Box creates a box with the given dimensions centred on the origin.
func (k *SdfxKernel) Box(x, y, z float64) (kernel.Solid, error) {
	if err := checkDims("sdfx box", x, y, z); err != nil {
		return nil, err
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindInvalidModel, "sdfx box", err)
	}
	return wrap(s), nil
}

// Sphere creates a sphere centred on the origin.
func (k *SdfxKernel) Sphere(radius float64) (kernel.Solid, error) {
	if err := checkDims("sdfx sphere", radius); err != nil {
		return nil, err
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindInvalidModel, "sdfx sphere", err)
	}
	return wrap(s), nil
}

// Cylinder creates a cylinder along Z centred on the origin.
func (k *SdfxKernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	if err := checkDims("sdfx cylinder", height, radius); err != nil {
		return nil, err
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindInvalidModel, "sdfx cylinder", err)
	}
	return wrap(s), nil
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.RotateZ(mgl64.DegToRad(z)).
		Mul(sdf.RotateY(mgl64.DegToRad(y))).
		Mul(sdf.RotateX(mgl64.DegToRad(x)))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Triangles tessellates a solid using marching cubes.
func (k *SdfxKernel) Triangles(s kernel.Solid) []*sdf.Triangle3 {
	renderer := render.NewMarchingCubesUniform(k.cells)
	return render.ToTriangles(unwrap(s), renderer)
}

// ToModel converts a solid to a model. Each triangle gets its own three
// vertices carrying the face normal, so hard edges stay sharp.
func (k *SdfxKernel) ToModel(s kernel.Solid, name string) (*geometry.Model, error) {
	triangles := k.Triangles(s)
	if len(triangles) == 0 {
		return nil, geometry.InvalidModelError("sdfx", "solid %q tessellated to no triangles", name)
	}

	m := geometry.NewModel(name)
	m.Mesh.Vertices = make([]geometry.Vertex, 0, len(triangles)*3)
	for _, tri := range triangles {
		n := toVec(tri.Normal())
		var idx [3]int
		for j := 0; j < 3; j++ {
			idx[j] = m.Mesh.AddVertex(geometry.NewVertex(toVec(tri[j]), n))
		}
		m.Mesh.AddFace(geometry.Triangle(idx[0], idx[1], idx[2]), "")
	}
	return m, nil
}

// FromModel converts a model's faces to sdfx triangles, fanning polygons.
// It is the inverse of ToModel and feeds the sdfx file writers.
func FromModel(m *geometry.Model) ([]*sdf.Triangle3, error) {
	if m == nil || m.Mesh == nil {
		return nil, fmt.Errorf("sdfx: model has no mesh")
	}
	var out []*sdf.Triangle3
	for _, f := range m.Mesh.Faces {
		for _, t := range f.Triangulate() {
			var tri sdf.Triangle3
			for j, idx := range t {
				p := m.Mesh.Vertices[idx].Position
				tri[j] = v3.Vec{X: p.X(), Y: p.Y(), Z: p.Z()}
			}
			out = append(out, &tri)
		}
	}
	return out, nil
}
