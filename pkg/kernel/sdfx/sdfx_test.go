package sdfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// coarse keeps marching cubes fast in tests.
const coarse = 40

func TestBox(t *testing.T) {
	k := New(coarse)
	box, err := k.Box(100, 50, 25)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	model, err := k.ToModel(box, "box")
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}
	if model.Mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if model.Mesh.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	if model.Mesh.VertexCount() != model.Mesh.FaceCount()*3 {
		t.Fatalf("vertex count %d != 3 * face count %d", model.Mesh.VertexCount(), model.Mesh.FaceCount())
	}
	if err := model.Mesh.Validate(); err != nil {
		t.Fatalf("tessellated mesh is invalid: %v", err)
	}
}

func TestSphere(t *testing.T) {
	k := New(coarse)
	s, err := k.Sphere(10)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	model, err := k.ToModel(s, "ball")
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}
	// Marching cubes vertices lie within one cell of the surface.
	cell := 20.0 / coarse
	for i, v := range model.Mesh.Vertices {
		if d := math.Abs(v.Position.Len() - 10); d > cell {
			t.Fatalf("vertex %d is %f from the surface", i, d)
		}
	}
}

func TestCylinder(t *testing.T) {
	k := New(coarse)
	cyl, err := k.Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	model, err := k.ToModel(cyl, "cyl")
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}
	if model.Mesh.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	t.Logf("cylinder triangle count: %d", model.Mesh.FaceCount())
}

func TestInvalidDimensions(t *testing.T) {
	k := New(coarse)
	if _, err := k.Box(-1, 1, 1); err == nil {
		t.Error("expected error for negative box size")
	}
	if _, err := k.Sphere(0); err == nil {
		t.Error("expected error for zero sphere radius")
	}
	if _, err := k.Cylinder(1, -2); err == nil {
		t.Error("expected error for negative cylinder radius")
	}
}

func TestTranslate(t *testing.T) {
	k := New(coarse)
	box, _ := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Translated box(10,10,10) by (100,200,300) should be centered at (100,200,300).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New(coarse)
	box, _ := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New(coarse)
	box, _ := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestDefaultCells(t *testing.T) {
	if got := New(0).Cells(); got != DefaultMeshCells {
		t.Errorf("New(0).Cells() = %d, want %d", got, DefaultMeshCells)
	}
}

func TestFromModel(t *testing.T) {
	m := geometry.NewModel("quad")
	m.Mesh.AddVertex(geometry.VertexAt(0, 0, 0))
	m.Mesh.AddVertex(geometry.VertexAt(1, 0, 0))
	m.Mesh.AddVertex(geometry.VertexAt(1, 1, 0))
	m.Mesh.AddVertex(geometry.VertexAt(0, 1, 0))
	m.Mesh.AddFace(geometry.Quad(0, 1, 2, 3), "")

	tris, err := FromModel(m)
	if err != nil {
		t.Fatalf("FromModel failed: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	n := toVec(tris[0].Normal())
	if !n.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("first triangle normal = %v, want +Z", n)
	}

	if _, err := FromModel(&geometry.Model{}); err == nil {
		t.Error("expected error for model without mesh")
	}
}
