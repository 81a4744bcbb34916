package kernel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB mgl64.Vec3
}

func (s *stubSolid) BoundingBox() (min, max mgl64.Vec3) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) (Solid, error) {
	h := mgl64.Vec3{x, y, z}.Mul(0.5)
	return &stubSolid{minBB: h.Mul(-1), maxBB: h}, nil
}

func (k *stubKernel) Sphere(radius float64) (Solid, error) {
	return k.Box(2*radius, 2*radius, 2*radius)
}

func (k *stubKernel) Cylinder(height, radius float64) (Solid, error) {
	return k.Box(2*radius, 2*radius, height)
}

func (k *stubKernel) Translate(s Solid, x, y, z float64) Solid {
	min, max := s.BoundingBox()
	d := mgl64.Vec3{x, y, z}
	return &stubSolid{minBB: min.Add(d), maxBB: max.Add(d)}
}

func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid { return s }

func (k *stubKernel) ToModel(_ Solid, name string) (*geometry.Model, error) {
	return geometry.NewModel(name), nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, err := k.Box(10, 20, 30)
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	min, max := s.BoundingBox()
	if min != (mgl64.Vec3{-5, -10, -15}) {
		t.Errorf("Box min = %v, want [-5 -10 -15]", min)
	}
	if max != (mgl64.Vec3{5, 10, 15}) {
		t.Errorf("Box max = %v, want [5 10 15]", max)
	}
}

func TestStubKernelTranslate(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, _ := k.Box(2, 2, 2)
	min, max := k.Translate(s, 10, 0, 0).BoundingBox()
	if min != (mgl64.Vec3{9, -1, -1}) || max != (mgl64.Vec3{11, 1, 1}) {
		t.Errorf("Translate bounds = %v..%v", min, max)
	}
}

func TestStubKernelToModel(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, _ := k.Sphere(1)
	m, err := k.ToModel(s, "ball")
	if err != nil {
		t.Fatalf("ToModel() error = %v", err)
	}
	if m == nil || m.Mesh == nil {
		t.Fatal("ToModel() returned nil model")
	}
	if m.Name != "ball" {
		t.Errorf("ToModel() name = %q, want ball", m.Name)
	}
	if !m.Mesh.IsEmpty() {
		t.Error("stub ToModel() should return empty mesh")
	}
}
