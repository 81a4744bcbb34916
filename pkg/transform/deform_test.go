package transform_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/transform"
)

// --- Bend ---

func TestBendLeavesOutsideRegionUntouched(t *testing.T) {
	m := unitCube()
	before := make([]geometry.Vertex, len(m.Mesh.Vertices))
	copy(before, m.Mesh.Vertices)

	require.NoError(t, transform.BendX(90, 0, 0.5).Apply(m))

	moved := 0
	for i, v := range m.Mesh.Vertices {
		if before[i].Position.Y() < 0 {
			assert.Equal(t, before[i], v, "vertex %d below the region must be bit-for-bit unchanged", i)
			continue
		}
		if v.Position != before[i].Position {
			moved++
		}
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
	}
	assert.Equal(t, 4, moved)
}

func TestBendArcPosition(t *testing.T) {
	m := geometry.NewModel("point")
	m.Mesh.AddVertex(geometry.NewVertex(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 1, 0}))
	require.NoError(t, transform.BendX(90, 0, 0.5).Apply(m))

	// theta = 90 degrees at the end of the region, arc radius 0.5/theta.
	r := 0.5 / (math.Pi / 2)
	v := m.Mesh.Vertices[0]
	assertVecNear(t, mgl64.Vec3{0.5, -0.5 + r, r}, v.Position, 1e-9)
	assertVecNear(t, mgl64.Vec3{0, 0, 1}, v.Normal, 1e-9)
}

func TestBendZeroAngleIsIdentity(t *testing.T) {
	m := unitCube()
	orig := positions(m)
	require.NoError(t, transform.BendZ(0, -1, 1).Apply(m))
	for i, p := range positions(m) {
		assertVecNear(t, orig[i], p, 1e-12)
	}
}

func TestBendDegenerateRegionIsNoOp(t *testing.T) {
	m := unitCube()
	before := make([]geometry.Vertex, len(m.Mesh.Vertices))
	copy(before, m.Mesh.Vertices)
	require.NoError(t, transform.BendY(90, 0.2, 0.2+1e-6).Apply(m))
	assert.Equal(t, before, m.Mesh.Vertices)
}

func TestBendReversedRegionIsNoOp(t *testing.T) {
	m := unitCube()
	before := make([]geometry.Vertex, len(m.Mesh.Vertices))
	copy(before, m.Mesh.Vertices)
	require.NoError(t, transform.BendX(90, 0.5, -0.5).Apply(m))
	assert.Equal(t, before, m.Mesh.Vertices)
}

func TestBendZeroAxisFails(t *testing.T) {
	b := transform.NewBend(mgl64.Vec3{}, 45, 0, 1, mgl64.Vec3{0, 1, 0})
	assert.Error(t, b.Apply(unitCube()))
}

// --- Twist ---

// A quarter turn per unit about Y through the origin rotates the top face
// by +45 degrees and the bottom face by -45 degrees, so matching corners
// land at different x.
func TestTwistTopAndBottomDiffer(t *testing.T) {
	m := unitCube()
	require.NoError(t, transform.TwistY(90, 0, 0).Apply(m))

	// Corner 2 is (0.5, 0.5, 0.5); corner 1 is (0.5, -0.5, 0.5).
	top := m.Mesh.Vertices[2].Position
	bottom := m.Mesh.Vertices[1].Position
	assert.InDelta(t, math.Sqrt2/2, top.X(), 1e-9)
	assert.InDelta(t, 0, bottom.X(), 1e-9)
	assert.Greater(t, math.Abs(top.X()-bottom.X()), 0.1)
	assert.InDelta(t, 0.5, top.Y(), 1e-12)
	assert.InDelta(t, -0.5, bottom.Y(), 1e-12)
	assertUnitNormals(t, m)
}

func TestTwistPreservesDistanceFromAxis(t *testing.T) {
	m := unitCube()
	orig := positions(m)
	require.NoError(t, transform.TwistZ(123, 0.1, -0.2).Apply(m))
	radial := func(p mgl64.Vec3) float64 {
		return math.Hypot(p.X()-0.1, p.Y()+0.2)
	}
	for i, p := range positions(m) {
		assert.InDelta(t, radial(orig[i]), radial(p), 1e-9)
		assert.InDelta(t, orig[i].Z(), p.Z(), 1e-12)
	}
}

func TestTwistFlatModelUnchanged(t *testing.T) {
	m := geometry.NewModel("square")
	for _, c := range [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		m.Mesh.AddVertex(geometry.NewVertex(mgl64.Vec3{c[0], 0, c[1]}, mgl64.Vec3{0, 1, 0}))
	}
	m.Mesh.AddFace(geometry.Quad(0, 1, 2, 3), "")
	before := make([]geometry.Vertex, 4)
	copy(before, m.Mesh.Vertices)

	require.NoError(t, transform.TwistY(90, 0, 0).Apply(m))
	assert.Equal(t, before, m.Mesh.Vertices)
}

// --- Taper ---

func xWidthAt(m *geometry.Model, y float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range m.Mesh.Vertices {
		if math.Abs(v.Position.Y()-y) < 1e-6 {
			lo = math.Min(lo, v.Position.X())
			hi = math.Max(hi, v.Position.X())
		}
	}
	return hi - lo
}

func TestTaperNarrowsTop(t *testing.T) {
	m := unitCube()
	require.NoError(t, transform.TaperY([2]float64{1, 1}, [2]float64{0.1, 0.1}, -0.5, 0.5).Apply(m))

	top, bottom := xWidthAt(m, 0.5), xWidthAt(m, -0.5)
	require.Greater(t, bottom, 0.0)
	assert.InEpsilon(t, 0.1, top/bottom, 0.05)
	assert.InDelta(t, 1.0, bottom, 1e-9)
	assertUnitNormals(t, m)
}

func TestTaperKeepsAxialCoordinate(t *testing.T) {
	m := unitCube()
	orig := positions(m)
	require.NoError(t, transform.TaperZ([2]float64{2, 3}, [2]float64{0.5, 0.25}, -0.5, 0.5).Apply(m))
	for i, p := range positions(m) {
		assert.InDelta(t, orig[i].Z(), p.Z(), 1e-12)
	}
	// Bottom (z = -0.5) uses the start scales per world axis.
	v := m.Mesh.Vertices[4].Position
	assertVecNear(t, mgl64.Vec3{-1, -1.5, -0.5}, v, 1e-9)
}

func TestTaperSkipsOutsideBounds(t *testing.T) {
	m := unitCube()
	before := make([]geometry.Vertex, len(m.Mesh.Vertices))
	copy(before, m.Mesh.Vertices)
	require.NoError(t, transform.TaperY([2]float64{1, 1}, [2]float64{0.5, 0.5}, 0, 0.5).Apply(m))
	for i, v := range m.Mesh.Vertices {
		if before[i].Position.Y() < 0 {
			assert.Equal(t, before[i], v)
		}
	}
}

func TestTaperZeroScaleGuardsNormals(t *testing.T) {
	m := unitCube()
	require.NoError(t, transform.TaperX([2]float64{1, 1}, [2]float64{0, 0}, -0.5, 0.5).Apply(m))
	for _, v := range m.Mesh.Vertices {
		assert.False(t, math.IsNaN(v.Normal.Len()))
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
	}
}

func TestTaperDegenerateBoundsIsNoOp(t *testing.T) {
	m := unitCube()
	orig := positions(m)
	require.NoError(t, transform.TaperY([2]float64{2, 2}, [2]float64{3, 3}, 0.5, 0.5).Apply(m))
	assert.Equal(t, orig, positions(m))
}
