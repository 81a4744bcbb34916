package plugin_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/plugin"
	"github.com/chazu/modelgen/pkg/primitive"
	"github.com/chazu/modelgen/pkg/transform"
)

type countingPlugin struct {
	name  string
	calls *int
	err   error
}

func (p countingPlugin) Name() string        { return p.name }
func (p countingPlugin) Description() string { return "counts calls" }
func (p countingPlugin) Process(*geometry.Model) error {
	*p.calls++
	return p.err
}

func cube(t *testing.T) *geometry.Model {
	t.Helper()
	m, err := primitive.CubeConfig{Size: 2, Center: mgl64.Vec3{3, 4, 5}}.Build()
	require.NoError(t, err)
	return m
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := plugin.NewRegistry()
	calls := 0
	require.NoError(t, r.Register(countingPlugin{name: "a", calls: &calls}))
	err := r.Register(countingPlugin{name: "a", calls: &calls})
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrPlugin))

	err = r.Register(countingPlugin{name: "", calls: &calls})
	assert.True(t, errors.Is(err, geometry.ErrPlugin))
}

func TestGetAndList(t *testing.T) {
	r := plugin.NewRegistry()
	calls := 0
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(countingPlugin{name: name, calls: &calls}))
	}
	p, ok := r.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "mid", p.Name())
	_, ok = r.Get("missing")
	assert.False(t, ok)

	var names []string
	for _, p := range r.List() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	assert.Panics(t, func() { r.MustGet("missing") })
	assert.NotPanics(t, func() { r.MustGet("alpha") })
}

func TestRegistryProcessUnknown(t *testing.T) {
	err := plugin.NewRegistry().Process("nope", cube(t))
	assert.True(t, errors.Is(err, geometry.ErrPlugin))
}

func TestConcurrentAccess(t *testing.T) {
	r := plugin.Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Get("center")
			_ = r.List()
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry(t *testing.T) {
	var names []string
	for _, p := range plugin.Default().List() {
		names = append(names, p.Name())
		assert.NotEmpty(t, p.Description())
	}
	assert.Equal(t, []string{"center", "flip_x", "flip_y", "flip_z", "smooth_normals"}, names)
}

func TestCompositeStopsOnFirstFailure(t *testing.T) {
	var first, second, third int
	boom := errors.New("boom")
	c := plugin.NewCompositePlugin("chain", "three steps",
		countingPlugin{name: "one", calls: &first},
		countingPlugin{name: "two", calls: &second, err: boom},
		countingPlugin{name: "three", calls: &third},
	)
	err := c.Process(cube(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrPlugin))
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "two")
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 0, third)
	assert.Len(t, c.Plugins(), 3)
}

func TestTransformPlugin(t *testing.T) {
	m := cube(t)
	p := plugin.NewTransformPlugin("lift", "move up", transform.NewTranslate(0, 1, 0))
	require.NoError(t, p.Process(m))
	min, _ := m.Mesh.Bounds()
	assert.InDelta(t, 4, min.Y(), 1e-12)

	bad := plugin.NewTransformPlugin("bad", "zero axis", transform.NewRotate(mgl64.Vec3{}, 10))
	err := bad.Process(m)
	assert.True(t, errors.Is(err, geometry.ErrPlugin))
	assert.True(t, errors.Is(err, geometry.ErrTransform))
}

func TestCenter(t *testing.T) {
	m := cube(t)
	require.NoError(t, plugin.Default().Process("center", m))
	min, max := m.Mesh.Bounds()
	assert.Equal(t, mgl64.Vec3{-1, -1, -1}, min)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, max)
}

func TestFlipReversesWinding(t *testing.T) {
	m := cube(t)
	before := append([]int(nil), m.Mesh.Faces[0].Indices...)
	require.NoError(t, plugin.Default().Process("flip_x", m))
	after := m.Mesh.Faces[0].Indices
	assert.Equal(t, []int{before[2], before[1], before[0]}, after)
}

func TestSmoothNormals(t *testing.T) {
	m := cube(t)
	for i := range m.Mesh.Vertices {
		m.Mesh.Vertices[i].Normal = mgl64.Vec3{}
	}
	require.NoError(t, plugin.SmoothNormals{}.Process(m))
	for _, v := range m.Mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
	}
	assert.Error(t, plugin.SmoothNormals{}.Process(nil))
}
