package recipe_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/kernel/sdfx"
	"github.com/chazu/modelgen/pkg/plugin"
	"github.com/chazu/modelgen/pkg/recipe"
)

const tower = `
name: tower
primitive:
  kind: cube
  size: 2
  center: [0, 1, 0]
steps:
  - op: scale
    factors: [1, 3, 1]
  - op: twist
    axis: y
    angle: 30
  - op: rotate
    axis: [0, 0, 1]
    angle: 90
  - op: plugin
    name: center
outputs:
  - tower.obj
  - tower.stl
`

func TestParse(t *testing.T) {
	r, err := recipe.Parse([]byte(tower))
	require.NoError(t, err)
	assert.Equal(t, "tower", r.Name)
	assert.Equal(t, "cube", r.Primitive.Kind)
	require.Len(t, r.Steps, 4)
	assert.Equal(t, "twist", r.Steps[1].Op)
	assert.Equal(t, []string{"tower.obj", "tower.stl"}, r.Outputs)

	size, err := r.Primitive.Params.Float("size", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, size)
	center, err := r.Primitive.Params.Vec3("center", mgl64.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, center)
	assert.Empty(t, recipe.Validate(r))
}

func TestParseRejectsUnknownTopLevelKeys(t *testing.T) {
	_, err := recipe.Parse([]byte("name: x\nprimitive: {kind: cube}\ncolour: red\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrImport))
}

func TestParseNormalizesKebabKeys(t *testing.T) {
	r, err := recipe.Parse([]byte(`
primitive: {kind: sphere}
steps:
  - op: perspective
    focal-length: 2
    preserve-z: true
`))
	require.NoError(t, err)
	p := r.Steps[0].Params
	assert.True(t, p.Has("focal_length"))
	assert.True(t, p.Has("preserve_z"))
}

func TestValidate(t *testing.T) {
	r := &recipe.Recipe{
		Primitive: recipe.Primitive{Kind: "dodecahedron"},
		Steps: []recipe.Step{
			{Op: "scale"},
			{Op: "explode"},
			{},
		},
		Outputs: []string{"out.obj", "out.ply"},
	}
	errs := recipe.Validate(r)
	require.Len(t, errs, 4)
	assert.Equal(t, `unknown primitive kind "dodecahedron"`, errs[0].Error())
	assert.Equal(t, `step 1: unknown op "explode"`, errs[1].Error())
	assert.Equal(t, "step 2: op is required", errs[2].Error())
	assert.Contains(t, errs[3].Error(), "out.ply")

	assert.Len(t, recipe.Validate(nil), 1)
}

func TestBuildRejectsInvalidRecipe(t *testing.T) {
	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "cube"}}
	r.Add("explode", nil)
	_, err := recipe.NewRunner(nil, nil, nil).Build(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrInvalidModel))
	assert.Contains(t, err.Error(), "explode")
}

func TestBuild(t *testing.T) {
	r, err := recipe.Parse([]byte(tower))
	require.NoError(t, err)
	m, err := (&recipe.Runner{}).Build(r)
	require.NoError(t, err)
	assert.Equal(t, "tower", m.Name)
	assert.Equal(t, 8, m.Mesh.VertexCount())

	min, max := m.Mesh.Bounds()
	c := min.Add(max).Mul(0.5)
	assert.InDelta(t, 0, c.Len(), 1e-9)
	// The 6-unit tall column now lies along X.
	assert.Greater(t, max.X()-min.X(), 5.0)
}

func TestBuildBadParamNamesStep(t *testing.T) {
	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "cube"}}
	r.Add("translate", recipe.Params{"offset": 1}).
		Add("rotate", recipe.Params{"axis": "w", "angle": 10})
	_, err := recipe.NewRunner(nil, nil, nil).Build(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrInvalidModel))
	assert.Contains(t, err.Error(), "step 1 (rotate)")
}

func TestBuildTransformFailureStops(t *testing.T) {
	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "cube"}}
	r.Add("scale", recipe.Params{"factors": []any{1, 0, 1}}).
		Add("translate", recipe.Params{"offset": []any{1, 2, 3}})
	_, err := recipe.NewRunner(nil, nil, nil).Build(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrTransform))
	assert.Contains(t, err.Error(), "step 0 (scale)")
}

func TestEveryOpBuilds(t *testing.T) {
	steps := map[string]recipe.Params{
		"scale":        {"uniform": 2},
		"translate":    {"offset": []any{1, 0, 0}},
		"rotate":       {"axis": "-x", "angle": 45},
		"matrix":       {"rows": []any{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
		"mirror":       {"y": true},
		"quaternion":   {"euler": []any{10, 20, 30}},
		"bend":         {"angle": 45, "start": -0.5, "end": 0.5},
		"twist":        {"angle": 20},
		"taper":        {"start_scale": 1, "end_scale": 0.5, "min": -0.5, "max": 0.5},
		"perspective":  {"eye": []any{0, 0, -5}, "focal_length": 2},
		"orthographic": {"direction": "z"},
		"cylindrical":  {"radius": 2},
		"plugin":       {"name": "smooth_normals"},
	}
	require.ElementsMatch(t, recipe.Ops(), keys(steps))
	for op, params := range steps {
		t.Run(op, func(t *testing.T) {
			r := &recipe.Recipe{Name: op, Primitive: recipe.Primitive{Kind: "sphere", Params: recipe.Params{"segments": 8, "rings": 4}}}
			r.Add(op, params)
			m, err := recipe.NewRunner(plugin.Default(), nil, nil).Build(r)
			require.NoError(t, err)
			assert.NoError(t, m.Mesh.Validate())
		})
	}
}

func TestQuaternionForms(t *testing.T) {
	forms := []recipe.Params{
		{"q": []any{1, 0, 0, 0}},
		{"from": []any{0, 0, 1}, "to": []any{1, 0, 0}},
		{"axis": "y", "angle": 90},
	}
	for _, p := range forms {
		r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "cube"}}
		r.Add("quaternion", p)
		_, err := recipe.NewRunner(nil, nil, nil).Build(r)
		assert.NoError(t, err, "%v", p)
	}
}

func TestUnknownPluginFails(t *testing.T) {
	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "cube"}}
	r.Add("plugin", recipe.Params{"name": "melt"})
	_, err := recipe.NewRunner(plugin.Default(), nil, nil).Build(r)
	assert.True(t, errors.Is(err, geometry.ErrPlugin), "got %v", err)
}

func TestPrimitiveDefaultsApply(t *testing.T) {
	rn := recipe.NewRunner(nil, nil, nil)
	rn.Primitives.Sphere.Segments = 6
	rn.Primitives.Sphere.Rings = 3
	m, err := rn.Build(&recipe.Recipe{Primitive: recipe.Primitive{Kind: "sphere"}})
	require.NoError(t, err)
	assert.Equal(t, 2+2*6, m.Mesh.VertexCount())
}

func TestSDFPrimitive(t *testing.T) {
	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "sdf-box", Params: recipe.Params{
		"size":   []any{2, 1, 1},
		"center": []any{5, 0, 0},
	}}}
	_, err := recipe.NewRunner(nil, nil, nil).Build(r)
	assert.True(t, errors.Is(err, geometry.ErrInvalidModel), "no kernel: %v", err)

	m, err := recipe.NewRunner(nil, sdfx.New(40), nil).Build(r)
	require.NoError(t, err)
	min, max := m.Mesh.Bounds()
	assert.InDelta(t, 4, min.X(), 0.1)
	assert.InDelta(t, 6, max.X(), 0.1)
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.InfoLevel)
	rn := recipe.NewRunner(plugin.Default(), nil, zap.New(core))
	rn.OutputDir = dir

	r, err := recipe.Parse([]byte(tower))
	require.NoError(t, err)
	_, written, err := rn.Run(r)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "tower.obj"), filepath.Join(dir, "tower.stl")}, written)
	for _, p := range written {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, logs.FilterMessage("wrote model").Len())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("primitive:\n  kind: cylinder\n  segments: 12\n"), 0o644))
	r, err := recipe.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", r.Name)

	_, err = recipe.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, geometry.ErrIO))
}

func TestOBJPrimitive(t *testing.T) {
	dir := t.TempDir()
	rn := recipe.NewRunner(nil, nil, nil)
	rn.OutputDir = dir
	src := &recipe.Recipe{Name: "src", Primitive: recipe.Primitive{Kind: "cube"}, Outputs: []string{"src.obj"}}
	_, _, err := rn.Run(src)
	require.NoError(t, err)

	r := &recipe.Recipe{Primitive: recipe.Primitive{Kind: "obj", Params: recipe.Params{"path": filepath.Join(dir, "src.obj")}}}
	m, err := rn.Build(r)
	require.NoError(t, err)
	assert.Equal(t, 12, m.Mesh.FaceCount())
}

func TestMarshalRoundTrip(t *testing.T) {
	r, err := recipe.Parse([]byte(tower))
	require.NoError(t, err)
	data, err := r.Marshal()
	require.NoError(t, err)
	back, err := recipe.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, r.Name, back.Name)
	assert.Equal(t, len(r.Steps), len(back.Steps))
	assert.Equal(t, r.Steps[1].Params, back.Steps[1].Params)
}

func keys(m map[string]recipe.Params) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
