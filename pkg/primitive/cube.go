package primitive

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// CubeConfig describes an axis-aligned cube.
type CubeConfig struct {
	Size    float64    `yaml:"size"`
	Center  mgl64.Vec3 `yaml:"center"`
	WithUVs bool       `yaml:"uvs"`
}

// DefaultCube returns a unit cube at the origin with texture coordinates.
func DefaultCube() CubeConfig {
	return CubeConfig{Size: 1, WithUVs: true}
}

// Validate checks the configuration.
func (c CubeConfig) Validate() error {
	if err := checkPositive("cube", "size", c.Size); err != nil {
		return err
	}
	return checkCenter("cube", c.Center)
}

// Build generates the eight corners and twelve outward-wound triangles.
// Corner normals are computed from the faces.
func (c CubeConfig) Build() (*geometry.Model, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := geometry.NewModel("Cube")
	h := c.Size / 2
	corners := []struct {
		dx, dy, dz float64
		u, v       float64
	}{
		{-1, -1, 1, 0, 0},
		{1, -1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{-1, 1, 1, 0, 1},
		{-1, -1, -1, 0, 0},
		{-1, 1, -1, 0, 1},
		{1, 1, -1, 1, 1},
		{1, -1, -1, 1, 0},
	}
	for _, k := range corners {
		vert := geometry.VertexAt(c.Center.X()+k.dx*h, c.Center.Y()+k.dy*h, c.Center.Z()+k.dz*h)
		if c.WithUVs {
			vert = vert.WithUV(k.u, k.v)
		}
		m.Mesh.AddVertex(vert)
	}

	for _, t := range [12][3]int{
		{0, 1, 2}, {0, 2, 3}, // front (+z)
		{4, 5, 6}, {4, 6, 7}, // back (-z)
		{3, 2, 6}, {3, 6, 5}, // top (+y)
		{0, 4, 7}, {0, 7, 1}, // bottom (-y)
		{1, 7, 6}, {1, 6, 2}, // right (+x)
		{0, 3, 5}, {0, 5, 4}, // left (-x)
	} {
		m.Mesh.AddFace(geometry.Triangle(t[0], t[1], t[2]), "")
	}
	m.Mesh.ComputeNormals()
	return m, nil
}
