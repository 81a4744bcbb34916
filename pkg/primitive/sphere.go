package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// SphereConfig describes a UV sphere with poles on the Y axis.
type SphereConfig struct {
	Radius   float64    `yaml:"radius"`
	Center   mgl64.Vec3 `yaml:"center"`
	Segments int        `yaml:"segments"`
	Rings    int        `yaml:"rings"`
}

// DefaultSphere returns a unit sphere with 32 segments and 16 rings.
func DefaultSphere() SphereConfig {
	return SphereConfig{Radius: 1, Segments: 32, Rings: 16}
}

// Validate checks the configuration.
func (s SphereConfig) Validate() error {
	if err := checkPositive("sphere", "radius", s.Radius); err != nil {
		return err
	}
	if s.Segments < MinSegments {
		return geometry.InvalidModelError("sphere", "need at least %d segments, got %d", MinSegments, s.Segments)
	}
	if s.Rings < MinRings {
		return geometry.InvalidModelError("sphere", "need at least %d rings, got %d", MinRings, s.Rings)
	}
	return checkCenter("sphere", s.Center)
}

// VertexCount returns the number of vertices Build generates.
func (s SphereConfig) VertexCount() int {
	return 2 + (s.Rings-1)*s.Segments
}

// FaceCount returns the number of triangles Build generates.
func (s SphereConfig) FaceCount() int {
	return 2*s.Segments + 2*s.Segments*(s.Rings-2)
}

// Build generates the sphere. Normals are exact unit radial vectors.
func (s SphereConfig) Build() (*geometry.Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := geometry.NewModel("Sphere")
	c := s.Center

	top := m.Mesh.AddVertex(geometry.NewVertex(c.Add(mgl64.Vec3{0, s.Radius, 0}), mgl64.Vec3{0, 1, 0}).WithUV(0.5, 1))
	bottom := m.Mesh.AddVertex(geometry.NewVertex(c.Sub(mgl64.Vec3{0, s.Radius, 0}), mgl64.Vec3{0, -1, 0}).WithUV(0.5, 0))

	rings := make([][]int, 0, s.Rings-1)
	for i := 0; i < s.Rings-1; i++ {
		phi := math.Pi * float64(i+1) / float64(s.Rings)
		sinPhi, cosPhi := math.Sincos(phi)
		ring := make([]int, s.Segments)
		for j := 0; j < s.Segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(s.Segments)
			sinTheta, cosTheta := math.Sincos(theta)
			n := mgl64.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			u := float64(j) / float64(s.Segments)
			v := 1 - float64(i+1)/float64(s.Rings)
			ring[j] = m.Mesh.AddVertex(geometry.NewVertex(c.Add(n.Mul(s.Radius)), n).WithUV(u, v))
		}
		rings = append(rings, ring)
	}

	first := rings[0]
	for j := 0; j < s.Segments; j++ {
		next := (j + 1) % s.Segments
		m.Mesh.AddFace(geometry.Triangle(top, first[next], first[j]), "")
	}
	for i := 0; i < len(rings)-1; i++ {
		r1, r2 := rings[i], rings[i+1]
		for j := 0; j < s.Segments; j++ {
			next := (j + 1) % s.Segments
			m.Mesh.AddFace(geometry.Triangle(r1[j], r1[next], r2[j]), "")
			m.Mesh.AddFace(geometry.Triangle(r1[next], r2[next], r2[j]), "")
		}
	}
	last := rings[len(rings)-1]
	for j := 0; j < s.Segments; j++ {
		next := (j + 1) % s.Segments
		m.Mesh.AddFace(geometry.Triangle(bottom, last[j], last[next]), "")
	}
	return m, nil
}
