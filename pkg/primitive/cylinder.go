package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// CylinderConfig describes a cylinder standing on the Y axis.
type CylinderConfig struct {
	Radius   float64    `yaml:"radius"`
	Height   float64    `yaml:"height"`
	Center   mgl64.Vec3 `yaml:"center"`
	Segments int        `yaml:"segments"`
	Caps     bool       `yaml:"caps"`
}

// DefaultCylinder returns a capped cylinder of radius 1 and height 2.
func DefaultCylinder() CylinderConfig {
	return CylinderConfig{Radius: 1, Height: 2, Segments: 32, Caps: true}
}

// Validate checks the configuration.
func (c CylinderConfig) Validate() error {
	if err := checkPositive("cylinder", "radius", c.Radius); err != nil {
		return err
	}
	if err := checkPositive("cylinder", "height", c.Height); err != nil {
		return err
	}
	if c.Segments < MinSegments {
		return geometry.InvalidModelError("cylinder", "need at least %d segments, got %d", MinSegments, c.Segments)
	}
	return checkCenter("cylinder", c.Center)
}

// Build generates the side wall and, if Caps is set, two triangle fans.
func (c CylinderConfig) Build() (*geometry.Model, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := geometry.NewModel("Cylinder")
	h := c.Height / 2
	top := make([]int, c.Segments)
	bottom := make([]int, c.Segments)

	for i := 0; i < c.Segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(c.Segments)
		sin, cos := math.Sincos(theta)
		n := mgl64.Vec3{cos, 0, sin}
		rim := c.Center.Add(n.Mul(c.Radius))
		u := float64(i) / float64(c.Segments)
		top[i] = m.Mesh.AddVertex(geometry.NewVertex(rim.Add(mgl64.Vec3{0, h, 0}), n).WithUV(u, 1))
		bottom[i] = m.Mesh.AddVertex(geometry.NewVertex(rim.Sub(mgl64.Vec3{0, h, 0}), n).WithUV(u, 0))
	}

	for i := 0; i < c.Segments; i++ {
		next := (i + 1) % c.Segments
		m.Mesh.AddFace(geometry.Triangle(bottom[i], top[i], top[next]), "")
		m.Mesh.AddFace(geometry.Triangle(bottom[i], top[next], bottom[next]), "")
	}

	if !c.Caps {
		return m, nil
	}
	topCenter := m.Mesh.AddVertex(geometry.NewVertex(c.Center.Add(mgl64.Vec3{0, h, 0}), mgl64.Vec3{0, 1, 0}).WithUV(0.5, 0.5))
	bottomCenter := m.Mesh.AddVertex(geometry.NewVertex(c.Center.Sub(mgl64.Vec3{0, h, 0}), mgl64.Vec3{0, -1, 0}).WithUV(0.5, 0.5))
	for i := 0; i < c.Segments; i++ {
		next := (i + 1) % c.Segments
		m.Mesh.AddFace(geometry.Triangle(topCenter, top[next], top[i]), "")
	}
	for i := 0; i < c.Segments; i++ {
		next := (i + 1) % c.Segments
		m.Mesh.AddFace(geometry.Triangle(bottomCenter, bottom[i], bottom[next]), "")
	}
	return m, nil
}
