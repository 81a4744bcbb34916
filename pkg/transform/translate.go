package transform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Translate adds Offset to every position. Normals are unchanged.
type Translate struct {
	Offset mgl64.Vec3
}

var _ Transform = (*Translate)(nil)

// NewTranslate returns a translation by (x, y, z).
func NewTranslate(x, y, z float64) *Translate {
	return &Translate{Offset: mgl64.Vec3{x, y, z}}
}

// Apply translates m in place.
func (t *Translate) Apply(m *geometry.Model) error {
	mesh, err := mesh("translate", m)
	if err != nil {
		return err
	}
	for i := range mesh.Vertices {
		mesh.Vertices[i].Position = mesh.Vertices[i].Position.Add(t.Offset)
	}
	return nil
}
