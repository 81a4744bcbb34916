package transform

import (
	"github.com/chazu/modelgen/pkg/geometry"
)

// Mirror reflects across the planes orthogonal to each enabled axis. An odd
// number of reflections inverts orientation, so face winding is reversed
// to keep normals and winding consistent.
type Mirror struct {
	X, Y, Z bool
}

var _ Transform = (*Mirror)(nil)

// NewMirror returns a mirror across the selected axes.
func NewMirror(x, y, z bool) *Mirror {
	return &Mirror{X: x, Y: y, Z: z}
}

// MirrorX negates X.
func MirrorX() *Mirror { return NewMirror(true, false, false) }

// MirrorY negates Y.
func MirrorY() *Mirror { return NewMirror(false, true, false) }

// MirrorZ negates Z.
func MirrorZ() *Mirror { return NewMirror(false, false, true) }

// Reflections returns how many axes are mirrored.
func (r *Mirror) Reflections() int {
	n := 0
	for _, on := range [3]bool{r.X, r.Y, r.Z} {
		if on {
			n++
		}
	}
	return n
}

// Apply mirrors m in place.
func (r *Mirror) Apply(m *geometry.Model) error {
	mesh, err := mesh("mirror", m)
	if err != nil {
		return err
	}
	enabled := [3]bool{r.X, r.Y, r.Z}
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		for a, on := range enabled {
			if on {
				v.Position[a] = -v.Position[a]
				v.Normal[a] = -v.Normal[a]
			}
		}
	}
	if r.Reflections()%2 == 1 {
		for _, f := range mesh.Faces {
			f.Reverse()
		}
	}
	return nil
}
