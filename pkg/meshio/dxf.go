package meshio

import (
	"github.com/yofu/dxf"

	"github.com/chazu/modelgen/pkg/geometry"
)

// SaveDXF writes the wireframe of m to path as DXF LINE entities, one per
// unique edge.
func SaveDXF(path string, m *geometry.Model) error {
	if err := check("dxf", m); err != nil {
		return err
	}
	d := dxf.NewDrawing()
	for _, e := range Edges(m.Mesh) {
		a := m.Mesh.Vertices[e[0]].Position
		b := m.Mesh.Vertices[e[1]].Position
		if _, err := d.Line(a.X(), a.Y(), a.Z(), b.X(), b.Y(), b.Z()); err != nil {
			return geometry.Wrap(geometry.KindExport, "dxf", err)
		}
	}
	if err := d.SaveAs(path); err != nil {
		return geometry.Wrap(geometry.KindIO, "dxf", err)
	}
	return nil
}

// Edges returns each undirected face edge once, lower index first, in
// first-seen order.
func Edges(m *geometry.Mesh) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, f := range m.Faces {
		n := len(f.Indices)
		for i := 0; i < n; i++ {
			a, b := f.Indices[i], f.Indices[(i+1)%n]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if a == b || seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
