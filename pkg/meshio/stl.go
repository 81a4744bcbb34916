package meshio

import (
	"io"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/modelgen/pkg/geometry"
	sdfxkernel "github.com/chazu/modelgen/pkg/kernel/sdfx"
)

// WriteSTL writes m as ASCII STL. Polygons are fanned into triangles and
// each facet carries the geometric normal of its triangle.
func WriteSTL(w io.Writer, m *geometry.Model) error {
	if err := check("stl", m); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	name := objName(m.Name)
	ew.printf("solid %s\n", name)
	for _, f := range m.Mesh.Faces {
		for _, t := range f.Triangulate() {
			n := faceNormal(m.Mesh, t)
			ew.printf("  facet normal %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
			ew.printf("    outer loop\n")
			for _, idx := range t {
				p := m.Mesh.Vertices[idx].Position
				ew.printf("      vertex %s %s %s\n", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
			}
			ew.printf("    endloop\n")
			ew.printf("  endfacet\n")
		}
	}
	ew.printf("endsolid %s\n", name)
	if ew.err != nil {
		return geometry.Wrap(geometry.KindIO, "stl", ew.err)
	}
	return nil
}

// SaveSTL writes m to path as binary STL using the sdfx writer.
func SaveSTL(path string, m *geometry.Model) error {
	tris, err := triangles("stl", m)
	if err != nil {
		return err
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return geometry.Wrap(geometry.KindIO, "stl", err)
	}
	return nil
}

func triangles(op string, m *geometry.Model) ([]*sdf.Triangle3, error) {
	if err := check(op, m); err != nil {
		return nil, err
	}
	if m.Mesh.FaceCount() == 0 {
		return nil, geometry.ExportError(op, "model %q has no faces", m.Name)
	}
	tris, err := sdfxkernel.FromModel(m)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindExport, op, err)
	}
	return tris, nil
}
