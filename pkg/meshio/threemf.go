package meshio

import (
	"bufio"
	"io"

	"github.com/hpinc/go3mf"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Write3MF writes m to w as a 3MF package holding a single mesh object.
// Vertices sharing a position are merged; normals, UVs and materials are
// not part of the core 3MF mesh and are dropped.
func Write3MF(w io.Writer, m *geometry.Model) error {
	if err := check("3mf", m); err != nil {
		return err
	}
	if m.Mesh.FaceCount() == 0 {
		return geometry.ExportError("3mf", "model %q has no faces", m.Name)
	}

	var model go3mf.Model
	var mesh go3mf.Mesh
	model.Units = go3mf.UnitMillimeter

	obj := &go3mf.Object{Mesh: &mesh, Name: m.Name}
	obj.ID = model.Resources.UnusedID()
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})

	mb := go3mf.NewMeshBuilder(&mesh)
	ids := make([]uint32, len(m.Mesh.Vertices))
	for i, v := range m.Mesh.Vertices {
		p := v.Position
		ids[i] = mb.AddVertex(go3mf.Point3D{float32(p[0]), float32(p[1]), float32(p[2])})
	}
	for _, f := range m.Mesh.Faces {
		for _, t := range f.Triangulate() {
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle,
				go3mf.Triangle{V1: ids[t[0]], V2: ids[t[1]], V3: ids[t[2]]})
		}
	}

	if err := go3mf.NewEncoder(w).Encode(&model); err != nil {
		return geometry.Wrap(geometry.KindExport, "3mf", err)
	}
	return nil
}

// Save3MF writes m to path as a 3MF package.
func Save3MF(path string, m *geometry.Model) error {
	if err := check("3mf", m); err != nil {
		return err
	}
	return createFile("3mf", path, func(w *bufio.Writer) error {
		return Write3MF(w, m)
	})
}
