// Package meshio serializes models to interchange formats and reads
// Wavefront OBJ back in.
//
// Every writer validates the mesh first, so a face index that points past
// the vertex array is reported as an InvalidModel error rather than
// producing a corrupt file.
package meshio

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Format names an output file format.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
	FormatGLTF Format = "gltf"
	Format3MF  Format = "3mf"
	FormatSVG  Format = "svg"
	FormatDXF  Format = "dxf"
)

// Formats lists every format Save understands.
var Formats = []Format{FormatOBJ, FormatSTL, FormatGLTF, Format3MF, FormatSVG, FormatDXF}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, bool) {
	ext := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	for _, f := range Formats {
		if f == ext {
			return f, true
		}
	}
	return "", false
}

// Save writes m to path in the format implied by the extension.
func Save(path string, m *geometry.Model) error {
	format, ok := FormatFromPath(path)
	if !ok {
		return geometry.ExportError("save", "unsupported file extension %q", filepath.Ext(path))
	}
	switch format {
	case FormatOBJ:
		return SaveOBJ(path, m)
	case FormatSTL:
		return SaveSTL(path, m)
	case FormatGLTF:
		return SaveGLTF(path, m)
	case Format3MF:
		return Save3MF(path, m)
	case FormatSVG:
		return SaveSVG(path, m, DefaultSVGOptions())
	case FormatDXF:
		return SaveDXF(path, m)
	}
	return geometry.ExportError("save", "unhandled format %q", format)
}

// check rejects models exporters cannot serialize.
func check(op string, m *geometry.Model) error {
	if m == nil || m.Mesh == nil {
		return geometry.InvalidModelError(op, "model has no mesh")
	}
	return m.Mesh.Validate()
}

// createFile opens path for writing and hands a buffered writer to write.
// The buffer is flushed and the file closed even when write fails.
func createFile(op, path string, write func(w *bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return geometry.Wrap(geometry.KindIO, op, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = geometry.Wrap(geometry.KindIO, op, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return geometry.Wrap(geometry.KindIO, op, err)
	}
	return nil
}

// faceNormal returns the unit normal of the triangle (a, b, c), or zero
// for a degenerate triangle.
func faceNormal(m *geometry.Mesh, t [3]int) [3]float64 {
	a := m.Vertices[t[0]].Position
	b := m.Vertices[t[1]].Position
	c := m.Vertices[t[2]].Position
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	return n
}
