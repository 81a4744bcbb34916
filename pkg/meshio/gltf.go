package meshio

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/modelgen/pkg/geometry"
)

// WriteGLTF writes m as a glTF 2.0 JSON document to doc and its binary
// buffer to bin. binURI is the name doc uses to reference the buffer.
// Indices are always 32-bit.
func WriteGLTF(doc, bin io.Writer, m *geometry.Model, binURI string) error {
	if err := check("gltf", m); err != nil {
		return err
	}
	b := Flatten(m.Mesh)
	if b.IsEmpty() || b.TriangleCount() == 0 {
		return geometry.ExportError("gltf", "model %q has no triangles", m.Name)
	}

	d := gltf.NewDocument()
	d.Asset.Generator = "modelgen"

	attrs := gltf.PrimitiveAttributes{
		"POSITION": modeler.WritePosition(d, vec3s(b.Positions)),
		"NORMAL":   modeler.WriteNormal(d, vec3s(b.Normals)),
	}
	if len(b.TexCoords) > 0 {
		attrs["TEXCOORD_0"] = modeler.WriteTextureCoord(d, vec2s(b.TexCoords))
	}
	indices := modeler.WriteIndices(d, b.Indices)

	lo, hi := b.Bounds()
	pos := d.Accessors[attrs["POSITION"]]
	pos.Min = []float64{float64(lo[0]), float64(lo[1]), float64(lo[2])}
	pos.Max = []float64{float64(hi[0]), float64(hi[1]), float64(hi[2])}

	d.Meshes = append(d.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    gltf.Index(indices),
			Mode:       gltf.PrimitiveTriangles,
		}},
	})
	d.Nodes = append(d.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(d.Meshes) - 1)})
	d.Scenes[0].Nodes = append(d.Scenes[0].Nodes, len(d.Nodes)-1)

	d.Buffers[len(d.Buffers)-1].URI = binURI

	enc := gltf.NewEncoder(doc)
	enc.WriteHandler = binHandler{w: bin}
	if err := enc.Encode(d); err != nil {
		return geometry.Wrap(geometry.KindExport, "gltf", err)
	}
	return nil
}

// binHandler routes the encoder's external buffer to a writer instead of
// a file next to the working directory.
type binHandler struct {
	w io.Writer
}

func (h binHandler) WriteResource(_ string, data []byte) error {
	_, err := h.w.Write(data)
	return err
}

// SaveGLTF writes m to path and its buffer to a sibling .bin file with the
// same stem.
func SaveGLTF(path string, m *geometry.Model) error {
	if err := check("gltf", m); err != nil {
		return err
	}
	binURI := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".bin"
	binPath := filepath.Join(filepath.Dir(path), binURI)

	return createFile("gltf", binPath, func(bin *bufio.Writer) error {
		return createFile("gltf", path, func(doc *bufio.Writer) error {
			return WriteGLTF(doc, bin, m, binURI)
		})
	})
}

func vec3s(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func vec2s(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[2*i], flat[2*i+1]}
	}
	return out
}
