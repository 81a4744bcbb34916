package meshio

import (
	"math"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Buffers is a triangulated, flat copy of a mesh suitable for binary
// formats. Positions and Normals have 3 floats per vertex, TexCoords has 2
// per vertex or is empty, Indices has 3 per triangle.
type Buffers struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	TexCoords []float32 `json:"texCoords,omitempty"`
	Indices   []uint32  `json:"indices"`
}

// Flatten copies m's vertices into flat arrays and fans every face into
// triangles. Vertices without texture coordinates get (0, 0) when any
// other vertex has them.
func Flatten(m *geometry.Mesh) *Buffers {
	n := len(m.Vertices)
	b := &Buffers{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		Indices:   make([]uint32, 0, m.TriangleCount()*3),
	}
	uvs := m.HasTexCoords()
	if uvs {
		b.TexCoords = make([]float32, 0, n*2)
	}
	for _, v := range m.Vertices {
		b.Positions = append(b.Positions, float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2]))
		b.Normals = append(b.Normals, float32(v.Normal[0]), float32(v.Normal[1]), float32(v.Normal[2]))
		if uvs {
			b.TexCoords = append(b.TexCoords, float32(v.TexCoords[0]), float32(v.TexCoords[1]))
		}
	}
	for _, f := range m.Faces {
		for _, t := range f.Triangulate() {
			b.Indices = append(b.Indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
		}
	}
	return b
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffers hold no geometry.
func (b *Buffers) IsEmpty() bool {
	return len(b.Positions) == 0
}

// Bounds returns the per-component minimum and maximum position.
func (b *Buffers) Bounds() (min, max [3]float32) {
	for i := 0; i < 3; i++ {
		min[i] = math.MaxFloat32
		max[i] = -math.MaxFloat32
	}
	for i := 0; i+2 < len(b.Positions); i += 3 {
		for a := 0; a < 3; a++ {
			p := b.Positions[i+a]
			if p < min[a] {
				min[a] = p
			}
			if p > max[a] {
				max[a] = p
			}
		}
	}
	return min, max
}
