package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed polygon mesh. Vertex indices are stable once assigned;
// nothing in the library removes or compacts vertices.
//
// FaceMaterials is index-aligned with Faces. An empty string means the face
// has no material assignment.
type Mesh struct {
	Vertices      []Vertex             `json:"vertices"`
	Faces         []Face               `json:"faces"`
	Materials     map[string]*Material `json:"materials"`
	FaceMaterials []string             `json:"faceMaterials"`
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{Materials: make(map[string]*Material)}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face with an optional material name and returns its index.
func (m *Mesh) AddFace(f Face, material string) int {
	m.Faces = append(m.Faces, f)
	m.FaceMaterials = append(m.FaceMaterials, material)
	return len(m.Faces) - 1
}

// AddMaterial registers a material under its own name, replacing any
// material already registered with that name.
func (m *Mesh) AddMaterial(mat *Material) {
	if m.Materials == nil {
		m.Materials = make(map[string]*Material)
	}
	m.Materials[mat.Name] = mat
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// TriangleCount returns the number of triangles the faces fan into.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f.Indices) >= 3 {
			n += len(f.Indices) - 2
		}
	}
	return n
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasTexCoords reports whether any vertex carries texture coordinates.
func (m *Mesh) HasTexCoords() bool {
	for _, v := range m.Vertices {
		if v.HasTexCoords {
			return true
		}
	}
	return false
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return min, max
	}
	min = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], v.Position[i])
			max[i] = math.Max(max[i], v.Position[i])
		}
	}
	return min, max
}

// ComputeNormals recomputes vertex normals by accumulating the unit normal
// of every face that references the vertex. Vertices that end up with a
// zero normal get (0, 1, 0).
func (m *Mesh) ComputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl64.Vec3{}
	}

	n := len(m.Vertices)
	for _, f := range m.Faces {
		if len(f.Indices) < 3 || !f.inRange(n) {
			continue
		}
		v0 := m.Vertices[f.Indices[0]].Position
		v1 := m.Vertices[f.Indices[1]].Position
		v2 := m.Vertices[f.Indices[2]].Position

		fn := v1.Sub(v0).Cross(v2.Sub(v0))
		if l := fn.Len(); l > 0 {
			fn = fn.Mul(1 / l)
		}
		for _, idx := range f.Indices {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(fn)
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		if l := n.Len(); l > 0 {
			m.Vertices[i].Normal = n.Mul(1 / l)
		} else {
			m.Vertices[i].Normal = mgl64.Vec3{0, 1, 0}
		}
	}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices:      append([]Vertex(nil), m.Vertices...),
		Faces:         make([]Face, len(m.Faces)),
		Materials:     make(map[string]*Material, len(m.Materials)),
		FaceMaterials: append([]string(nil), m.FaceMaterials...),
	}
	for i, f := range m.Faces {
		out.Faces[i] = Face{Indices: append([]int(nil), f.Indices...)}
	}
	for name, mat := range m.Materials {
		out.Materials[name] = mat.Clone()
	}
	return out
}
