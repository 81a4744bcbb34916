package geometry

import "github.com/go-gl/mathgl/mgl64"

// Vertex is a mesh vertex. Normal is not guaranteed to be unit length.
type Vertex struct {
	Position     mgl64.Vec3 `json:"position"`
	Normal       mgl64.Vec3 `json:"normal"`
	TexCoords    mgl64.Vec2 `json:"texCoords"`
	HasTexCoords bool       `json:"hasTexCoords"`
}

// NewVertex returns a vertex with a position and normal and no texture coordinates.
func NewVertex(position, normal mgl64.Vec3) Vertex {
	return Vertex{Position: position, Normal: normal}
}

// VertexAt returns a vertex with only position data.
func VertexAt(x, y, z float64) Vertex {
	return Vertex{Position: mgl64.Vec3{x, y, z}}
}

// WithUV returns a copy of v carrying the texture coordinates (u, v).
func (v Vertex) WithUV(u, w float64) Vertex {
	v.TexCoords = mgl64.Vec2{u, w}
	v.HasTexCoords = true
	return v
}

// Face is an ordered list of vertex indices into the owning mesh.
// Winding order determines the outward normal sense.
type Face struct {
	Indices []int `json:"indices"`
}

// Triangle returns a three-index face.
func Triangle(a, b, c int) Face {
	return Face{Indices: []int{a, b, c}}
}

// Quad returns a four-index face.
func Quad(a, b, c, d int) Face {
	return Face{Indices: []int{a, b, c, d}}
}

// Reverse flips the winding order in place.
func (f Face) Reverse() {
	for i, j := 0, len(f.Indices)-1; i < j; i, j = i+1, j-1 {
		f.Indices[i], f.Indices[j] = f.Indices[j], f.Indices[i]
	}
}

// Triangulate fans the face around its first index. Faces with fewer
// than three indices produce no triangles.
func (f Face) Triangulate() [][3]int {
	if len(f.Indices) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(f.Indices)-2)
	v0 := f.Indices[0]
	for i := 1; i < len(f.Indices)-1; i++ {
		tris = append(tris, [3]int{v0, f.Indices[i], f.Indices[i+1]})
	}
	return tris
}

func (f Face) inRange(n int) bool {
	for _, idx := range f.Indices {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}
