package geometry

// Model owns exactly one Mesh plus a display name. Transforms operate on
// a Model's mesh.
type Model struct {
	Name string `json:"name"`
	Mesh *Mesh  `json:"mesh"`
}

// NewModel returns an empty model with the given name.
func NewModel(name string) *Model {
	return &Model{Name: name, Mesh: NewMesh()}
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	return &Model{Name: m.Name, Mesh: m.Mesh.Clone()}
}
