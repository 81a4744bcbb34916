// Package transform implements in-place geometric operators over a
// geometry.Model. Every transform preserves vertex and face counts; only
// positions, normals and (for reflections) face winding change.
package transform

import (
	"fmt"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Transform mutates a model's mesh in place.
type Transform interface {
	Apply(m *geometry.Model) error
}

// Func adapts an ordinary function to the Transform interface.
type Func func(m *geometry.Model) error

// Apply calls f(m).
func (f Func) Apply(m *geometry.Model) error {
	return f(m)
}

// Sequence applies its transforms in order and halts at the first failure.
// Steps already applied are not rolled back.
type Sequence []Transform

// Compile-time check that Sequence implements Transform.
var _ Transform = Sequence(nil)

// Then returns a new sequence with t appended.
func (s Sequence) Then(t Transform) Sequence {
	out := make(Sequence, 0, len(s)+1)
	out = append(out, s...)
	return append(out, t)
}

// Apply runs every step against m.
func (s Sequence) Apply(m *geometry.Model) error {
	for i, t := range s {
		if err := t.Apply(m); err != nil {
			return fmt.Errorf("transform: step %d: %w", i, err)
		}
	}
	return nil
}

// Apply runs transforms against m in order. It is shorthand for
// Sequence(transforms).Apply(m).
func Apply(m *geometry.Model, transforms ...Transform) error {
	return Sequence(transforms).Apply(m)
}

// mesh returns the model's mesh, failing when there is none.
func mesh(op string, m *geometry.Model) (*geometry.Mesh, error) {
	if m == nil || m.Mesh == nil {
		return nil, geometry.TransformError(op, "model has no mesh")
	}
	return m.Mesh, nil
}
