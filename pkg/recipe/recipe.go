// Package recipe describes a model as data: one primitive, an ordered list
// of transform steps and the files to write. Recipes are loaded from YAML
// or produced by the Lisp engine, and executed by a Runner.
package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/meshio"
)

// Primitive selects the starting geometry. Kind picks the generator and the
// remaining keys are its parameters.
type Primitive struct {
	Kind   string `yaml:"kind" json:"kind"`
	Params Params `yaml:",inline" json:"params,omitempty"`
}

// Step is one operation applied to the model. Op names the operation and
// the remaining keys are its parameters.
type Step struct {
	Op     string `yaml:"op" json:"op"`
	Params Params `yaml:",inline" json:"params,omitempty"`
}

// Recipe is a complete model description.
type Recipe struct {
	Name      string    `yaml:"name" json:"name"`
	Primitive Primitive `yaml:"primitive" json:"primitive"`
	Steps     []Step    `yaml:"steps,omitempty" json:"steps,omitempty"`
	Outputs   []string  `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// Add appends a step and returns the recipe for chaining.
func (r *Recipe) Add(op string, params Params) *Recipe {
	r.Steps = append(r.Steps, Step{Op: op, Params: params})
	return r
}

// Parse decodes a YAML recipe. Unknown top-level keys are rejected.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, geometry.Wrap(geometry.KindImport, "recipe", err)
	}
	r.Primitive.Params = r.Primitive.Params.normalize()
	for i := range r.Steps {
		r.Steps[i].Params = r.Steps[i].Params.normalize()
	}
	return &r, nil
}

// Load reads and parses a YAML recipe file. A recipe without a name takes
// the file's stem.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindIO, "recipe", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("recipe: %s: %w", path, err)
	}
	if r.Name == "" {
		base := filepath.Base(path)
		r.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return r, nil
}

// Marshal encodes r as YAML.
func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// ValidationError describes one problem found in a recipe. Step is -1 for
// problems outside the step list.
type ValidationError struct {
	Step    int
	Message string
}

func (e ValidationError) Error() string {
	if e.Step < 0 {
		return e.Message
	}
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

// Validate checks the structure of r without building anything: the
// primitive kind and every op must be known and outputs must have a
// supported extension. Parameter values are checked when the step runs.
func Validate(r *Recipe) []ValidationError {
	if r == nil {
		return []ValidationError{{Step: -1, Message: "recipe is nil"}}
	}
	var errs []ValidationError
	if r.Primitive.Kind == "" {
		errs = append(errs, ValidationError{Step: -1, Message: "primitive kind is required"})
	} else if _, ok := primitiveBuilders[r.Primitive.Kind]; !ok {
		errs = append(errs, ValidationError{Step: -1, Message: fmt.Sprintf("unknown primitive kind %q", r.Primitive.Kind)})
	}
	for i, s := range r.Steps {
		if s.Op == "" {
			errs = append(errs, ValidationError{Step: i, Message: "op is required"})
			continue
		}
		if _, ok := ops[s.Op]; !ok {
			errs = append(errs, ValidationError{Step: i, Message: fmt.Sprintf("unknown op %q", s.Op)})
		}
	}
	for _, out := range r.Outputs {
		if _, ok := meshio.FormatFromPath(out); !ok {
			errs = append(errs, ValidationError{Step: -1, Message: fmt.Sprintf("output %q has an unsupported extension", out)})
		}
	}
	return errs
}

// Ops returns the names of all step operations, sorted.
func Ops() []string {
	return sortedKeys(ops)
}

// PrimitiveKinds returns the names of all primitive kinds, sorted.
func PrimitiveKinds() []string {
	return sortedKeys(primitiveBuilders)
}
