package plugin

import (
	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/transform"
)

// TransformPlugin adapts a transform to the Plugin interface.
type TransformPlugin struct {
	name, desc string
	t          transform.Transform
}

// NewTransformPlugin wraps t under the given name.
func NewTransformPlugin(name, desc string, t transform.Transform) *TransformPlugin {
	return &TransformPlugin{name: name, desc: desc, t: t}
}

func (p *TransformPlugin) Name() string        { return p.name }
func (p *TransformPlugin) Description() string { return p.desc }

func (p *TransformPlugin) Process(m *geometry.Model) error {
	if err := p.t.Apply(m); err != nil {
		return geometry.Wrap(geometry.KindPlugin, p.name, err)
	}
	return nil
}

// CompositePlugin runs its children in order and stops at the first
// failure.
type CompositePlugin struct {
	name, desc string
	plugins    []Plugin
}

// NewCompositePlugin chains plugins under a single name.
func NewCompositePlugin(name, desc string, plugins ...Plugin) *CompositePlugin {
	return &CompositePlugin{name: name, desc: desc, plugins: plugins}
}

func (p *CompositePlugin) Name() string        { return p.name }
func (p *CompositePlugin) Description() string { return p.desc }

// Plugins returns the chained plugins.
func (p *CompositePlugin) Plugins() []Plugin { return p.plugins }

func (p *CompositePlugin) Process(m *geometry.Model) error {
	for _, child := range p.plugins {
		if err := child.Process(m); err != nil {
			return &geometry.Error{
				Kind: geometry.KindPlugin,
				Op:   p.name,
				Msg:  "step " + child.Name(),
				Err:  err,
			}
		}
	}
	return nil
}

// SmoothNormals recomputes vertex normals from the faces.
type SmoothNormals struct{}

func (SmoothNormals) Name() string        { return "smooth_normals" }
func (SmoothNormals) Description() string { return "Recompute vertex normals from face geometry" }

func (SmoothNormals) Process(m *geometry.Model) error {
	if m == nil || m.Mesh == nil {
		return geometry.PluginError("smooth_normals", "model has no mesh")
	}
	m.Mesh.ComputeNormals()
	return nil
}

// Center moves the model so its bounding box is centred on the origin.
type Center struct{}

func (Center) Name() string        { return "center" }
func (Center) Description() string { return "Move the bounding box centre to the origin" }

func (Center) Process(m *geometry.Model) error {
	if m == nil || m.Mesh == nil {
		return geometry.PluginError("center", "model has no mesh")
	}
	min, max := m.Mesh.Bounds()
	c := min.Add(max).Mul(0.5)
	if err := transform.NewTranslate(-c.X(), -c.Y(), -c.Z()).Apply(m); err != nil {
		return geometry.Wrap(geometry.KindPlugin, "center", err)
	}
	return nil
}
