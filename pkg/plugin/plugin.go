// Package plugin provides named, reusable model processors and a registry
// for looking them up by name.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/transform"
)

// Plugin processes a model in place.
type Plugin interface {
	Name() string
	Description() string
	Process(m *geometry.Model) error
}

// Registry maps plugin names to plugins. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds p. A second plugin with the same name is rejected.
func (r *Registry) Register(p Plugin) error {
	name := p.Name()
	if name == "" {
		return geometry.PluginError("register", "plugin has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[name]; ok {
		return geometry.PluginError("register", "plugin %q already registered", name)
	}
	r.plugins[name] = p
	return nil
}

// Get returns the plugin with the given name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// MustGet returns the plugin with the given name, or panics.
func (r *Registry) MustGet(name string) Plugin {
	p, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("plugin: no plugin named %q", name))
	}
	return p
}

// List returns all registered plugins sorted by name.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Process runs the named plugin on m.
func (r *Registry) Process(name string, m *geometry.Model) error {
	p, ok := r.Get(name)
	if !ok {
		return geometry.PluginError("process", "unknown plugin %q", name)
	}
	return p.Process(m)
}

// Default returns a registry preloaded with the built-in plugins.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{
		SmoothNormals{},
		NewTransformPlugin("flip_x", "Mirror across the YZ plane", transform.MirrorX()),
		NewTransformPlugin("flip_y", "Mirror across the XZ plane", transform.MirrorY()),
		NewTransformPlugin("flip_z", "Mirror across the XY plane", transform.MirrorZ()),
		Center{},
	} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}
