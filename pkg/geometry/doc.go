// Package geometry defines the shared mesh data model for modelgen.
// A Model owns exactly one Mesh of vertices and faces. Primitive builders
// append to the mesh, transforms mutate it in place, and exporters read it.
package geometry
