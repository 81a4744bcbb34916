package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding blocks export or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks export
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationIssue describes a single validation finding. Face and Vertex are
// -1 when the finding is not tied to a specific element.
type ValidationIssue struct {
	Face     int
	Vertex   int
	Message  string
	Severity ValidationSeverity
}

func (v ValidationIssue) Error() string {
	switch {
	case v.Face >= 0:
		return fmt.Sprintf("[%s] face %d: %s", v.Severity, v.Face, v.Message)
	case v.Vertex >= 0:
		return fmt.Sprintf("[%s] vertex %d: %s", v.Severity, v.Vertex, v.Message)
	default:
		return fmt.Sprintf("[%s] %s", v.Severity, v.Message)
	}
}

// Inspect runs every mesh check and returns all findings. It never mutates
// the mesh.
func (m *Mesh) Inspect() []ValidationIssue {
	var issues []ValidationIssue
	issues = append(issues, m.inspectFaces()...)
	issues = append(issues, m.inspectFaceMaterials()...)
	issues = append(issues, m.inspectVertices()...)
	return issues
}

// Validate returns an InvalidModel error joining every blocking finding, or
// nil when the mesh is safe to hand to an exporter. Warnings are ignored.
func (m *Mesh) Validate() error {
	var errs []error
	for _, issue := range m.Inspect() {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return Wrap(KindInvalidModel, "validate", errors.Join(errs...))
}

// inspectFaces checks index counts and bounds.
func (m *Mesh) inspectFaces() []ValidationIssue {
	var issues []ValidationIssue
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		if len(f.Indices) < 3 {
			issues = append(issues, ValidationIssue{
				Face:     fi,
				Vertex:   -1,
				Message:  fmt.Sprintf("has %d indices, need at least 3", len(f.Indices)),
				Severity: SeverityError,
			})
			continue
		}
		for _, idx := range f.Indices {
			if idx < 0 || idx >= n {
				issues = append(issues, ValidationIssue{
					Face:     fi,
					Vertex:   -1,
					Message:  fmt.Sprintf("index %d out of range [0,%d)", idx, n),
					Severity: SeverityError,
				})
			}
		}
	}
	return issues
}

// inspectFaceMaterials checks the per-face material array stays aligned and
// only names registered materials.
func (m *Mesh) inspectFaceMaterials() []ValidationIssue {
	var issues []ValidationIssue
	if len(m.FaceMaterials) != len(m.Faces) {
		issues = append(issues, ValidationIssue{
			Face:     -1,
			Vertex:   -1,
			Message:  fmt.Sprintf("%d face materials for %d faces", len(m.FaceMaterials), len(m.Faces)),
			Severity: SeverityError,
		})
		return issues
	}
	for fi, name := range m.FaceMaterials {
		if name == "" {
			continue
		}
		if _, ok := m.Materials[name]; !ok {
			issues = append(issues, ValidationIssue{
				Face:     fi,
				Vertex:   -1,
				Message:  fmt.Sprintf("references unknown material %q", name),
				Severity: SeverityError,
			})
		}
	}
	return issues
}

// inspectVertices rejects non-finite positions and warns about zero normals.
func (m *Mesh) inspectVertices() []ValidationIssue {
	var issues []ValidationIssue
	for vi, v := range m.Vertices {
		if !finite(v.Position) {
			issues = append(issues, ValidationIssue{
				Face:     -1,
				Vertex:   vi,
				Message:  fmt.Sprintf("non-finite position %v", v.Position),
				Severity: SeverityError,
			})
		}
		if v.Normal.Len() == 0 {
			issues = append(issues, ValidationIssue{
				Face:     -1,
				Vertex:   vi,
				Message:  "zero normal",
				Severity: SeverityWarning,
			})
		}
	}
	return issues
}

func finite(v [3]float64) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
