package meshio

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chazu/modelgen/pkg/geometry"
)

// objNoMaterial is the usemtl name that switches back to faces without a
// material.
const objNoMaterial = "(null)"

// WriteOBJ writes m as Wavefront OBJ. When mtlLib is non-empty an mtllib
// line referencing it is emitted. Faces are written with 1-based v/vt/vn
// references (v//vn when the mesh has no texture coordinates) and usemtl
// switches whenever the face material changes.
func WriteOBJ(w io.Writer, m *geometry.Model, mtlLib string) error {
	if err := check("obj", m); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	mesh := m.Mesh

	ew.printf("# OBJ file generated by modelgen\n")
	ew.printf("# Model name: %s\n\n", m.Name)
	if mtlLib != "" {
		ew.printf("mtllib %s\n", mtlLib)
	}
	ew.printf("o %s\n", objName(m.Name))

	for _, v := range mesh.Vertices {
		ew.printf("v %s %s %s\n", ftoa(v.Position[0]), ftoa(v.Position[1]), ftoa(v.Position[2]))
	}
	uvs := mesh.HasTexCoords()
	if uvs {
		for _, v := range mesh.Vertices {
			ew.printf("vt %s %s\n", ftoa(v.TexCoords[0]), ftoa(v.TexCoords[1]))
		}
	}
	for _, v := range mesh.Vertices {
		ew.printf("vn %s %s %s\n", ftoa(v.Normal[0]), ftoa(v.Normal[1]), ftoa(v.Normal[2]))
	}

	current := ""
	for fi, f := range mesh.Faces {
		if mat := mesh.FaceMaterials[fi]; mat != current {
			if mat == "" {
				ew.printf("usemtl %s\n", objNoMaterial)
			} else {
				ew.printf("usemtl %s\n", mat)
			}
			current = mat
		}
		ew.printf("f")
		for _, idx := range f.Indices {
			n := idx + 1
			if uvs {
				ew.printf(" %d/%d/%d", n, n, n)
			} else {
				ew.printf(" %d//%d", n, n)
			}
		}
		ew.printf("\n")
	}
	if ew.err != nil {
		return geometry.Wrap(geometry.KindIO, "obj", ew.err)
	}
	return nil
}

// WriteMTL writes m's materials as a Wavefront material library, sorted by
// name.
func WriteMTL(w io.Writer, m *geometry.Model) error {
	if m == nil || m.Mesh == nil {
		return geometry.InvalidModelError("mtl", "model has no mesh")
	}
	ew := &errWriter{w: w}
	ew.printf("# MTL file generated by modelgen\n")
	ew.printf("# Model name: %s\n\n", m.Name)

	names := make([]string, 0, len(m.Mesh.Materials))
	for name := range m.Mesh.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mat := m.Mesh.Materials[name]
		ew.printf("newmtl %s\n", name)
		ew.printf("Ka %s %s %s\n", ftoa(mat.Ambient[0]), ftoa(mat.Ambient[1]), ftoa(mat.Ambient[2]))
		ew.printf("Kd %s %s %s\n", ftoa(mat.Diffuse[0]), ftoa(mat.Diffuse[1]), ftoa(mat.Diffuse[2]))
		ew.printf("Ks %s %s %s\n", ftoa(mat.Specular[0]), ftoa(mat.Specular[1]), ftoa(mat.Specular[2]))
		ew.printf("d %s\n", ftoa(mat.Diffuse[3]))
		ew.printf("Ns %s\n", ftoa(mat.Shininess))
		ew.printf("illum 2\n")
		for _, slot := range []struct {
			tex geometry.TextureType
			key string
		}{
			{geometry.TextureDiffuse, "map_Kd"},
			{geometry.TextureNormal, "map_Bump"},
			{geometry.TextureSpecular, "map_Ks"},
		} {
			if path, ok := mat.Textures[slot.tex]; ok {
				ew.printf("%s %s\n", slot.key, path)
			}
		}
		ew.printf("\n")
	}
	if ew.err != nil {
		return geometry.Wrap(geometry.KindIO, "mtl", ew.err)
	}
	return nil
}

// SaveOBJ writes m to path. When the mesh has materials a sibling .mtl
// file with the same stem is written and referenced.
func SaveOBJ(path string, m *geometry.Model) error {
	if err := check("obj", m); err != nil {
		return err
	}
	mtlLib := ""
	if len(m.Mesh.Materials) > 0 {
		mtlLib = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mtl"
		mtlPath := filepath.Join(filepath.Dir(path), mtlLib)
		if err := createFile("mtl", mtlPath, func(w *bufio.Writer) error {
			return WriteMTL(w, m)
		}); err != nil {
			return err
		}
	}
	return createFile("obj", path, func(w *bufio.Writer) error {
		return WriteOBJ(w, m, mtlLib)
	})
}

// objName makes a model name safe for a single-token OBJ statement.
func objName(name string) string {
	if name == "" {
		return "model"
	}
	return strings.Join(strings.Fields(name), "_")
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// errWriter remembers the first write error so formatting code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
