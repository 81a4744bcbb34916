package meshio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// objCorner is one v/vt/vn triple of a face, with 0-based indices and -1
// for an absent component.
type objCorner struct {
	v, vt, vn int
}

// ReadOBJ parses a Wavefront OBJ stream. Positions, texture coordinates
// and normals are combined into one vertex per distinct v/vt/vn triple.
// Face references may be negative (relative to the end of the list).
// When faces reference no normals, normals are computed from the faces.
// Material libraries are not followed; usemtl names are registered with
// default materials so the result validates.
func ReadOBJ(r io.Reader) (*geometry.Model, error) {
	var (
		positions []mgl64.Vec3
		texCoords []mgl64.Vec2
		normals   []mgl64.Vec3
		material  string
		anyNormal bool
	)
	m := geometry.NewModel("")
	welded := make(map[objCorner]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, geometry.ImportError("obj", "line %d: %v", line, err)
			}
			positions = append(positions, mgl64.Vec3{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, geometry.ImportError("obj", "line %d: %v", line, err)
			}
			texCoords = append(texCoords, mgl64.Vec2{p[0], p[1]})
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, geometry.ImportError("obj", "line %d: %v", line, err)
			}
			normals = append(normals, mgl64.Vec3{p[0], p[1], p[2]})
		case "o", "g":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}
		case "usemtl":
			if len(fields) < 2 {
				return nil, geometry.ImportError("obj", "line %d: usemtl without a name", line)
			}
			material = fields[1]
			if material == objNoMaterial {
				material = ""
				break
			}
			if _, ok := m.Mesh.Materials[material]; !ok {
				m.Mesh.AddMaterial(geometry.NewMaterial(material))
			}
		case "f":
			if len(fields) < 4 {
				return nil, geometry.ImportError("obj", "line %d: face needs at least 3 vertices", line)
			}
			face := geometry.Face{Indices: make([]int, 0, len(fields)-1)}
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, geometry.ImportError("obj", "line %d: %v", line, err)
				}
				idx, ok := welded[c]
				if !ok {
					v := geometry.Vertex{Position: positions[c.v]}
					if c.vt >= 0 {
						v = v.WithUV(texCoords[c.vt].X(), texCoords[c.vt].Y())
					}
					if c.vn >= 0 {
						v.Normal = normals[c.vn]
						anyNormal = true
					}
					idx = m.Mesh.AddVertex(v)
					welded[c] = idx
				}
				face.Indices = append(face.Indices, idx)
			}
			m.Mesh.AddFace(face, material)
		default:
			// mtllib, s and other statements carry nothing the mesh stores.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, geometry.Wrap(geometry.KindIO, "obj", err)
	}
	if !anyNormal {
		m.Mesh.ComputeNormals()
	}
	if m.Name == "" {
		m.Name = "model"
	}
	return m, nil
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(path string) (*geometry.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindIO, "obj", err)
	}
	defer f.Close()
	return ReadOBJ(f)
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, strconv.ErrSyntax
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func parseCorner(ref string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objCorner{}, geometry.ImportError("obj", "bad face reference %q", ref)
	}
	c := objCorner{vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], nv); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return c, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative OBJ reference to a 0-based
// index into a list of n elements.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, geometry.ImportError("obj", "bad index %q", s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, geometry.ImportError("obj", "index %d out of range (have %d)", i, n)
	}
}
