package meshio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/modelgen/pkg/geometry"
)

// SVGOptions controls the 2D outline export.
type SVGOptions struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Margin  int     `yaml:"margin"`
	Stroke  string  `yaml:"stroke"`
	Fill    string  `yaml:"fill"`
	Opacity float64 `yaml:"opacity"`
}

// DefaultSVGOptions returns an 800x800 canvas with thin black outlines.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 800, Margin: 20, Stroke: "black", Fill: "none"}
}

// WriteSVG draws every face of m as a polygon in the XY plane, scaled to
// fit the canvas with Y pointing up. Faces are painted back to front by
// their mean Z. Typical use is after an orthographic or perspective
// projection.
func WriteSVG(w io.Writer, m *geometry.Model, opts SVGOptions) error {
	if err := check("svg", m); err != nil {
		return err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return geometry.ExportError("svg", "canvas must be positive, got %dx%d", opts.Width, opts.Height)
	}
	mesh := m.Mesh
	min, max := mesh.Bounds()
	avail := math.Min(float64(opts.Width-2*opts.Margin), float64(opts.Height-2*opts.Margin))
	extent := math.Max(max.X()-min.X(), max.Y()-min.Y())
	scale := 1.0
	if extent > 0 && avail > 0 {
		scale = avail / extent
	}
	project := func(x, y float64) (int, int) {
		px := float64(opts.Margin) + (x-min.X())*scale
		py := float64(opts.Height-opts.Margin) - (y-min.Y())*scale
		return int(math.Round(px)), int(math.Round(py))
	}

	order := make([]int, len(mesh.Faces))
	depth := make([]float64, len(mesh.Faces))
	for i, f := range mesh.Faces {
		order[i] = i
		for _, idx := range f.Indices {
			depth[i] += mesh.Vertices[idx].Position.Z()
		}
		if len(f.Indices) > 0 {
			depth[i] /= float64(len(f.Indices))
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return depth[order[a]] < depth[order[b]] })

	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", opts.Fill, opts.Stroke)
	if opts.Opacity > 0 {
		style += fmt.Sprintf(";fill-opacity:%s", ftoa(opts.Opacity))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(m.Name)
	for _, fi := range order {
		f := mesh.Faces[fi]
		xs := make([]int, len(f.Indices))
		ys := make([]int, len(f.Indices))
		for j, idx := range f.Indices {
			p := mesh.Vertices[idx].Position
			xs[j], ys[j] = project(p.X(), p.Y())
		}
		canvas.Polygon(xs, ys, style)
	}
	canvas.End()
	if ew.err != nil {
		return geometry.Wrap(geometry.KindIO, "svg", ew.err)
	}
	return nil
}

// SaveSVG writes the outline of m to path.
func SaveSVG(path string, m *geometry.Model, opts SVGOptions) error {
	return createFile("svg", path, func(w *bufio.Writer) error {
		return WriteSVG(w, m, opts)
	})
}

// Write makes errWriter an io.Writer for libraries that write directly.
func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
