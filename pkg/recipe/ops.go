package recipe

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/transform"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
	ones  = mgl64.Vec3{1, 1, 1}
)

// opFunc turns a step's parameters into a transform.
type opFunc func(rn *Runner, p Params) (transform.Transform, error)

// ops maps step names to their constructors. Angles are in degrees.
var ops = map[string]opFunc{
	"scale":        scaleOp,
	"translate":    translateOp,
	"rotate":       rotateOp,
	"matrix":       matrixOp,
	"mirror":       mirrorOp,
	"quaternion":   quaternionOp,
	"bend":         bendOp,
	"twist":        twistOp,
	"taper":        taperOp,
	"perspective":  perspectiveOp,
	"orthographic": orthographicOp,
	"cylindrical":  cylindricalOp,
	"plugin":       pluginOp,
}

// scale: factors (vec3 or number), or uniform.
func scaleOp(_ *Runner, p Params) (transform.Transform, error) {
	if p.Has("uniform") {
		s, err := p.Float("uniform", 1)
		if err != nil {
			return nil, err
		}
		return transform.UniformScale(s), nil
	}
	f, err := p.Vec3("factors", ones)
	if err != nil {
		return nil, err
	}
	return transform.NewScale(f.X(), f.Y(), f.Z()), nil
}

// translate: offset.
func translateOp(_ *Runner, p Params) (transform.Transform, error) {
	o, err := p.Vec3("offset", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	return transform.NewTranslate(o.X(), o.Y(), o.Z()), nil
}

// rotate: axis, angle.
func rotateOp(_ *Runner, p Params) (transform.Transform, error) {
	axis, err := p.Axis("axis", axisZ)
	if err != nil {
		return nil, err
	}
	angle, err := p.Float("angle", 0)
	if err != nil {
		return nil, err
	}
	return transform.NewRotate(axis, angle), nil
}

// matrix: rows, 16 numbers in row-major order.
func matrixOp(_ *Runner, p Params) (transform.Transform, error) {
	rows, err := p.Floats("rows", 16)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, paramError("rows", "is required")
	}
	var v [16]float64
	copy(v[:], rows)
	return transform.MatrixFromRows(v), nil
}

// mirror: x, y, z flags.
func mirrorOp(_ *Runner, p Params) (transform.Transform, error) {
	var flags [3]bool
	for i, key := range []string{"x", "y", "z"} {
		b, err := p.Bool(key, false)
		if err != nil {
			return nil, err
		}
		flags[i] = b
	}
	return transform.NewMirror(flags[0], flags[1], flags[2]), nil
}

// quaternion: one of q [w x y z], euler [roll pitch yaw], from/to vectors,
// or axis and angle.
func quaternionOp(_ *Runner, p Params) (transform.Transform, error) {
	switch {
	case p.Has("q"):
		q, err := p.Floats("q", 4)
		if err != nil {
			return nil, err
		}
		return transform.NewQuaternion(mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}), nil
	case p.Has("euler"):
		e, err := p.Floats("euler", 3)
		if err != nil {
			return nil, err
		}
		return transform.QuaternionFromEuler(e[0], e[1], e[2]), nil
	case p.Has("from") || p.Has("to"):
		from, err := p.Vec3("from", axisZ)
		if err != nil {
			return nil, err
		}
		to, err := p.Vec3("to", axisZ)
		if err != nil {
			return nil, err
		}
		return transform.QuaternionFromDirections(from, to), nil
	default:
		axis, err := p.Axis("axis", axisZ)
		if err != nil {
			return nil, err
		}
		angle, err := p.Float("angle", 0)
		if err != nil {
			return nil, err
		}
		return transform.QuaternionFromAxisAngle(axis, angle), nil
	}
}

// bend: axis, direction, angle, start, end.
func bendOp(_ *Runner, p Params) (transform.Transform, error) {
	axis, err := p.Axis("axis", axisX)
	if err != nil {
		return nil, err
	}
	dir, err := p.Axis("direction", axisY)
	if err != nil {
		return nil, err
	}
	nums, err := floats(p, []string{"angle", "start", "end"}, []float64{0, 0, 1})
	if err != nil {
		return nil, err
	}
	return transform.NewBend(axis, nums[0], nums[1], nums[2], dir), nil
}

// twist: axis, angle (degrees per unit length), center.
func twistOp(_ *Runner, p Params) (transform.Transform, error) {
	axis, err := p.Axis("axis", axisY)
	if err != nil {
		return nil, err
	}
	angle, err := p.Float("angle", 0)
	if err != nil {
		return nil, err
	}
	center, err := p.Vec3("center", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	return transform.NewTwist(axis, angle, center), nil
}

// taper: axis, start_scale, end_scale, min, max.
func taperOp(_ *Runner, p Params) (transform.Transform, error) {
	axis, err := p.Axis("axis", axisY)
	if err != nil {
		return nil, err
	}
	start, err := p.Vec3("start_scale", ones)
	if err != nil {
		return nil, err
	}
	end, err := p.Vec3("end_scale", ones)
	if err != nil {
		return nil, err
	}
	nums, err := floats(p, []string{"min", "max"}, []float64{-1, 1})
	if err != nil {
		return nil, err
	}
	return transform.NewTaper(axis, start, end, nums[0], nums[1]), nil
}

// perspective: eye, focal_length, preserve_z.
func perspectiveOp(_ *Runner, p Params) (transform.Transform, error) {
	eye, err := p.Vec3("eye", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	f, err := p.Float("focal_length", 1)
	if err != nil {
		return nil, err
	}
	keep, err := p.Bool("preserve_z", false)
	if err != nil {
		return nil, err
	}
	return transform.NewPerspective(eye, f, keep), nil
}

// orthographic: direction, preserve_z.
func orthographicOp(_ *Runner, p Params) (transform.Transform, error) {
	dir, err := p.Axis("direction", axisZ)
	if err != nil {
		return nil, err
	}
	keep, err := p.Bool("preserve_z", false)
	if err != nil {
		return nil, err
	}
	return transform.NewOrthographic(dir, keep), nil
}

// cylindrical: axis, center, radius, preserve_radius.
func cylindricalOp(_ *Runner, p Params) (transform.Transform, error) {
	axis, err := p.Axis("axis", axisY)
	if err != nil {
		return nil, err
	}
	center, err := p.Vec3("center", mgl64.Vec3{})
	if err != nil {
		return nil, err
	}
	r, err := p.Float("radius", 1)
	if err != nil {
		return nil, err
	}
	keep, err := p.Bool("preserve_radius", false)
	if err != nil {
		return nil, err
	}
	return transform.NewCylindrical(axis, center, r, keep), nil
}

// plugin: name.
func pluginOp(rn *Runner, p Params) (transform.Transform, error) {
	name, err := p.String("name", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, paramError("name", "is required")
	}
	if _, ok := rn.registry().Get(name); !ok {
		return nil, geometry.PluginError("plugin", "unknown plugin %q", name)
	}
	return transform.Func(func(m *geometry.Model) error {
		return rn.registry().Process(name, m)
	}), nil
}

func floats(p Params, keys []string, defs []float64) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		f, err := p.Float(k, defs[i])
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
