package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/recipe"
)

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVec3 carries a vector between builtins.
type sexpVec3 struct {
	vec mgl64.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X(), v.vec.Y(), v.vec.Z())
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
// A keyword's value may itself be a keyword (:axis :y). A keyword with
// nothing after it is a flag and gets SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string or keyword name from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toParam converts a Sexp into a recipe parameter value. Keywords become
// their names, vectors and numeric lists become []any of float64, and a
// bare flag keyword becomes true.
func toParam(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return strings.TrimPrefix(v.S, kwPrefix), nil
	case *sexpVec3:
		return []any{v.vec.X(), v.vec.Y(), v.vec.Z()}, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(s)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i, item := range items {
			f, err := toFloat64(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value %T (%s)", s, s.SexpString(nil))
}

// toParams converts keyword arguments to recipe parameters. Keyword names
// are snake_cased to match YAML recipes.
func toParams(fn string, pa kwArgs) (recipe.Params, error) {
	params := make(recipe.Params, len(pa.kw))
	for _, k := range pa.order {
		v, err := toParam(pa.kw[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, k, err)
		}
		params[strings.ReplaceAll(k, "-", "_")] = v
	}
	return params, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// lispName maps a recipe name to the identifier preprocessSource produces.
func lispName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// registerBuiltins installs the modelgen DSL into a zygomys environment.
// Builtins append to r as the program runs: one primitive, then steps in
// call order, then outputs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, r *recipe.Recipe) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v mgl64.Vec3
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (name "tower")
	// -----------------------------------------------------------------------
	env.AddFunction("name", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("name requires exactly 1 argument")
		}
		s, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		r.Name = s
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (cube :size 2 :center (vec3 0 1 0)), (sdf-box :size (vec3 2 1 1)), ...
	// (load-obj "part.obj")
	// -----------------------------------------------------------------------
	for _, kind := range recipe.PrimitiveKinds() {
		kind := kind
		fn := lispName(kind)
		if kind == "obj" {
			fn = "load_obj"
		}
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if r.Primitive.Kind != "" {
				return zygo.SexpNull, fmt.Errorf("%s: primitive already set to %s", name, r.Primitive.Kind)
			}
			pa := parseArgs(args)
			params, err := toParams(name, pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			if kind == "obj" && len(pa.positional) == 1 {
				path, err := toString(pa.positional[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: path: %w", name, err)
				}
				params["path"] = path
			} else if len(pa.positional) > 0 {
				return zygo.SexpNull, fmt.Errorf("%s: unexpected positional argument %s", name, pa.positional[0].SexpString(nil))
			}
			r.Primitive = recipe.Primitive{Kind: kind, Params: params}
			return zygo.SexpNull, nil
		})
	}

	// -----------------------------------------------------------------------
	// (scale :factors (vec3 1 2 1)), (twist :axis :y :angle 30), ...
	// (plugin "center")
	// -----------------------------------------------------------------------
	for _, op := range recipe.Ops() {
		op := op
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			params, err := toParams(name, pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			if op == "plugin" && len(pa.positional) == 1 {
				s, err := toString(pa.positional[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("plugin: name: %w", err)
				}
				params["name"] = s
			} else if len(pa.positional) > 0 {
				return zygo.SexpNull, fmt.Errorf("%s: unexpected positional argument %s", name, pa.positional[0].SexpString(nil))
			}
			r.Add(op, params)
			return zygo.SexpNull, nil
		})
	}

	// -----------------------------------------------------------------------
	// (output "tower.obj" "tower.stl")
	// -----------------------------------------------------------------------
	env.AddFunction("output", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("output requires at least one path")
		}
		for i, a := range args {
			s, err := toString(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("output: path %d: %w", i, err)
			}
			r.Outputs = append(r.Outputs, s)
		}
		return zygo.SexpNull, nil
	})
}
