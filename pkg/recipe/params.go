package recipe

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/modelgen/pkg/geometry"
)

// Params holds the parameters of a primitive or step as decoded from YAML
// or the Lisp engine: numbers, strings, bools and lists of numbers.
type Params map[string]any

// normalize rewrites kebab-case keys to snake_case.
func (p Params) normalize() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[strings.ReplaceAll(k, "-", "_")] = v
	}
	return out
}

// Has reports whether key is set.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Keys returns the parameter names, sorted.
func (p Params) Keys() []string {
	return sortedKeys(map[string]any(p))
}

func paramError(key, format string, args ...any) error {
	return geometry.InvalidModelError("param "+key, format, args...)
}

// Float returns key as a finite number, or def when absent.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, paramError(key, "expected a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, paramError(key, "must be finite")
	}
	return f, nil
}

// Int returns key as an integer, or def when absent.
func (p Params) Int(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	f, err := p.Float(key, 0)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, paramError(key, "expected an integer, got %v", f)
	}
	return int(f), nil
}

// Bool returns key as a bool, or def when absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, paramError(key, "expected a bool, got %T", v)
	}
	return b, nil
}

// String returns key as a string, or def when absent.
func (p Params) String(key string, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", paramError(key, "expected a string, got %T", v)
	}
	return s, nil
}

// Floats returns key as a list of exactly n numbers, or nil when absent.
func (p Params) Floats(key string, n int) ([]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, nil
	}
	list, ok := toList(v)
	if !ok {
		return nil, paramError(key, "expected a list of %d numbers, got %T", n, v)
	}
	if len(list) != n {
		return nil, paramError(key, "expected %d numbers, got %d", n, len(list))
	}
	out := make([]float64, n)
	for i, item := range list {
		f, ok := toFloat(item)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, paramError(key, "element %d is not a finite number", i)
		}
		out[i] = f
	}
	return out, nil
}

// Vec3 returns key as a vector. A single number is broadcast to all three
// components.
func (p Params) Vec3(key string, def mgl64.Vec3) (mgl64.Vec3, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if _, scalar := toFloat(v); scalar {
		f, err := p.Float(key, 0)
		return mgl64.Vec3{f, f, f}, err
	}
	f, err := p.Floats(key, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{f[0], f[1], f[2]}, nil
}

// Axis returns key as a direction: one of "x", "y", "z" (optionally signed,
// as in "-z") or a vector.
func (p Params) Axis(key string, def mgl64.Vec3) (mgl64.Vec3, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if s, isString := v.(string); isString {
		a, ok := namedAxis(s)
		if !ok {
			return mgl64.Vec3{}, paramError(key, "unknown axis %q", s)
		}
		return a, nil
	}
	return p.Vec3(key, def)
}

func namedAxis(s string) (mgl64.Vec3, bool) {
	sign := 1.0
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	switch s {
	case "x":
		return mgl64.Vec3{sign, 0, 0}, true
	case "y":
		return mgl64.Vec3{0, sign, 0}, true
	case "z":
		return mgl64.Vec3{0, 0, sign}, true
	}
	return mgl64.Vec3{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
