package main

import (
	"fmt"
	"strconv"
	"strings"
)

// vecFlag parses comma separated numbers. When uniform is set a single
// number is broadcast to all three components.
type vecFlag struct {
	v       [3]float64
	set     bool
	uniform bool
}

func (f *vecFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v[0], f.v[1], f.v[2])
}

func (f *vecFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if f.uniform && len(parts) == 1 {
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", parts[0])
		}
		f.v = [3]float64{x, x, x}
		f.set = true
		return nil
	}
	if len(parts) != 3 {
		return fmt.Errorf("expected X,Y,Z, got %q", s)
	}
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", p)
		}
		f.v[i] = x
	}
	f.set = true
	return nil
}

// Get returns the vector as a recipe parameter list.
func (f *vecFlag) Get() any {
	return []any{f.v[0], f.v[1], f.v[2]}
}

// rotationFlag parses AXIS,DEGREES with AXIS one of x, y or z.
type rotationFlag struct {
	axis  string
	angle float64
	set   bool
}

func (f *rotationFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return fmt.Sprintf("%s,%g", f.axis, f.angle)
}

func (f *rotationFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected AXIS,DEGREES, got %q", s)
	}
	axis := strings.ToLower(strings.TrimSpace(parts[0]))
	switch axis {
	case "x", "y", "z":
	default:
		return fmt.Errorf("axis must be x, y or z, got %q", parts[0])
	}
	angle, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("invalid angle %q", parts[1])
	}
	f.axis, f.angle, f.set = axis, angle, true
	return nil
}
