package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chazu/modelgen/pkg/engine"
	"github.com/chazu/modelgen/pkg/geometry"
	"github.com/chazu/modelgen/pkg/plugin"
	"github.com/chazu/modelgen/pkg/recipe"
)

// shapeFlags lists the generator flags each shape accepts.
var shapeFlags = map[string][]string{
	"cube":     {"size"},
	"sphere":   {"radius", "segments", "rings"},
	"cylinder": {"radius", "height", "segments", "no-caps"},
}

func (a *app) cmdShape(kind string, args []string) error {
	fs := newFlagSet(kind, a.stderr)
	var g globalFlags
	g.register(fs)

	for _, name := range shapeFlags[kind] {
		switch name {
		case "size", "radius", "height":
			fs.Float64(name, 0, name)
		case "segments", "rings":
			fs.Int(name, 0, "number of "+name)
		case "no-caps":
			fs.Bool(name, false, "remove end caps")
		}
	}
	center := &vecFlag{}
	scale := &vecFlag{uniform: true}
	translate := &vecFlag{}
	rotate := &rotationFlag{}
	fs.Var(center, "center", "center position X,Y,Z")
	fs.Var(scale, "scale", "scale factors X,Y,Z or a single factor")
	fs.Var(rotate, "rotate", "rotation AXIS,DEGREES")
	fs.Var(translate, "translate", "translation X,Y,Z")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: modelgen %s [options] OUTPUT", kind)
	}
	if err := a.setup(g); err != nil {
		return err
	}

	params := recipe.Params{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size", "radius", "height", "segments", "rings":
			params[f.Name] = f.Value.(flag.Getter).Get()
		case "no-caps":
			params["caps"] = !f.Value.(flag.Getter).Get().(bool)
		case "center":
			params["center"] = center.Get()
		}
	})

	r := &recipe.Recipe{
		Primitive: recipe.Primitive{Kind: kind, Params: params},
		Outputs:   []string{a.cfg.OutputPath(positional[0])},
	}
	if scale.set {
		r.Add("scale", recipe.Params{"factors": scale.Get()})
	}
	if rotate.set {
		r.Add("rotate", recipe.Params{"axis": rotate.axis, "angle": rotate.angle})
	}
	if translate.set {
		r.Add("translate", recipe.Params{"offset": translate.Get()})
	}

	_, written, err := a.runner().Run(r)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(a.stdout, "Model exported to %s\n", path)
	}
	return nil
}

func (a *app) cmdRun(args []string) error {
	fs := newFlagSet("run", a.stderr)
	var g globalFlags
	g.register(fs)
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return errors.New("usage: modelgen run FILE")
	}
	if err := a.setup(g); err != nil {
		return err
	}

	path := positional[0]
	r, err := a.loadRecipe(path)
	if err != nil {
		return err
	}
	if len(r.Outputs) == 0 {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		r.Outputs = []string{a.cfg.OutputPath(stem)}
		a.log.Info("recipe has no outputs, using default", zap.String("output", r.Outputs[0]))
	}

	rn := a.runner()
	rn.OutputDir = a.cfg.Export.OutputDir
	_, written, err := rn.Run(r)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintf(a.stdout, "Model exported to %s\n", p)
	}
	return nil
}

// loadRecipe reads a YAML recipe or evaluates a Lisp script.
func (a *app) loadRecipe(path string) (*recipe.Recipe, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return recipe.Load(path)
	case ".lisp", ".zy":
	default:
		return nil, geometry.ImportError("run", "unsupported file type %q", filepath.Ext(path))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, geometry.Wrap(geometry.KindIO, "run", err)
	}
	eng := engine.NewEngine()
	eng.Timeout = a.cfg.Engine.Timeout
	res, err := eng.EvaluateResult(string(src))
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		a.log.Warn("script warning", zap.String("file", path), zap.String("warning", w.String()))
	}
	if len(res.Errors) > 0 {
		errs := make([]error, len(res.Errors))
		for i, e := range res.Errors {
			a.log.Error("script error", zap.String("file", path), zap.Int("line", e.Line), zap.String("message", e.Message))
			errs[i] = e
		}
		return nil, geometry.Wrap(geometry.KindImport, "run "+path, errors.Join(errs...))
	}
	if res.Recipe.Name == "" {
		res.Recipe.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return res.Recipe, nil
}

func (a *app) cmdPlugins(args []string) error {
	fs := newFlagSet("plugins", a.stderr)
	var g globalFlags
	g.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.setup(g); err != nil {
		return err
	}
	for _, p := range plugin.Default().List() {
		fmt.Fprintf(a.stdout, "%-16s %s\n", p.Name(), p.Description())
	}
	return nil
}
