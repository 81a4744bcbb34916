// modelgen builds 3D models from primitives, recipes and Lisp scripts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/chazu/modelgen/internal/config"
	"github.com/chazu/modelgen/internal/logger"
	sdfxkernel "github.com/chazu/modelgen/pkg/kernel/sdfx"
	"github.com/chazu/modelgen/pkg/plugin"
	"github.com/chazu/modelgen/pkg/recipe"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `modelgen - 3D model generator

Usage:
  modelgen <command> [options]

Commands:
  cube [options] OUTPUT       Generate a cube
  sphere [options] OUTPUT     Generate a sphere
  cylinder [options] OUTPUT   Generate a cylinder
  run FILE                    Build a recipe (.yaml, .yml) or script (.lisp, .zy)
  plugins                     List registered plugins

Shape options:
  --size SIZE          cube edge length
  --radius RADIUS      sphere or cylinder radius
  --segments N         sphere or cylinder segments
  --rings N            sphere rings
  --height HEIGHT      cylinder height
  --no-caps            cylinder without end caps
  --center X,Y,Z       center position
  --scale X,Y,Z        scale factors (or a single uniform factor)
  --rotate AXIS,DEG    rotation, e.g. y,45
  --translate X,Y,Z    translation

Global options:
  --config FILE        configuration file
  --log-level LEVEL    debug, info, warn or error
  --log-file FILE      also log to a rotating file
  --output-dir DIR     directory for relative recipe outputs
  --mesh-cells N       marching cubes resolution for sdf primitives

Output formats are chosen by extension: .obj .stl .gltf .3mf .svg .dxf

Examples:
  modelgen cube --size 2 --rotate y,45 cube.obj
  modelgen cylinder --radius 0.5 --no-caps tube.stl
  modelgen run examples/tower.yaml`)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    logger.New("info", logger.FileConfig{}, stderr),
	}

	command := args[0]
	var err error
	switch command {
	case "cube", "sphere", "cylinder":
		err = a.cmdShape(command, args[1:])
	case "run":
		err = a.cmdRun(args[1:])
	case "plugins":
		err = a.cmdPlugins(args[1:])
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
	defer logger.Sync(a.log)

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		a.log.Error("command failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

// app carries the state shared by every command once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    *zap.Logger
}

// globalFlags are accepted by every command.
type globalFlags struct {
	configPath string
	overrides  config.Overrides
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "configuration file")
	fs.StringVar(&g.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&g.overrides.LogFile, "log-file", "", "log file path")
	fs.StringVar(&g.overrides.OutputDir, "output-dir", "", "directory for relative recipe outputs")
	fs.IntVar(&g.overrides.MeshCells, "mesh-cells", 0, "marching cubes resolution")
}

// setup loads the configuration and replaces the bootstrap logger.
func (a *app) setup(g globalFlags) error {
	cfg, err := config.Load(g.configPath, g.overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.File, a.stderr)
	a.log.Debug("configuration loaded",
		zap.String("path", g.configPath),
		zap.Int("mesh_cells", cfg.Kernel.MeshCells),
		zap.Duration("engine_timeout", cfg.Engine.Timeout))
	return nil
}

func (a *app) runner() *recipe.Runner {
	rn := recipe.NewRunner(plugin.Default(), sdfxkernel.New(a.cfg.Kernel.MeshCells), a.log)
	rn.Primitives = a.cfg.Primitives
	return rn
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

// parseInterspersed parses fs allowing positional arguments between flags
// and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
