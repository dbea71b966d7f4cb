package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/notargets/gridgeom/config"
	"github.com/notargets/gridgeom/geometry"
	"github.com/notargets/gridgeom/grid"
)

// options are the flags shared by compute and check
type options struct {
	configPath    string
	meshPath      string
	workers       int
	partitionSize int
	strategy      string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "gridgeom",
		Short: "Face and cell geometry of unstructured grids",
		Long: `gridgeom computes face areas, normals and centroids and cell volumes
and centroids for polyhedral meshes read from Gambit (.neu), Gmsh (.msh)
or SU2 (.su2) files.

Examples:
  gridgeom compute --mesh wing.neu --workers 8 -o wing.yaml
  gridgeom check --mesh wing.neu --tolerance 1e-12`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&opts.meshPath, "mesh", "m", "", "mesh file to read")
	pf.IntVarP(&opts.workers, "workers", "w", 0, "goroutines per pass (overrides config)")
	pf.IntVar(&opts.partitionSize, "partition-size", 0, "elements per work partition (overrides config)")
	pf.StringVar(&opts.strategy, "strategy", "", "partition strategy: block, roundrobin or weighted (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(newComputeCmd(opts), newCheckCmd(opts), newVersionCmd())
	return root
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flags the user set
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("partition-size") {
		cfg.PartitionSize = o.partitionSize
	}
	if flags.Changed("strategy") {
		cfg.Strategy = o.strategy
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// run is the pipeline shared by compute and check: load the mesh, run both
// geometry passes and collect warnings
type run struct {
	cfg      *config.Config
	logger   *zap.Logger
	grid     *grid.Grid
	geo      *grid.Geometry
	warnings geometry.Collector
}

func (o *options) execute(cmd *cobra.Command, cfg *config.Config) (*run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.meshPath == "" {
		return nil, fmt.Errorf("--mesh is required")
	}
	strategy, err := cfg.PartitionStrategy()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	r := &run{cfg: cfg, logger: logger}
	r.grid, err = grid.LoadMesh(o.meshPath)
	if err != nil {
		return nil, err
	}
	logger.Info("mesh loaded",
		zap.String("path", o.meshPath),
		zap.Int("nodes", r.grid.NumNodes()),
		zap.Int("faces", r.grid.NumFaces()),
		zap.Int("cells", r.grid.NumCells()))

	k := &geometry.Kernel{
		Workers:       cfg.Workers,
		Strategy:      strategy,
		PartitionSize: cfg.PartitionSize,
		Diagnostics:   geometry.Tee{&r.warnings, geometry.NewZapSink(logger)},
	}
	r.geo, err = r.grid.ComputeGeometry(k)
	if err != nil {
		return nil, err
	}
	logger.Debug("geometry computed",
		zap.Int("workers", cfg.Workers),
		zap.Stringer("strategy", strategy),
		zap.Int("warnings", r.warnings.Len()))
	return r, nil
}
