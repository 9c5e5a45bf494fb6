// Command lowercone computes lower cones of uniform chirotopes.
//
//	lowercone 3                      # lower cone of the 4th representative
//	lowercone --rank 2 --elements 5 0
//	lowercone check uniform_representatives_rank3_6elements.txt
//	lowercone fixed --symmetric lower_cones_rank3_6elements_0.txt
//	lowercone bases
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/chirotope/config"
	"github.com/wippyai/chirotope/enumerate"
)

// app carries the state shared by the command tree.
type app struct {
	out io.Writer

	configPath  string
	verbose     bool
	interactive bool

	rank        int
	elements    int
	inputDir    string
	outputDir   string
	metricsFile string

	cfg   *config.Config
	log   *zap.Logger
	runID string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "lowercone <index>",
		Short: "Enumerate the lower cone of a uniform chirotope",
		Long: `Reads the index-th uniform representative of rank R on N elements,
walks every subset of its bases and writes each one that is a chirotope to
lower_cones_rank<R>_<N>elements_<index>.txt.

For rank below 3 there is a single uniform class, the all positive
chirotope, and only index 0 exists.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: a.runLowerCone,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "lowercone.yaml", "config file (missing file means defaults)")
	pf.IntVar(&a.rank, "rank", 0, "rank R")
	pf.IntVar(&a.elements, "elements", 0, "ground set size N")
	pf.StringVar(&a.inputDir, "input-dir", "", "directory of the uniform representatives catalogue")
	pf.StringVar(&a.outputDir, "output-dir", "", "directory for lower cone files")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.Flags().BoolVarP(&a.interactive, "interactive", "i", false, "show a progress view")

	root.AddCommand(a.checkCmd(), a.fixedCmd(), a.basesCmd())
	return root
}

// setup loads the config, applies flags over it and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("rank") {
		cfg.Rank = a.rank
	}
	if flags.Changed("elements") {
		cfg.Elements = a.elements
	}
	if flags.Changed("input-dir") {
		cfg.InputDir = a.inputDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = a.outputDir
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = logger.With(zap.String("run_id", a.runID))
	enumerate.SetLogger(a.log)
	return nil
}

func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if lc.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd(os.Stdout).ExecuteContext(ctx)
}
