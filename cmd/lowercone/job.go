package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/catalog"
	"github.com/wippyai/chirotope/config"
	"github.com/wippyai/chirotope/enumerate"
	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/metrics"
	"github.com/wippyai/chirotope/om"
)

const tooLarge = "Mistake - the input argument is too large."

var errOutOfRange = &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindOutOfRange}

// jobResult is the outcome of one lower cone run. Skipped is set when the
// requested index is past the end of the catalogue; nothing is written then.
type jobResult struct {
	Output  string
	Stats   enumerate.Stats
	Skipped bool
}

type jobOptions struct {
	log        *zap.Logger
	runID      string
	onProgress func(enumerate.Progress)
}

func (a *app) runLowerCone(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New(errors.PhaseSetup, errors.KindInvalidInput).
			Value(args[0]).
			Cause(err).
			Detail("index %q is not an integer", args[0]).
			Build()
	}

	opts := jobOptions{log: a.log, runID: a.runID}
	if a.interactive && term.IsTerminal(int(os.Stdout.Fd())) {
		return a.runInteractive(cmd.Context(), index, opts)
	}

	res, err := runJob(cmd.Context(), a.cfg, index, opts)
	if err != nil {
		return err
	}
	a.report(res)
	return nil
}

func (a *app) report(res jobResult) {
	if res.Skipped {
		fmt.Fprintln(a.out, tooLarge)
		return
	}
	fmt.Fprintf(a.out, "%d chirotopes\n", res.Stats.Accepted)
}

// runJob writes the lower cone of the index-th uniform representative.
func runJob(ctx context.Context, cfg *config.Config, index int, opts jobOptions) (jobResult, error) {
	log := opts.log
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.ValidateEnumeration(); err != nil {
		return jobResult{}, err
	}
	tab, err := basis.New(cfg.Rank, cfg.Elements)
	if err != nil {
		return jobResult{}, err
	}

	rec := metrics.New(cfg.Rank, cfg.Elements, opts.runID)
	enumOpts := []enumerate.Option{
		enumerate.WithLogger(log),
		enumerate.WithMetrics(rec),
		enumerate.WithProgressInterval(cfg.ProgressInterval),
	}
	if opts.onProgress != nil {
		enumOpts = append(enumOpts, enumerate.WithProgress(opts.onProgress))
	}
	en, err := enumerate.New(tab, enumOpts...)
	if err != nil {
		return jobResult{}, err
	}

	rep, err := representative(cfg, tab, index)
	if stderrors.Is(err, errOutOfRange) {
		log.Warn("representative index out of range", zap.Int("index", index), zap.Error(err))
		return jobResult{Skipped: true}, nil
	}
	if err != nil {
		return jobResult{}, err
	}
	log.Info("representative selected", zap.Int("index", index), zap.String("chirotope", rep.String()))

	path := cfg.OutputPath(catalog.LowerConeFileName(cfg.Rank, cfg.Elements, index))
	w, err := catalog.Create(path, catalog.LowerConeHeader(index, cfg.Rank, cfg.Elements))
	if err != nil {
		return jobResult{}, err
	}

	stats, err := en.LowerCone(ctx, rep, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if cfg.MetricsFile != "" {
		if merr := rec.WriteTextfile(cfg.MetricsFile); merr != nil {
			log.Error("failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(merr))
			if err == nil {
				err = errors.IO(errors.PhaseWrite, cfg.MetricsFile, merr)
			}
		}
	}
	return jobResult{Output: path, Stats: stats}, err
}

// representative returns the index-th uniform representative. Below rank 3
// there is one class, the all positive chirotope.
func representative(cfg *config.Config, tab *basis.Table, index int) (om.Chirotope, error) {
	if cfg.Rank < 3 {
		if index != 0 {
			return om.Chirotope{}, errors.OutOfRange(errors.PhaseLoad, []string{"alternating"}, index, 1)
		}
		return om.AllPositive(tab.Count()), nil
	}

	r, err := catalog.Open(cfg.InputPath(catalog.UniformFileName(cfg.Rank, cfg.Elements)), tab.Count())
	if err != nil {
		return om.Chirotope{}, err
	}
	defer r.Close()
	return r.Nth(index)
}
