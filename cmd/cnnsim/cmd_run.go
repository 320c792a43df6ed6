// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/katalvlaran/cellnet/cnn"
	"github.com/katalvlaran/cellnet/config"
	"github.com/katalvlaran/cellnet/display"
	"github.com/katalvlaran/cellnet/imageio"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/regions"
	"github.com/katalvlaran/cellnet/sequence"
	"github.com/katalvlaran/cellnet/template"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoSteps = errors.New("cnnsim: nothing to run (give TEMPLATE INPUT or configure run.steps)")

type runFlags struct {
	out     string
	input1  string
	input2  string
	dt      float64
	tEnd    float64
	summary bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [TEMPLATE INPUT [OUTPUT]]",
		Short: "Run a template, or the chain configured under run.steps",
		Long: `Runs TEMPLATE on the INPUT image and writes the converged state to OUTPUT
(default --out). Without arguments the steps of the configuration file run in
order, each starting from the previous result.

References accepted by --input1/--input2 and the config file are image paths
or "#N", the N-th result (0 is the first input image).`,
		Args: cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "out.png", "output image")
	fl.StringVar(&f.input1, "input1", "", "first input reference (default: the init image)")
	fl.StringVar(&f.input2, "input2", "", "second input reference (default: input1)")
	fl.Float64Var(&f.dt, "dt", 0, "time step (default: the template's)")
	fl.Float64Var(&f.tEnd, "t-end", 0, "simulated time (default: the template's)")
	fl.BoolVar(&f.summary, "summary", true, "print black counts and a convergence plot")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string, f runFlags) error {
	lib, err := template.LoadLibraryFile(a.cfg.Library)
	if err != nil {
		return err
	}

	out := f.out
	var steps []sequence.Step
	switch {
	case len(args) == 1:
		return errors.New("cnnsim: run needs both TEMPLATE and INPUT")
	case len(args) >= 2:
		tpl, err := lib.Get(args[0])
		if err != nil {
			return err
		}
		steps = []sequence.Step{{
			Template: tpl,
			Init:     sequence.Path(args[1]),
			Input1:   sequence.ParseRef(f.input1),
			Input2:   sequence.ParseRef(f.input2),
			DT:       f.dt,
			TEnd:     f.tEnd,
		}}
		if len(args) == 3 {
			out = args[2]
		}
	default:
		if steps, err = a.cfg.Steps(lib); err != nil {
			return err
		}
	}
	if len(steps) == 0 {
		return errNoSteps
	}

	sink, finish, err := newSink(a.cfg.Display, a.logger)
	if err != nil {
		return err
	}

	var deltas []float64
	opts, err := a.cfg.EngineOptions(a.logger)
	if err != nil {
		return err
	}
	opts = append(opts, cnn.WithObserver(func(s cnn.Step) { deltas = append(deltas, s.MaxDelta) }))
	if sink != nil {
		opts = append(opts, cnn.WithSink(sink))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, runErr := sequence.Run(ctx, steps,
		sequence.WithEngine(cnn.NewEngine(opts...)),
		sequence.WithLogger(a.logger),
		sequence.WithStream(sink != nil))
	if err := finish(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	final := results.Final()
	if err := imageio.Encode(final, out); err != nil {
		return err
	}
	a.logger.Info("run finished",
		zap.Int("steps", len(steps)),
		zap.String("output", out),
		zap.Duration("elapsed", time.Since(start)))

	if f.summary {
		return printSummary(cmd.OutOrStdout(), final, deltas)
	}

	return nil
}

// newSink builds the display for mode; finish flushes it after the run.
func newSink(dc config.DisplayConfig, logger *zap.Logger) (display.Sink, func() error, error) {
	switch dc.Mode {
	case config.DisplayTerminal:
		term := display.NewTerminal(display.WithTitle("cnnsim"))
		async := display.NewAsync(term, dc.Buffer, display.WithAsyncLogger(logger))
		return async, func() error {
			if err := async.Close(); err != nil {
				return err
			}
			return term.Close()
		}, nil
	case config.DisplayGIF:
		g := display.NewGIF(display.WithDelay(dc.Delay), display.WithStride(dc.Stride))
		return g, func() error { return g.Save(dc.GIFPath) }, nil
	case config.DisplayNone, "":
		return nil, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: display mode %q", config.ErrInvalidConfig, dc.Mode)
	}
}

func printSummary(w io.Writer, final *matrix.Matrix, deltas []float64) error {
	padded, err := final.Expand(1)
	if err != nil {
		return err
	}
	sum, err := regions.Summarize(padded, regions.DefaultOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "black cells: %d (left %d, right %d, top %d, bottom %d)\n",
		sum.Blacks[matrix.All], sum.Blacks[matrix.Left], sum.Blacks[matrix.Right],
		sum.Blacks[matrix.Top], sum.Blacks[matrix.Bottom])
	fmt.Fprintf(w, "regions: %d, largest: %d\n", sum.Regions, sum.Largest)
	if len(deltas) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(deltas,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("max |dx| per step")))
	}

	return nil
}
