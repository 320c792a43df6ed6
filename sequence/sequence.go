// SPDX-License-Identifier: MIT

// Package sequence chains template runs.
//
// Each Step names its dynamics and where its init and inputs come from. A
// run keeps a result list: result 0 is the first step's init and result i is
// the output of step i. Unless told otherwise, step i starts from result i
// (the previous output), and its inputs default to its init.
//
// Every step expands its matrices by the dynamics radius, integrates, and
// shrinks the output back, so results never carry a halo. When streaming,
// the last step's final frame asks the display to block and close.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/cellnet/cnn"
	"github.com/katalvlaran/cellnet/imageio"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/template"
	"go.uber.org/zap"
)

// Fallback timing for custom dynamics without explicit values.
const (
	DefaultTimeStep = template.DefaultTimeStep
	DefaultDuration = template.DefaultDuration
)

// Step is one simulation of a chain.
type Step struct {
	// Template runs a template; Dynamics, when set, takes precedence.
	Template *template.Template
	Dynamics cnn.Dynamics

	Init   Ref // default: the previous result
	Input1 Ref // default: Init
	Input2 Ref // default: Input1

	// DT and TEnd override the template's recommendation when non-zero.
	DT, TEnd float64
}

// Loader reads an image file into a matrix without halo.
type Loader func(path string) (*matrix.Matrix, error)

// Results holds the first init followed by every step output.
type Results []*matrix.Matrix

// Final returns the last result, or nil when empty.
func (r Results) Final() *matrix.Matrix {
	if len(r) == 0 {
		return nil
	}

	return r[len(r)-1]
}

// Option customizes a Runner.
type Option func(*Runner)

// WithEngine sets the integration engine (default cnn.NewEngine()).
func WithEngine(e *cnn.Engine) Option {
	return func(r *Runner) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithLoader replaces imageio.Decode for Path references.
func WithLoader(l Loader) Option {
	return func(r *Runner) {
		if l != nil {
			r.load = l
		}
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStream streams every step to the engine's sink.
func WithStream(on bool) Option {
	return func(r *Runner) { r.stream = on }
}

// Runner executes step chains. It is safe for concurrent use when its
// engine and loader are.
type Runner struct {
	engine *cnn.Engine
	load   Loader
	logger *zap.Logger
	stream bool
}

// NewRunner returns a runner configured by opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		engine: cnn.NewEngine(),
		load:   imageio.Decode,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run is NewRunner(opts...).Run(ctx, steps).
func Run(ctx context.Context, steps []Step, opts ...Option) (Results, error) {
	return NewRunner(opts...).Run(ctx, steps)
}

// Run executes steps strictly in order.
func (r *Runner) Run(ctx context.Context, steps []Step) (Results, error) {
	if len(steps) == 0 {
		return nil, ErrEmptySequence
	}
	if steps[0].Init.IsZero() {
		return nil, fmt.Errorf("sequence: step 0 init: %w", ErrBadReference)
	}

	first, err := steps[0].Init.resolve(nil, r.load)
	if err != nil {
		return nil, fmt.Errorf("sequence: step 0 init: %w", err)
	}
	results := Results{first}

	for i, st := range steps {
		out, err := r.runStep(ctx, i, st, results, i == len(steps)-1)
		if err != nil {
			return results, err
		}
		results = append(results, out)
	}

	return results, nil
}

func (r *Runner) runStep(ctx context.Context, i int, st Step, results Results, last bool) (*matrix.Matrix, error) {
	dyn, name, dt, tEnd, err := st.dynamics()
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d: %w", i, err)
	}

	initRef := st.Init
	if initRef.IsZero() || i == 0 {
		initRef = Result(i)
	}
	init, err := initRef.resolve(results, r.load)
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d init: %w", i, err)
	}
	in1, err := r.resolveOr(st.Input1, init, results)
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d input1: %w", i, err)
	}
	in2, err := r.resolveOr(st.Input2, in1, results)
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d input2: %w", i, err)
	}

	s := dyn.Radius()
	req := cnn.Request{Dynamics: dyn, DT: dt, TEnd: tEnd, Stream: r.stream}
	if last {
		req.Final.Block, req.Final.Close = true, true
	}
	if req.Init, err = init.Expand(s); err != nil {
		return nil, fmt.Errorf("sequence: step %d: %w", i, err)
	}
	if req.Input1, err = in1.Expand(s); err != nil {
		return nil, fmt.Errorf("sequence: step %d: %w", i, err)
	}
	if req.Input2, err = in2.Expand(s); err != nil {
		return nil, fmt.Errorf("sequence: step %d: %w", i, err)
	}

	start := time.Now()
	out, err := r.engine.Integrate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d (%s): %w", i, name, err)
	}
	res, err := out.Shrink(s)
	if err != nil {
		return nil, fmt.Errorf("sequence: step %d: %w", i, err)
	}

	r.logger.Info("step finished",
		zap.Int("step", i),
		zap.String("dynamics", name),
		zap.Float64("dt", dt),
		zap.Float64("t_end", tEnd),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

func (r *Runner) resolveOr(ref Ref, def *matrix.Matrix, results Results) (*matrix.Matrix, error) {
	if ref.IsZero() {
		return def, nil
	}

	return ref.resolve(results, r.load)
}

// dynamics picks the step's dynamics and timing.
func (st Step) dynamics() (dyn cnn.Dynamics, name string, dt, tEnd float64, err error) {
	dt, tEnd = DefaultTimeStep, DefaultDuration
	switch {
	case st.Dynamics != nil:
		dyn, name = st.Dynamics, "custom"
	case st.Template != nil:
		td, err := cnn.FromTemplate(st.Template)
		if err != nil {
			return nil, "", 0, 0, err
		}
		dyn, name = td, st.Template.Name()
		dt, tEnd = st.Template.TimeStep(), st.Template.Duration()
	default:
		return nil, "", 0, 0, cnn.ErrNilDynamics
	}
	if name == "" {
		name = "template"
	}
	if st.DT != 0 {
		dt = st.DT
	}
	if st.TEnd != 0 {
		tEnd = st.TEnd
	}

	return dyn, name, dt, tEnd, nil
}
