// SPDX-License-Identifier: MIT

// Package cnn integrates Cellular Neural Network dynamics.
//
// An integration consumes an initial state, one or two input layers, a
// Dynamics (a template or a custom cell function) and timing, and evolves
// every interior cell for round(TEnd/DT) synchronous steps:
//
//	for k in 0..n-1:
//	    fill state halo with the boundary condition
//	    next[c] = advance(state, c, t = k*DT)   // every interior cell c
//	    swap(state, next)
//
// Input halos are filled once. State is double-buffered, so a step reads only
// the fully settled previous state. The returned matrix keeps its halo.
//
// Usage:
//
//	dyn, _ := cnn.FromTemplate(tpl)
//	out, err := cnn.Integrate(ctx, cnn.Request{
//	    Init: init, Dynamics: dyn, DT: 0.1, TEnd: 10,
//	}, cnn.WithWorkers(4))
package cnn

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/cellnet/display"
	"github.com/katalvlaran/cellnet/matrix"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request describes one simulation. It is consumed by a single Integrate call.
type Request struct {
	Init     *matrix.Matrix // initial state, halo included
	Input1   *matrix.Matrix // nil means Init
	Input2   *matrix.Matrix // nil means Input1
	Dynamics Dynamics
	DT, TEnd float64

	// Stream sends the cropped state to the engine's sink after every step.
	Stream bool
	// Final is merged into the flags of the last streamed frame.
	Final display.Flags
}

// Engine runs integrations with a fixed configuration. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	cfg engineConfig
}

// NewEngine returns an engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	return &Engine{cfg: newEngineConfig(opts...)}
}

// Integrate is NewEngine(opts...).Integrate(ctx, req).
func Integrate(ctx context.Context, req Request, opts ...Option) (*matrix.Matrix, error) {
	return NewEngine(opts...).Integrate(ctx, req)
}

// Steps returns the number of steps taken for dt and tEnd.
func Steps(dt, tEnd float64) int { return int(math.Round(tEnd / dt)) }

// Integrate runs req and returns the final state with its halo attached.
// The caller's matrices are never modified.
//
// Errors:
//   - ErrNilDynamics, ErrInvalidTiming, ErrShapeMismatch for bad requests.
//   - matrix.ErrInvalidDimension when the interior is empty for the radius.
//   - boundary errors when the matrix is too small for the boundary kind.
//   - the context error, wrapped, when ctx ends between steps.
func (e *Engine) Integrate(ctx context.Context, req Request) (*matrix.Matrix, error) {
	in1, in2, err := req.validate()
	if err != nil {
		return nil, err
	}
	dyn := req.Dynamics
	s := dyn.Radius()
	bound := dyn.Boundary()

	run := &runState{
		cfg:  &e.cfg,
		dyn:  dyn,
		s:    s,
		dt:   req.DT,
		cur:  req.Init.Clone(),
		next: req.Init.Clone(),
		in1:  in1.Clone(),
		in2:  in2.Clone(),
	}
	if err = bound.Fill(run.in1, s); err != nil {
		return nil, fmt.Errorf("cnn: input1 boundary: %w", err)
	}
	if err = bound.Fill(run.in2, s); err != nil {
		return nil, fmt.Errorf("cnn: input2 boundary: %w", err)
	}
	run.prepare()

	n := Steps(req.DT, req.TEnd)
	log := e.cfg.logger.With(zap.String("run_id", uuid.NewString()))
	log.Debug("integration started",
		zap.Int("width", req.Init.Width()),
		zap.Int("height", req.Init.Height()),
		zap.Int("steps", n),
		zap.Float64("dt", req.DT),
		zap.Stringer("scheme", e.cfg.scheme),
		zap.Stringer("boundary", bound),
		zap.Int("workers", run.workers))
	start := time.Now()

	for k := 0; k < n; k++ {
		if err = ctx.Err(); err != nil {
			log.Debug("integration cancelled", zap.Int("step", k), zap.Error(err))
			return nil, fmt.Errorf("cnn: cancelled at step %d: %w", k, err)
		}
		if err = bound.Fill(run.cur, s); err != nil {
			return nil, fmt.Errorf("cnn: state boundary: %w", err)
		}

		var delta float64
		if delta, err = run.step(float64(k) * req.DT); err != nil {
			return nil, err
		}
		if e.cfg.saturation == SaturateEachStep {
			run.next.Clamp(-1, 1)
		}
		run.cur, run.next = run.next, run.cur

		if e.cfg.observer != nil {
			e.cfg.observer(Step{Index: k + 1, Time: float64(k+1) * req.DT, MaxDelta: delta})
		}
		if req.Stream && k < n-1 {
			e.emit(run.cur, s, display.Flags{Show: true})
		}
	}

	if err = bound.Fill(run.cur, s); err != nil {
		return nil, fmt.Errorf("cnn: state boundary: %w", err)
	}
	if e.cfg.saturation != SaturateNone {
		run.cur.Clamp(-1, 1)
	}
	if req.Stream {
		final := req.Final
		final.Show = true
		e.emit(run.cur, s, final)
	}
	log.Debug("integration finished", zap.Int("steps", n), zap.Duration("elapsed", time.Since(start)))

	return run.cur, nil
}

func (e *Engine) emit(state *matrix.Matrix, s int, flags display.Flags) {
	frame, err := state.Shrink(s)
	if err != nil {
		return
	}
	e.cfg.sink.Show(frame, flags)
}

func (r *Request) validate() (in1, in2 *matrix.Matrix, err error) {
	if r.Dynamics == nil {
		return nil, nil, fmt.Errorf("cnn: request: %w", ErrNilDynamics)
	}
	if c, ok := r.Dynamics.(CustomFunction); ok && c.Func == nil {
		return nil, nil, fmt.Errorf("cnn: custom function: %w", ErrNilDynamics)
	}
	if td, ok := r.Dynamics.(*TemplateDynamics); ok && (td == nil || td.tpl == nil) {
		return nil, nil, fmt.Errorf("cnn: template: %w", ErrNilDynamics)
	}
	if r.Init == nil {
		return nil, nil, fmt.Errorf("cnn: nil init: %w", matrix.ErrInvalidDimension)
	}
	if !(r.DT > 0) || math.IsInf(r.DT, 0) || !(r.TEnd >= 0) || math.IsInf(r.TEnd, 0) {
		return nil, nil, fmt.Errorf("cnn: dt=%g t_end=%g: %w", r.DT, r.TEnd, ErrInvalidTiming)
	}

	in1, in2 = r.Input1, r.Input2
	if in1 == nil {
		in1 = r.Init
	}
	if in2 == nil {
		in2 = in1
	}
	if !in1.SameShape(r.Init) || !in2.SameShape(r.Init) {
		return nil, nil, fmt.Errorf("cnn: init %dx%d, input1 %dx%d, input2 %dx%d: %w",
			r.Init.Width(), r.Init.Height(), in1.Width(), in1.Height(), in2.Width(), in2.Height(),
			ErrShapeMismatch)
	}

	s := r.Dynamics.Radius()
	if r.Init.Width()-2*s < 1 || r.Init.Height()-2*s < 1 {
		return nil, nil, fmt.Errorf("cnn: %dx%d has no interior for radius %d: %w",
			r.Init.Width(), r.Init.Height(), s, matrix.ErrInvalidDimension)
	}

	return in1, in2, nil
}

// runState holds the buffers of one integration.
type runState struct {
	cfg       *engineConfig
	dyn       Dynamics
	s         int
	dt        float64
	cur, next *matrix.Matrix
	in1, in2  *matrix.Matrix

	workers int
	bands   [][2]int         // [y0, y1) per worker
	scratch []*matrix.Matrix // per-worker RK4 stage buffers
	deltas  []float64
}

func (r *runState) prepare() {
	rows := r.cur.Height() - 2*r.s
	r.workers = r.cfg.workers
	if r.workers > rows {
		r.workers = rows
	}
	r.bands = make([][2]int, r.workers)
	for i := range r.bands {
		r.bands[i] = [2]int{r.s + rows*i/r.workers, r.s + rows*(i+1)/r.workers}
	}
	r.deltas = make([]float64, r.workers)
	if r.cfg.scheme == RK4 {
		r.scratch = make([]*matrix.Matrix, r.workers)
		for i := range r.scratch {
			r.scratch[i] = r.cur.Clone()
		}
	}
}

// step computes r.next from r.cur and returns the largest state change.
func (r *runState) step(t float64) (float64, error) {
	if r.workers == 1 {
		r.deltas[0] = r.band(0, t)
	} else {
		var g errgroup.Group
		for i := 0; i < r.workers; i++ {
			g.Go(func() error {
				r.deltas[i] = r.band(i, t)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	}

	var delta float64
	for _, d := range r.deltas {
		delta = math.Max(delta, d)
	}

	return delta, nil
}

// band advances the rows of worker i.
func (r *runState) band(i int, t float64) float64 {
	w := r.cur.Width()
	src, dst := r.cur.Values(), r.next.Values()
	dt := r.dt

	var scratch *matrix.Matrix
	var sv []float64
	if r.scratch != nil {
		scratch = r.scratch[i]
		sv = scratch.Values()
		copy(sv, src)
	}

	var delta float64
	for y := r.bands[i][0]; y < r.bands[i][1]; y++ {
		for x := r.s; x < w-r.s; x++ {
			c := y*w + x
			x0 := src[c]

			var v float64
			if scratch == nil {
				v = x0 + dt*r.dyn.Evaluate(x, y, r.cur, r.in1, r.in2, t)
			} else {
				k1 := dt * r.dyn.Evaluate(x, y, scratch, r.in1, r.in2, t)
				sv[c] = x0 + k1/2
				k2 := dt * r.dyn.Evaluate(x, y, scratch, r.in1, r.in2, t+dt/2)
				sv[c] = x0 + k2/2
				k3 := dt * r.dyn.Evaluate(x, y, scratch, r.in1, r.in2, t+dt/2)
				sv[c] = x0 + k3
				k4 := dt * r.dyn.Evaluate(x, y, scratch, r.in1, r.in2, t+dt)
				sv[c] = x0
				v = x0 + k1/6 + k2/3 + k3/3 + k4/6
			}

			dst[c] = v
			if d := math.Abs(v - x0); d > delta {
				delta = d
			}
		}
	}

	return delta
}
