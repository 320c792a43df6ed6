// SPDX-License-Identifier: MIT

// Package template describes space-invariant 3×3 CNN templates.
//
// A template couples every cell to its 8 neighbours through
//
//	A  state feedback kernel
//	B  input (control) kernel
//	Z  bias
//	D  optional nonlinear kernel, applied as d[k]*f(opA_k - opB_ij)
//
// together with the boundary condition it was designed for and a recommended
// time step and duration. Templates are immutable once built; New validates
// every coefficient list (see ExpandCoefficients).
package template

import (
	"math"

	"github.com/katalvlaran/cellnet/boundary"
)

// Recommended timing defaults.
const (
	DefaultTimeStep = 0.1
	DefaultDuration = 10.0
)

// Template is an immutable, validated CNN template.
type Template struct {
	name     string
	a, b, d  Kernel
	z        float64
	bound    boundary.Condition
	nonlin   Nonlinearity
	coupling Coupling
	dt, tEnd float64
}

// New builds a template from options. Unset kernels are zero, the boundary
// is Constant(0), the nonlinearity Standard, the coupling "x-x", and timing
// DefaultTimeStep/DefaultDuration.
//
// Errors:
//   - ErrInvalidCoefficients for malformed kernels, nonlinearities or couplings.
//   - ErrInvalidTiming for dt <= 0 or tEnd < 0.
func New(opts ...Option) (*Template, error) {
	cfg := newTemplateConfig(opts...)
	if cfg.err != nil {
		return nil, cfg.err
	}

	a, err := ExpandCoefficients(cfg.a)
	if err != nil {
		return nil, wrapf("A", err)
	}
	b, err := ExpandCoefficients(cfg.b)
	if err != nil {
		return nil, wrapf("B", err)
	}
	d, err := ExpandCoefficients(cfg.d)
	if err != nil {
		return nil, wrapf("D", err)
	}
	if !(cfg.dt > 0) || math.IsInf(cfg.dt, 0) || !(cfg.tEnd >= 0) || math.IsInf(cfg.tEnd, 0) {
		return nil, wrapf("timing", ErrInvalidTiming)
	}

	return &Template{
		name:     cfg.name,
		a:        a,
		b:        b,
		d:        d,
		z:        cfg.z,
		bound:    cfg.bound,
		nonlin:   cfg.nonlin,
		coupling: cfg.coupling,
		dt:       cfg.dt,
		tEnd:     cfg.tEnd,
	}, nil
}

// MustNew is New for templates known to be valid; it panics otherwise.
func MustNew(opts ...Option) *Template {
	t, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the optional template name.
func (t *Template) Name() string { return t.name }

// A returns the state feedback kernel.
func (t *Template) A() Kernel { return t.a }

// B returns the input kernel.
func (t *Template) B() Kernel { return t.b }

// D returns the nonlinear kernel.
func (t *Template) D() Kernel { return t.d }

// Z returns the bias.
func (t *Template) Z() float64 { return t.z }

// Boundary returns the boundary condition the template is designed for.
func (t *Template) Boundary() boundary.Condition { return t.bound }

// Nonlinearity returns the function applied by the D term.
func (t *Template) Nonlinearity() Nonlinearity { return t.nonlin }

// Coupling returns the operand selection of the D term.
func (t *Template) Coupling() Coupling { return t.coupling }

// TimeStep returns the recommended integration step.
func (t *Template) TimeStep() float64 { return t.dt }

// Duration returns the recommended simulated time.
func (t *Template) Duration() float64 { return t.tEnd }

// IsNonlinear reports whether any D coefficient is non-zero.
func (t *Template) IsNonlinear() bool { return !t.d.IsZero() }
