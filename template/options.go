// SPDX-License-Identifier: MIT
// Package: cellnet/template
//
// options.go — functional options for New.
//
// Contract:
//   • Options are functional (type Option func(*templateConfig)).
//   • Options store raw inputs; New expands and validates them, so a bad
//     coefficient list read from a library file surfaces as an error.
//   • Later options override earlier ones.

package template

import (
	"github.com/katalvlaran/cellnet/boundary"
)

// Option customizes a template under construction.
type Option func(*templateConfig)

// templateConfig aggregates raw construction inputs.
type templateConfig struct {
	name     string
	a, b, d  []float64
	z        float64
	bound    boundary.Condition
	nonlin   Nonlinearity
	coupling Coupling
	dt, tEnd float64
	err      error // first error raised by a parsing option
}

func newTemplateConfig(opts ...Option) templateConfig {
	cfg := templateConfig{
		dt:   DefaultTimeStep,
		tEnd: DefaultDuration,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (c *templateConfig) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// WithName labels the template (used by libraries and logs).
func WithName(name string) Option {
	return func(c *templateConfig) { c.name = name }
}

// WithA sets the state feedback coefficients (9, 3, 2 or 1 values).
func WithA(coeffs ...float64) Option {
	return func(c *templateConfig) { c.a = append([]float64(nil), coeffs...) }
}

// WithB sets the input coefficients (9, 3, 2 or 1 values).
func WithB(coeffs ...float64) Option {
	return func(c *templateConfig) { c.b = append([]float64(nil), coeffs...) }
}

// WithD sets the nonlinear coefficients (9, 3, 2 or 1 values).
func WithD(coeffs ...float64) Option {
	return func(c *templateConfig) { c.d = append([]float64(nil), coeffs...) }
}

// WithZ sets the bias.
func WithZ(z float64) Option {
	return func(c *templateConfig) { c.z = z }
}

// WithBoundary sets the boundary condition.
func WithBoundary(b boundary.Condition) Option {
	return func(c *templateConfig) { c.bound = b }
}

// WithBoundaryName parses the boundary condition from its textual form.
func WithBoundaryName(s string) Option {
	return func(c *templateConfig) {
		b, err := boundary.Parse(s)
		if err != nil {
			c.fail(err)
			return
		}
		c.bound = b
	}
}

// WithNonlinearity sets the function applied by the D term.
func WithNonlinearity(n Nonlinearity) Option {
	return func(c *templateConfig) { c.nonlin = n }
}

// WithCoupling sets the operand selection of the D term.
func WithCoupling(cp Coupling) Option {
	return func(c *templateConfig) { c.coupling = cp }
}

// WithCouplingName parses the "opA-opB" coupling form.
func WithCouplingName(s string) Option {
	return func(c *templateConfig) {
		cp, err := ParseCoupling(s)
		if err != nil {
			c.fail(err)
			return
		}
		c.coupling = cp
	}
}

// WithTimeStep sets the recommended integration step (must be > 0).
func WithTimeStep(dt float64) Option {
	return func(c *templateConfig) { c.dt = dt }
}

// WithDuration sets the recommended simulated time (must be ≥ 0).
func WithDuration(tEnd float64) Option {
	return func(c *templateConfig) { c.tEnd = tEnd }
}
