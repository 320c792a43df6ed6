// SPDX-License-Identifier: MIT

package cnn

import (
	"fmt"

	"github.com/katalvlaran/cellnet/boundary"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/template"
)

// Dynamics computes the state derivative of one cell.
//
// Evaluate receives coordinates in the expanded frame (halo included), so
// the interior cell (x, y) satisfies Radius() <= x < w-Radius(). state,
// input1 and input2 share one shape and have their halos filled with
// Boundary() before every call. Evaluate must not retain or mutate them.
type Dynamics interface {
	Evaluate(x, y int, state, input1, input2 *matrix.Matrix, t float64) float64
	Radius() int
	Boundary() boundary.Condition
}

// CellFunc is the signature of user-supplied cell dynamics.
type CellFunc func(x, y int, state, input1, input2 *matrix.Matrix, t float64) float64

// CustomFunction adapts a CellFunc to Dynamics.
type CustomFunction struct {
	Func  CellFunc
	S     int                // neighbourhood radius; values < 1 mean 1
	Bound boundary.Condition // zero value is Constant(0)
}

// Evaluate calls Func.
func (c CustomFunction) Evaluate(x, y int, state, in1, in2 *matrix.Matrix, t float64) float64 {
	return c.Func(x, y, state, in1, in2, t)
}

// Radius returns S, at least 1.
func (c CustomFunction) Radius() int {
	if c.S < 1 {
		return 1
	}

	return c.S
}

// Boundary returns Bound.
func (c CustomFunction) Boundary() boundary.Condition { return c.Bound }

// TemplateDynamics evaluates a 3×3 template. Templates without a D term use
//
//	dx/dt = -x + z + Σk std(a[k]*x[k]) + b[k]*u1[k]
//
// and templates with one use
//
//	dx/dt = -x + z + Σk a[k]*std(x[k]) + b[k]*u1[k] + d[k]*f(opA[k] - opB)
//
// where opA is sampled at neighbour k and opB at the cell itself.
type TemplateDynamics struct {
	tpl       *template.Template
	a, b, d   template.Kernel
	z         float64
	nl        template.Nonlinearity
	cp        template.Coupling
	nonlinear bool
}

// FromTemplate wraps t. A nil template yields ErrNilDynamics.
func FromTemplate(t *template.Template) (*TemplateDynamics, error) {
	if t == nil {
		return nil, fmt.Errorf("cnn: template: %w", ErrNilDynamics)
	}

	return &TemplateDynamics{
		tpl:       t,
		a:         t.A(),
		b:         t.B(),
		d:         t.D(),
		z:         t.Z(),
		nl:        t.Nonlinearity(),
		cp:        t.Coupling(),
		nonlinear: t.IsNonlinear(),
	}, nil
}

// Template returns the wrapped template.
func (td *TemplateDynamics) Template() *template.Template { return td.tpl }

// Radius is always 1.
func (td *TemplateDynamics) Radius() int { return 1 }

// Boundary returns the template's boundary condition.
func (td *TemplateDynamics) Boundary() boundary.Condition { return td.tpl.Boundary() }

// Evaluate implements Dynamics.
func (td *TemplateDynamics) Evaluate(x, y int, state, in1, in2 *matrix.Matrix, _ float64) float64 {
	w := state.Width()
	c := y*w + x
	xs, u1 := state.Values(), in1.Values()

	sum := -xs[c] + td.z
	if !td.nonlinear {
		for k := 0; k < template.KernelSize; k++ {
			i := c + neighbour(k, w)
			sum += template.Std(td.a[k]*xs[i]) + td.b[k]*u1[i]
		}

		return sum
	}

	u2 := in2.Values()
	center := operand(td.cp.Center, c, xs, u1, u2)
	for k := 0; k < template.KernelSize; k++ {
		i := c + neighbour(k, w)
		sum += td.a[k]*template.Std(xs[i]) + td.b[k]*u1[i]
		if td.d[k] != 0 {
			sum += td.d[k] * td.nl.Eval(operand(td.cp.Neighbor, i, xs, u1, u2)-center)
		}
	}

	return sum
}

// neighbour returns the flat offset of kernel index k in a row of width w.
func neighbour(k, w int) int {
	dx, dy := template.Offset(k)

	return dy*w + dx
}

func operand(op template.Operand, i int, xs, u1, u2 []float64) float64 {
	switch op {
	case template.OperandOutput:
		return template.Std(xs[i])
	case template.OperandInput1:
		return u1[i]
	case template.OperandInput2:
		return u2[i]
	default:
		return xs[i]
	}
}
