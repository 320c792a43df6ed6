// SPDX-License-Identifier: MIT

// Package boundary fills the halo rings of an expanded matrix according to a
// boundary condition.
//
// Conditions:
//
//   - Constant(v): every halo cell holds v (v in [-1, 1]).
//   - ZeroFlux:    halo cells replicate the nearest interior row/column, so the
//     gradient across the edge is zero.
//   - Periodic:    halo cells wrap around from the opposite edge (torus).
//
// Fill is applied independently to the state and to each input matrix before
// integration; the state halo is refreshed before every step.
package boundary

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/cellnet/matrix"
)

// ErrUnsupportedBoundary indicates a boundary selector that is not one of
// the recognised conditions.
var ErrUnsupportedBoundary = errors.New("boundary: unsupported boundary condition")

// Kind enumerates the boundary condition variants.
type Kind int

const (
	// KindConstant fills the halo with a fixed value.
	KindConstant Kind = iota
	// KindZeroFlux replicates the nearest interior cell.
	KindZeroFlux
	// KindPeriodic wraps around from the opposite edge.
	KindPeriodic
)

// Textual names accepted by Parse.
const (
	NameZeroFlux = "zeroflux"
	NamePeriodic = "periodic"
)

// Condition is a boundary condition. The zero value is Constant(0).
type Condition struct {
	kind  Kind
	value float64 // used by KindConstant only
}

// Constant returns a constant condition. v must be finite and within [-1, 1].
func Constant(v float64) (Condition, error) {
	if math.IsNaN(v) || v < -1 || v > 1 {
		return Condition{}, fmt.Errorf("boundary: constant %g: %w", v, ErrUnsupportedBoundary)
	}

	return Condition{kind: KindConstant, value: v}, nil
}

// ZeroFlux returns the zero-flux (replicating) condition.
func ZeroFlux() Condition { return Condition{kind: KindZeroFlux} }

// Periodic returns the periodic (wrap-around) condition.
func Periodic() Condition { return Condition{kind: KindPeriodic} }

// Parse accepts a number in [-1, 1] (constant), "zeroflux" or "periodic".
func Parse(s string) (Condition, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case NameZeroFlux:
		return ZeroFlux(), nil
	case NamePeriodic:
		return Periodic(), nil
	}
	v, err := strconv.ParseFloat(name, 64)
	if err != nil {
		return Condition{}, fmt.Errorf("boundary: %q: %w", s, ErrUnsupportedBoundary)
	}

	return Constant(v)
}

// Kind returns the variant tag.
func (c Condition) Kind() Kind { return c.kind }

// Value returns the constant of a KindConstant condition (0 otherwise).
func (c Condition) Value() float64 { return c.value }

// String renders the condition in the form accepted by Parse.
func (c Condition) String() string {
	switch c.kind {
	case KindZeroFlux:
		return NameZeroFlux
	case KindPeriodic:
		return NamePeriodic
	case KindConstant:
		return strconv.FormatFloat(c.value, 'g', -1, 64)
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler (used by YAML configs).
func (c Condition) MarshalText() ([]byte, error) {
	if c.kind < KindConstant || c.kind > KindPeriodic {
		return nil, ErrUnsupportedBoundary
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Condition) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// Fill writes the halo of m, which must already be expanded by s rings.
// The interior is never modified.
//
// Errors:
//   - ErrUnsupportedBoundary for an unknown Kind.
//   - matrix.ErrInvalidDimension when s < 0 or the interior is too small for
//     the condition (zero-flux needs one interior cell per axis, periodic
//     needs at least s).
//
// Complexity: O(s*(w+h)).
func (c Condition) Fill(m *matrix.Matrix, s int) error {
	w, h := m.Shape()
	if s < 0 || 2*s > w || 2*s > h {
		return fmt.Errorf("boundary: fill %dx%d with %d rings: %w", w, h, s, matrix.ErrInvalidDimension)
	}
	if s == 0 {
		return nil
	}

	switch c.kind {
	case KindConstant:
		fillConstant(m.Values(), w, h, s, c.value)
	case KindZeroFlux:
		if w-2*s < 1 || h-2*s < 1 {
			return fmt.Errorf("boundary: zeroflux on empty interior: %w", matrix.ErrInvalidDimension)
		}
		fillZeroFlux(m.Values(), w, h, s)
	case KindPeriodic:
		if w-2*s < s || h-2*s < s {
			return fmt.Errorf("boundary: periodic interior smaller than %d: %w", s, matrix.ErrInvalidDimension)
		}
		fillPeriodic(m.Values(), w, h, s)
	default:
		return ErrUnsupportedBoundary
	}

	return nil
}

func fillConstant(d []float64, w, h, s int, v float64) {
	for i := 0; i < s; i++ {
		for j := 0; j < w; j++ {
			d[w*i+j] = v
			d[w*(h-1-i)+j] = v
		}
		for j := 0; j < h; j++ {
			d[w*j+i] = v
			d[w*j+w-1-i] = v
		}
	}
}

// fillZeroFlux copies row s / row h-s-1 outward first, then column s /
// column w-s-1 over the full height, so corners take the corner interior value.
func fillZeroFlux(d []float64, w, h, s int) {
	for i := 0; i < s; i++ {
		for j := 0; j < w; j++ {
			d[w*i+j] = d[w*s+j]
			d[w*(h-1-i)+j] = d[w*(h-s-1)+j]
		}
		for j := 0; j < h; j++ {
			d[w*j+i] = d[w*j+s]
			d[w*j+w-1-i] = d[w*j+w-s-1]
		}
	}
}

// fillPeriodic maps halo ring i onto the interior ring at distance s from the
// opposite edge: row i <- row h-2s+i, row h-1-i <- row 2s-1-i (and likewise
// for columns). Rows go first over the full width, then columns over the
// full height, so corners wrap diagonally.
func fillPeriodic(d []float64, w, h, s int) {
	for i := 0; i < s; i++ {
		for j := 0; j < w; j++ {
			d[w*i+j] = d[w*(h-2*s+i)+j]
			d[w*(h-1-i)+j] = d[w*(2*s-1-i)+j]
		}
		for j := 0; j < h; j++ {
			d[w*j+i] = d[w*j+w-2*s+i]
			d[w*j+w-1-i] = d[w*j+2*s-1-i]
		}
	}
}
