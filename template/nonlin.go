// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"math"
	"strings"
)

// NonlinKind enumerates the nonlinearity variants of the D term.
type NonlinKind int

const (
	// Standard is the piecewise-linear CNN output function, clamp to [-1, 1].
	Standard NonlinKind = iota
	// Sign returns -1 for negative arguments and 1 otherwise.
	Sign
	// AbsoluteValue returns |v|.
	AbsoluteValue
	// PiecewiseConstantKind is a step function compiled from breakpoints.
	PiecewiseConstantKind
	// PiecewiseLinearKind joins successive breakpoints with segments.
	PiecewiseLinearKind
)

// Names of the builtin nonlinearities accepted by ParseNonlinearity.
const (
	NameStandard = "std"
	NameSign     = "sign"
	NameAbs      = "abs"
	NamePWConst  = "pw_const"
	NamePWLinear = "pw_lin"
)

// Point is a breakpoint (X, Y) of a piecewise nonlinearity.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// segment is one compiled piece: for v < upper, f(v) = slope*v + icept.
type segment struct {
	upper        float64
	slope, icept float64
}

// Nonlinearity is an immutable scalar function f used by the D term.
// The zero value is the Standard nonlinearity.
type Nonlinearity struct {
	kind   NonlinKind
	points []Point
	segs   []segment // last entry also serves every v beyond the last breakpoint
}

// Std is the standard CNN output function: clamp v into [-1, 1].
func Std(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}

	return v
}

// ParseNonlinearity resolves "std", "sign" or "abs".
// Piecewise functions need breakpoints; use PiecewiseConstant/PiecewiseLinear.
func ParseNonlinearity(name string) (Nonlinearity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameStandard:
		return Nonlinearity{kind: Standard}, nil
	case NameSign:
		return Nonlinearity{kind: Sign}, nil
	case NameAbs:
		return Nonlinearity{kind: AbsoluteValue}, nil
	default:
		return Nonlinearity{}, wrapf(fmt.Sprintf("nonlinearity %q", name), ErrInvalidCoefficients)
	}
}

// validatePoints checks that breakpoints are finite with strictly increasing X.
func validatePoints(pts []Point, min int) error {
	if len(pts) < min {
		return wrapf(fmt.Sprintf("%d breakpoints (want at least %d)", len(pts), min), ErrInvalidCoefficients)
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return wrapf(fmt.Sprintf("breakpoint %d not finite", i), ErrInvalidCoefficients)
		}
		if i > 0 && p.X <= pts[i-1].X {
			return wrapf(fmt.Sprintf("breakpoint %d not increasing", i), ErrInvalidCoefficients)
		}
	}

	return nil
}

// PiecewiseConstant compiles a step function: f(v) is the Y of the first
// breakpoint whose X exceeds v, and the last Y when v is at or beyond the
// last X. The value between point A and point B is therefore B's Y.
func PiecewiseConstant(pts []Point) (Nonlinearity, error) {
	if err := validatePoints(pts, 1); err != nil {
		return Nonlinearity{}, err
	}
	segs := make([]segment, len(pts))
	for i, p := range pts {
		segs[i] = segment{upper: p.X, icept: p.Y}
	}

	return Nonlinearity{kind: PiecewiseConstantKind, points: clonePoints(pts), segs: segs}, nil
}

// PiecewiseLinear compiles a linear interpolant through the breakpoints.
// Segment i joins points i-1 and i; below the first point the first segment
// is extended, at or beyond the last point the last segment is extended.
func PiecewiseLinear(pts []Point) (Nonlinearity, error) {
	if err := validatePoints(pts, 2); err != nil {
		return Nonlinearity{}, err
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		slope := (b.Y - a.Y) / (b.X - a.X)
		segs = append(segs, segment{upper: b.X, slope: slope, icept: a.Y - slope*a.X})
	}

	return Nonlinearity{kind: PiecewiseLinearKind, points: clonePoints(pts), segs: segs}, nil
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)

	return out
}

// Kind returns the variant tag.
func (n Nonlinearity) Kind() NonlinKind { return n.kind }

// Points returns a copy of the breakpoints of a piecewise nonlinearity.
func (n Nonlinearity) Points() []Point { return clonePoints(n.points) }

// Name returns the textual name of the variant.
func (n Nonlinearity) Name() string {
	switch n.kind {
	case Sign:
		return NameSign
	case AbsoluteValue:
		return NameAbs
	case PiecewiseConstantKind:
		return NamePWConst
	case PiecewiseLinearKind:
		return NamePWLinear
	default:
		return NameStandard
	}
}

// Eval applies the nonlinearity to v.
func (n Nonlinearity) Eval(v float64) float64 {
	switch n.kind {
	case Sign:
		if v < 0 {
			return -1
		}
		return 1
	case AbsoluteValue:
		return math.Abs(v)
	case PiecewiseConstantKind, PiecewiseLinearKind:
		return n.evalSegments(v)
	default:
		return Std(v)
	}
}

func (n Nonlinearity) evalSegments(v float64) float64 {
	last := len(n.segs) - 1
	for i := 0; i < last; i++ {
		if v < n.segs[i].upper {
			return n.segs[i].slope*v + n.segs[i].icept
		}
	}

	return n.segs[last].slope*v + n.segs[last].icept
}
