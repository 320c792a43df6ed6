// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/cellnet/boundary"
)

// Names of the builtin templates.
const (
	AVG   = "AVG"   // averaging / smoothing
	EDGE  = "EDGE"  // binary edge detection
	AND   = "AND"   // logical AND of state and input
	OR    = "OR"    // logical OR of state and input
	NOT   = "NOT"   // logical NOT of the input
	HL3   = "HL3"   // halftoning
	THRES = "THRES" // thresholding at zero
	EROS  = "EROS"  // erosion
	DILAT = "DILAT" // dilation
)

// builtinOptions lists the coefficient sets of the classic template library.
var builtinOptions = map[string][]Option{
	AVG:  {WithA(2, 1, 0)},
	EDGE: {WithB(8, -1), WithZ(-1)},
	AND:  {WithA(1), WithB(1), WithZ(-1)},
	OR:   {WithA(1), WithB(1), WithZ(1)},
	NOT:  {WithB(-1)},
	HL3: {
		WithA(1.5, -0.1, -0.07),
		WithB(0.32, 0.1, 0.07),
	},
	THRES: {WithA(2)},
	EROS: {
		WithA(1), WithB(1, 1), WithZ(-8),
		WithBoundary(mustConstant(1)), WithDuration(1),
	},
	DILAT: {
		WithA(1), WithB(1, 1), WithZ(8),
		WithBoundary(mustConstant(-1)), WithDuration(1),
	},
}

func mustConstant(v float64) boundary.Condition {
	c, err := boundary.Constant(v)
	if err != nil {
		panic(err)
	}

	return c
}

// Builtin returns a fresh copy of a builtin template (case-insensitive name).
func Builtin(name string) (*Template, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	opts, ok := builtinOptions[key]
	if !ok {
		return nil, fmt.Errorf("template: builtin %q: %w", name, ErrUnknownTemplate)
	}

	return New(append([]Option{WithName(key)}, opts...)...)
}

// BuiltinNames returns the builtin template names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinOptions))
	for n := range builtinOptions {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
