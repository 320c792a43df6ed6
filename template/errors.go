// SPDX-License-Identifier: MIT
// Package: cellnet/template
//
// errors.go — sentinel errors for the template package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Construction attaches context with %w (which kernel, which breakpoint).
//   • Option constructors never panic; validation happens in New so that
//     malformed coefficient lists read from files surface as errors.

package template

import (
	"errors"
	"fmt"
)

// ErrInvalidCoefficients indicates a coefficient list of unsupported length,
// a non-finite coefficient, a malformed piecewise breakpoint list or an
// unknown coupling operand.
var ErrInvalidCoefficients = errors.New("template: invalid coefficients")

// ErrInvalidTiming indicates a non-positive recommended time step or a
// negative recommended duration.
var ErrInvalidTiming = errors.New("template: invalid timing")

// ErrUnknownTemplate is returned by Builtin and Library lookups for names
// that are not registered.
var ErrUnknownTemplate = errors.New("template: unknown template")

// wrapf attaches a context label to a sentinel.
func wrapf(ctx string, err error) error {
	return fmt.Errorf("template: %s: %w", ctx, err)
}
