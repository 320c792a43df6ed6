// SPDX-License-Identifier: MIT

package cnn

import "errors"

// ErrShapeMismatch indicates that init and input matrices differ in size.
var ErrShapeMismatch = errors.New("cnn: shape mismatch")

// ErrInvalidTiming indicates a non-positive or non-finite time step, or a
// negative or non-finite end time.
var ErrInvalidTiming = errors.New("cnn: invalid timing")

// ErrNilDynamics indicates a request without dynamics, a nil template or a
// custom function without a body.
var ErrNilDynamics = errors.New("cnn: nil dynamics")
