// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Public methods return these sentinels, wrapped with method context via
// fmt.Errorf("Matrix.<method>(...): %w", ErrX). Callers match with errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimension is returned for negative sizes and for Shrink
	// requests that would leave a negative extent.
	ErrInvalidDimension = errors.New("matrix: invalid dimension")

	// ErrOutOfBounds indicates an (x,y) coordinate outside [0,w)×[0,h).
	ErrOutOfBounds = errors.New("matrix: coordinate out of bounds")

	// ErrInvalidRegion indicates an unknown Blacks region selector.
	ErrInvalidRegion = errors.New("matrix: invalid region")
)
