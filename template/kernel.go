// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"math"
)

// KernelSize is the number of coefficients of a 3×3 kernel.
const KernelSize = 9

// Center is the index of the self-coupling coefficient in a Kernel.
const Center = 4

// Kernel holds 3×3 coupling coefficients in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Index k addresses the neighbour at offset (k%3-1, k/3-1).
type Kernel [KernelSize]float64

// ExpandCoefficients expands a short coefficient list into a full kernel.
//
//	9 values  [k0..k8]     -> row-major as given
//	3 values  [m, e, c]    -> c e c / e m e / c e c
//	2 values  [m, e]       -> e e e / e m e / e e e
//	1 value   [m]          -> 0 0 0 / 0 m 0 / 0 0 0
//	0 values               -> zero kernel
//
// Any other length, or a NaN/Inf coefficient, returns ErrInvalidCoefficients.
func ExpandCoefficients(c []float64) (Kernel, error) {
	var k Kernel
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return k, fmt.Errorf("coefficient %d is %g: %w", i, v, ErrInvalidCoefficients)
		}
	}

	switch len(c) {
	case 0:
	case 1:
		k[Center] = c[0]
	case 2:
		for i := range k {
			k[i] = c[1]
		}
		k[Center] = c[0]
	case 3:
		m, e, cr := c[0], c[1], c[2]
		k = Kernel{cr, e, cr, e, m, e, cr, e, cr}
	case KernelSize:
		copy(k[:], c)
	default:
		return k, fmt.Errorf("list of %d coefficients (want 9, 3, 2 or 1): %w", len(c), ErrInvalidCoefficients)
	}

	return k, nil
}

// IsZero reports whether every coefficient is zero.
func (k Kernel) IsZero() bool {
	for _, v := range k {
		if v != 0 {
			return false
		}
	}

	return true
}

// Offset returns the (dx, dy) neighbour offset addressed by index i.
func Offset(i int) (dx, dy int) { return i%3 - 1, i/3 - 1 }
