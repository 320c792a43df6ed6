// SPDX-License-Identifier: MIT

// Package matrix - halo ring management.
//
// Expand surrounds a matrix with s rings of halo cells so that every original
// cell owns a full (2s+1)×(2s+1) neighbourhood; Shrink strips them again.
// Both return new matrices and leave the receiver untouched, so that
// m.Expand(s).Shrink(s) reproduces m exactly.

package matrix

// Expand returns a (w+2s)×(h+2s) matrix whose center region
// [s, s+w)×[s, s+h) holds a copy of m. Halo cells are zero until a boundary
// condition fills them.
// Complexity: O((w+2s)*(h+2s)).
func (m *Matrix) Expand(s int) (*Matrix, error) {
	if s < 0 {
		return nil, matrixErrorf(ctxExpand, s, s, ErrInvalidDimension)
	}
	res, err := New(m.w+2*s, m.h+2*s)
	if err != nil {
		return nil, err
	}

	// Copy row by row into the center region.
	for y := 0; y < m.h; y++ {
		dst := (y+s)*res.w + s
		copy(res.data[dst:dst+m.w], m.data[y*m.w:(y+1)*m.w])
	}

	return res, nil
}

// Shrink returns the (w-2s)×(h-2s) center region of m.
// Fails with ErrInvalidDimension when s < 0 or s exceeds half of either side.
// Complexity: O((w-2s)*(h-2s)).
func (m *Matrix) Shrink(s int) (*Matrix, error) {
	if s < 0 || s > m.w/2 || s > m.h/2 {
		return nil, matrixErrorf(ctxShrink, s, s, ErrInvalidDimension)
	}
	res, err := New(m.w-2*s, m.h-2*s)
	if err != nil {
		return nil, err
	}

	for y := 0; y < res.h; y++ {
		src := (y+s)*m.w + s
		copy(res.data[y*res.w:(y+1)*res.w], m.data[src:src+res.w])
	}

	return res, nil
}
