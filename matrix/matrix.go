// SPDX-License-Identifier: MIT

// Package matrix - dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula y*w + x.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep deterministic loop orders (row by row, left to right).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxNew      = "New"
	ctxFromRows = "FromRows"
	ctxCopyFrom = "CopyFrom"
	ctxExpand   = "Expand"
	ctxShrink   = "Shrink"
	ctxBlacks   = "Blacks"
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// matrixErrorf wraps a sentinel with method context and the offending pair
// of integers (coordinates, sizes or ring counts depending on the method).
func matrixErrorf(method string, a, b int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, a, b, err)
}

// Matrix is a w×h grid of real cell values.
//   - w is the number of columns, h the number of rows.
//   - data holds w*h values, row-major: (x,y) is data[y*w+x].
type Matrix struct {
	w, h int       // width (columns) and height (rows), both ≥ 0
	data []float64 // contiguous row-major storage (len == w*h)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Matrix)(nil)

// New creates a zero-filled w×h matrix.
// Zero-sized matrices are legal; negative sizes return ErrInvalidDimension.
// Complexity: O(w*h) time and memory.
func New(w, h int) (*Matrix, error) {
	if w < 0 || h < 0 {
		return nil, matrixErrorf(ctxNew, w, h, ErrInvalidDimension)
	}

	return &Matrix{w: w, h: h, data: make([]float64, w*h)}, nil
}

// MustNew is New for sizes known to be valid; it panics otherwise.
// Intended for tests, examples and package-level fixtures.
func MustNew(w, h int) *Matrix {
	m, err := New(w, h)
	if err != nil {
		panic(err)
	}

	return m
}

// FromRows builds a matrix from rows[y][x]. All rows must share one length.
// The input is deep-copied.
// Complexity: O(w*h).
func FromRows(rows [][]float64) (*Matrix, error) {
	h := len(rows)
	if h == 0 {
		return &Matrix{}, nil
	}
	w := len(rows[0])
	m, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != w {
			return nil, matrixErrorf(ctxFromRows, len(row), y, ErrInvalidDimension)
		}
		copy(m.data[y*w:(y+1)*w], row)
	}

	return m, nil
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.w }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.h }

// Shape returns (width, height).
func (m *Matrix) Shape() (w, h int) { return m.w, m.h }

// SameShape reports whether o has the same width and height as m.
func (m *Matrix) SameShape(o *Matrix) bool { return m.w == o.w && m.h == o.h }

// InBounds reports whether (x,y) lies inside the matrix.
// Complexity: O(1).
func (m *Matrix) InBounds(x, y int) bool {
	return x >= 0 && x < m.w && y >= 0 && y < m.h
}

// At returns the value at column x, row y, or ErrOutOfBounds.
// Complexity: O(1).
func (m *Matrix) At(x, y int) (float64, error) {
	if !m.InBounds(x, y) {
		return 0, matrixErrorf(ctxAt, x, y, ErrOutOfBounds)
	}

	return m.data[y*m.w+x], nil
}

// Set stores v at column x, row y, or returns ErrOutOfBounds.
// Complexity: O(1).
func (m *Matrix) Set(x, y int, v float64) error {
	if !m.InBounds(x, y) {
		return matrixErrorf(ctxSet, x, y, ErrOutOfBounds)
	}
	m.data[y*m.w+x] = v

	return nil
}

// Values exposes the row-major backing slice without copying.
// Writes through the slice mutate m.
func (m *Matrix) Values() []float64 { return m.data }

// Clone returns an independent deep copy.
// Complexity: O(w*h).
func (m *Matrix) Clone() *Matrix {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Matrix{w: m.w, h: m.h, data: buf}
}

// CopyFrom overwrites m with the contents of src. Shapes must match.
// Complexity: O(w*h), no allocation.
func (m *Matrix) CopyFrom(src *Matrix) error {
	if !m.SameShape(src) {
		return matrixErrorf(ctxCopyFrom, src.w, src.h, ErrInvalidDimension)
	}
	copy(m.data, src.data)

	return nil
}

// Fill sets every cell to v.
func (m *Matrix) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clamp saturates every cell into [lo, hi] in place.
func (m *Matrix) Clamp(lo, hi float64) {
	for i, v := range m.data {
		m.data[i] = math.Max(lo, math.Min(hi, v))
	}
}

// Rows copies the matrix out as rows[y][x].
// Complexity: O(w*h).
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.h)
	for y := 0; y < m.h; y++ {
		out[y] = make([]float64, m.w)
		copy(out[y], m.data[y*m.w:(y+1)*m.w])
	}

	return out
}

// Equal reports whether o has the same shape and every cell differs by at
// most tol.
func (m *Matrix) Equal(o *Matrix, tol float64) bool {
	if o == nil || !m.SameShape(o) {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-o.data[i]) > tol {
			return false
		}
	}

	return true
}

// String renders the matrix row by row for diagnostics.
// Not for hot paths.
func (m *Matrix) String() string {
	var b strings.Builder
	var x, y, base int
	for y = 0; y < m.h; y++ {
		b.WriteString(_fmtRowOpen)
		base = y * m.w
		for x = 0; x < m.w; x++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+x]))
			if x+1 < m.w {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
