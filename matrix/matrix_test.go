// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for the Matrix type.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/cellnet/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewInvalidDimension ensures that New rejects negative sizes.
func TestNewInvalidDimension(t *testing.T) {
	_, err := matrix.New(-1, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, err = matrix.New(5, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

// TestNewZeroFilled verifies that every valid cell of a fresh matrix is 0.
func TestNewZeroFilled(t *testing.T) {
	for _, sz := range [][2]int{{0, 0}, {0, 4}, {1, 1}, {3, 7}, {16, 9}} {
		m, err := matrix.New(sz[0], sz[1])
		require.NoError(t, err)
		require.Equal(t, sz[0], m.Width())
		require.Equal(t, sz[1], m.Height())
		for y := 0; y < sz[1]; y++ {
			for x := 0; x < sz[0]; x++ {
				v, err := m.At(x, y)
				require.NoError(t, err)
				require.Zero(t, v)
			}
		}
	}
}

// TestAtSetOutOfBounds ensures At and Set return ErrOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m := matrix.MustNew(2, 3)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	_, err = m.At(2, 0) // x == w
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	err = m.Set(0, 3, 1.0) // y == h
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	err = m.Set(0, -1, 1.0)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
}

// TestSetGetRowMajor checks that (x,y) maps onto data[y*w+x].
func TestSetGetRowMajor(t *testing.T) {
	m := matrix.MustNew(3, 2)
	require.NoError(t, m.Set(2, 1, 7.5))

	v, err := m.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)
	require.Equal(t, 7.5, m.Values()[1*3+2])
}

// TestFromRows covers construction from nested slices.
func TestFromRows(t *testing.T) {
	m, err := matrix.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())

	v, _ := m.At(0, 1)
	require.Equal(t, 4.0, v)
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.Rows())

	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

// TestCloneIndependence ensures Clone returns a deep copy.
func TestCloneIndependence(t *testing.T) {
	m := matrix.MustNew(2, 2)
	_ = m.Set(0, 0, 1.0)

	c := m.Clone()
	_ = c.Set(0, 0, 3.0)

	orig, _ := m.At(0, 0)
	require.Equal(t, 1.0, orig)
	cv, _ := c.At(0, 0)
	require.Equal(t, 3.0, cv)
}

// TestCopyFromShape checks shape validation of CopyFrom.
func TestCopyFromShape(t *testing.T) {
	dst := matrix.MustNew(2, 2)
	src := matrix.MustNew(2, 2)
	src.Fill(0.5)
	require.NoError(t, dst.CopyFrom(src))
	require.True(t, dst.Equal(src, 0))

	require.ErrorIs(t, dst.CopyFrom(matrix.MustNew(3, 2)), matrix.ErrInvalidDimension)
}

// TestClamp saturates values into a band.
func TestClamp(t *testing.T) {
	m, _ := matrix.FromRows([][]float64{{-3, -0.5, 0.5, 3}})
	m.Clamp(-1, 1)
	require.Equal(t, [][]float64{{-1, -0.5, 0.5, 1}}, m.Rows())
}

// TestStringOutput checks the diagnostic format.
func TestStringOutput(t *testing.T) {
	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
