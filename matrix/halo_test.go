// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/cellnet/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(w, h int) *matrix.Matrix {
	m := matrix.MustNew(w, h)
	for i := range m.Values() {
		m.Values()[i] = float64(i + 1)
	}

	return m
}

// TestExpandPlacesCenter verifies size and placement of the copied data.
func TestExpandPlacesCenter(t *testing.T) {
	m := seq(3, 2)
	e, err := m.Expand(2)
	require.NoError(t, err)
	require.Equal(t, 7, e.Width())
	require.Equal(t, 6, e.Height())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want, _ := m.At(x, y)
			got, _ := e.At(x+2, y+2)
			assert.Equal(t, want, got)
		}
	}
	corner, _ := e.At(0, 0)
	assert.Zero(t, corner)
}

// TestExpandShrinkRoundTrip checks that Shrink(s) undoes Expand(s).
func TestExpandShrinkRoundTrip(t *testing.T) {
	for _, tc := range []struct{ w, h, s int }{
		{1, 1, 0}, {1, 1, 1}, {4, 3, 1}, {5, 5, 2}, {8, 2, 3},
	} {
		m := seq(tc.w, tc.h)
		e, err := m.Expand(tc.s)
		require.NoError(t, err)
		back, err := e.Shrink(tc.s)
		require.NoError(t, err)
		require.True(t, m.Equal(back, 0), "w=%d h=%d s=%d", tc.w, tc.h, tc.s)
	}
}

// TestExpandDoesNotAlias ensures the source is untouched by writes to the result.
func TestExpandDoesNotAlias(t *testing.T) {
	m := seq(2, 2)
	e, _ := m.Expand(1)
	_ = e.Set(1, 1, -9)
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}

// TestShrinkInvalid covers over-shrinking and negative rings.
func TestShrinkInvalid(t *testing.T) {
	m := seq(4, 6)

	_, err := m.Shrink(3) // 3 > 4/2
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, err = m.Shrink(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, err = m.Expand(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	s, err := m.Shrink(2) // legal: 0×2
	require.NoError(t, err)
	require.Equal(t, 0, s.Width())
	require.Equal(t, 2, s.Height())
}
