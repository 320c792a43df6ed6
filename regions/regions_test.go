// SPDX-License-Identifier: MIT

package regions_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/regions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds a halo-padded matrix from a 0/1 pattern (1 = black, 0 = white).
func grid(t *testing.T, pattern [][]int) *matrix.Matrix {
	t.Helper()
	rows := make([][]float64, len(pattern))
	for y, r := range pattern {
		rows[y] = make([]float64, len(r))
		for x, v := range r {
			rows[y][x] = float64(2*v - 1)
		}
	}
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	e, err := m.Expand(1)
	require.NoError(t, err)
	e.Values()[0] = 1 // halo corner, never part of a region

	return e
}

func sizes(regs []regions.Region) []int {
	out := make([]int, len(regs))
	for i, r := range regs {
		out[i] = r.Size()
	}
	sort.Ints(out)

	return out
}

// TestLabelConn4 uses
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// which holds islands of sizes 4 and 2.
func TestLabelConn4(t *testing.T) {
	m := grid(t, [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	})
	regs, err := regions.Label(m, regions.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, sizes(regs))

	first := regs[0]
	assert.Equal(t, regions.Cell{X: 2, Y: 1}, first.Cells[0])
	assert.Equal(t, regions.Bounds{MinX: 1, MinY: 1, MaxX: 3, MaxY: 2}, first.Bounds)
	assert.Equal(t, 3, first.Bounds.Width())
	assert.Equal(t, 2, first.Bounds.Height())
}

// TestLabelConn8 joins an X shape through diagonal hops.
func TestLabelConn8(t *testing.T) {
	m := grid(t, [][]int{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	})
	regs, err := regions.Label(m, regions.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, regs, 9)

	opts := regions.DefaultOptions()
	opts.Conn = regions.Conn8
	regs, err = regions.Label(m, opts)
	require.NoError(t, err)
	require.Equal(t, []int{9}, sizes(regs))
}

// TestLabelThreshold treats grey cells as white by default.
func TestLabelThreshold(t *testing.T) {
	m, err := matrix.FromRows([][]float64{
		{0, 0, 0, 0},
		{0, 0.9, 1, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	regs, err := regions.Label(m, regions.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []int{1}, sizes(regs))

	regs, err = regions.Label(m, regions.Options{Threshold: 0.5})
	require.NoError(t, err)
	require.Equal(t, []int{2}, sizes(regs))

	_, err = regions.Label(nil, regions.DefaultOptions())
	require.ErrorIs(t, err, regions.ErrNilMatrix)
}

// TestBridge finds the two-cell gap between the left and right blocks.
func TestBridge(t *testing.T) {
	m := grid(t, [][]int{
		{1, 1, 0, 0, 1},
		{1, 1, 0, 0, 1},
		{0, 0, 0, 0, 1},
	})
	opts := regions.DefaultOptions()
	regs, err := regions.Label(m, opts)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	path, cost, err := regions.Bridge(m, opts, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cost)
	require.Len(t, path, 4)
	assert.Equal(t, 2, path[0].X)
	assert.Equal(t, 5, path[len(path)-1].X)

	_, cost, err = regions.Bridge(m, opts, 1, 1)
	require.NoError(t, err)
	assert.Zero(t, cost)

	_, _, err = regions.Bridge(m, opts, 0, 2)
	require.ErrorIs(t, err, regions.ErrRegionIndex)
}

func TestSummarize(t *testing.T) {
	m := grid(t, [][]int{
		{1, 0, 0, 1},
		{1, 0, 0, 0},
		{0, 0, 1, 1},
	})
	s, err := regions.Summarize(m, regions.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Blacks[matrix.All])
	assert.Equal(t, 2, s.Blacks[matrix.Left])
	assert.Equal(t, 2, s.Blacks[matrix.Right])
	assert.Equal(t, 2, s.Blacks[matrix.Top])
	assert.Equal(t, 2, s.Blacks[matrix.Bottom])
	assert.Equal(t, 3, s.Regions)
	assert.Equal(t, 2, s.Largest)
}
