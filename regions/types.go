// SPDX-License-Identifier: MIT

package regions

import (
	"errors"

	"github.com/katalvlaran/cellnet/matrix"
)

// Sentinel errors for region analysis.
var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("regions: nil matrix")
	// ErrRegionIndex indicates a requested region index is out of range.
	ErrRegionIndex = errors.New("regions: region index out of range")
	// ErrNoPath indicates no bridge exists between the specified regions.
	ErrNoPath = errors.New("regions: no path between specified regions")
)

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Options contains tunable parameters for region analysis.
type Options struct {
	// Threshold is the minimum value of a black cell.
	Threshold float64
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Threshold=matrix.BlackThreshold, Conn=Conn4.
func DefaultOptions() Options {
	return Options{
		Threshold: matrix.BlackThreshold,
		Conn:      Conn4,
	}
}

func (o Options) offsets() [][2]int {
	if o.Conn == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Bounds is the inclusive bounding box of a region.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the number of columns spanned.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows spanned.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Region is one connected set of black cells, in discovery (BFS) order.
type Region struct {
	Cells  []Cell
	Bounds Bounds
}

// Size returns the number of cells.
func (r Region) Size() int { return len(r.Cells) }

// grid is the interior view shared by Label and Bridge.
type grid struct {
	w, h    int
	vals    []float64
	thr     float64
	offsets [][2]int
}

func newGrid(m *matrix.Matrix, opts Options) (*grid, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	return &grid{w: m.Width(), h: m.Height(), vals: m.Values(), thr: opts.Threshold, offsets: opts.offsets()}, nil
}

// interior reports whether (x,y) lies strictly inside the outer ring.
func (g *grid) interior(x, y int) bool {
	return x >= 1 && x < g.w-1 && y >= 1 && y < g.h-1
}

func (g *grid) black(i int) bool { return g.vals[i] >= g.thr }

func (g *grid) index(x, y int) int { return y*g.w + x }

func (g *grid) coordinate(i int) (x, y int) { return i % g.w, i / g.w }
