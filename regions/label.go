// SPDX-License-Identifier: MIT

package regions

import (
	"github.com/katalvlaran/cellnet/matrix"
)

// Label finds all connected regions of black interior cells. Regions are
// ordered by their first cell in row-major order.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func Label(m *matrix.Matrix, opts Options) ([]Region, error) {
	g, err := newGrid(m, opts)
	if err != nil {
		return nil, err
	}

	return g.label(), nil
}

func (g *grid) label() []Region {
	seen := make([]bool, g.w*g.h)
	var out []Region

	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i0 := g.index(x, y)
			if seen[i0] || !g.black(i0) {
				continue
			}
			// BFS to collect the region
			queue := []int{i0}
			seen[i0] = true
			r := Region{Bounds: Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}}

			for qi := 0; qi < len(queue); qi++ {
				ux, uy := g.coordinate(queue[qi])
				r.Cells = append(r.Cells, Cell{X: ux, Y: uy})
				r.Bounds.MinX = min(r.Bounds.MinX, ux)
				r.Bounds.MaxX = max(r.Bounds.MaxX, ux)
				r.Bounds.MinY = min(r.Bounds.MinY, uy)
				r.Bounds.MaxY = max(r.Bounds.MaxY, uy)

				for _, d := range g.offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !g.interior(vx, vy) {
						continue
					}
					vi := g.index(vx, vy)
					if !seen[vi] && g.black(vi) {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			out = append(out, r)
		}
	}

	return out
}

// Summary gathers the black-cell counts of a converged matrix.
type Summary struct {
	Blacks  map[matrix.Region]int
	Regions int
	Largest int
}

// Summarize counts black cells per matrix.Region (at matrix.BlackThreshold)
// and labels regions with opts.
func Summarize(m *matrix.Matrix, opts Options) (Summary, error) {
	if m == nil {
		return Summary{}, ErrNilMatrix
	}
	s := Summary{Blacks: make(map[matrix.Region]int, 5)}
	for _, r := range []matrix.Region{matrix.All, matrix.Left, matrix.Right, matrix.Top, matrix.Bottom} {
		n, err := m.Blacks(r)
		if err != nil {
			return Summary{}, err
		}
		s.Blacks[r] = n
	}

	regs, err := Label(m, opts)
	if err != nil {
		return Summary{}, err
	}
	s.Regions = len(regs)
	for _, r := range regs {
		s.Largest = max(s.Largest, r.Size())
	}

	return s, nil
}
