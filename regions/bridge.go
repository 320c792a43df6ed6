// SPDX-License-Identifier: MIT

package regions

import (
	"container/list"

	"github.com/katalvlaran/cellnet/matrix"
)

// Bridge finds a cheapest chain of interior cells joining region src to
// region dst, as numbered by Label with the same options. Each white cell on
// the chain costs 1; black cells are free. The returned path includes the
// start and end black cells.
//
// Behavior:
//  1. Validate region indices.
//  2. Multi-source 0-1 BFS from every cell of src:
//     • moving into a black cell → cost 0
//     • moving into a white cell → cost 1
//  3. Stop when any dst cell is popped.
//  4. Reconstruct the path via predecessors.
//
// Memory: O(W·H) for distance and predecessor arrays.
func Bridge(m *matrix.Matrix, opts Options, src, dst int) (path []Cell, cost int, err error) {
	g, err := newGrid(m, opts)
	if err != nil {
		return nil, 0, err
	}
	regs := g.label()
	if src < 0 || src >= len(regs) || dst < 0 || dst >= len(regs) {
		return nil, 0, ErrRegionIndex
	}
	dstSet := make(map[int]struct{}, regs[dst].Size())
	for _, c := range regs[dst].Cells {
		dstSet[g.index(c.X, c.Y)] = struct{}{}
	}

	n := g.w * g.h
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}

	// 0-1 BFS: cost-0 moves at the front, cost-1 moves at the back
	dq := list.New()
	for _, c := range regs[src].Cells {
		i := g.index(c.X, c.Y)
		dist[i] = 0
		dq.PushFront(i)
	}

	target := -1
	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if _, ok := dstSet[u]; ok {
			target = u
			break
		}
		ux, uy := g.coordinate(u)
		for _, d := range g.offsets {
			vx, vy := ux+d[0], uy+d[1]
			if !g.interior(vx, vy) {
				continue
			}
			v := g.index(vx, vy)
			step := 0
			if !g.black(v) {
				step = 1
			}
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	if target < 0 {
		return nil, 0, ErrNoPath
	}
	for at := target; at >= 0; at = prev[at] {
		x, y := g.coordinate(at)
		path = append(path, Cell{X: x, Y: y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[target], nil
}
