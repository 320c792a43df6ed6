// SPDX-License-Identifier: MIT

// Package matrix - black-pixel counter.
//
// A cell is "black" when its value is ≥ BlackThreshold. Only interior cells
// are considered, i.e. cells that own all 8 neighbours; the outermost ring
// never counts. Edge regions select the interior cells adjacent to one side.

package matrix

import "strings"

// BlackThreshold is the value at or above which a cell counts as black.
const BlackThreshold = 1.0

// Region selects which interior cells Blacks inspects.
type Region int

const (
	// All selects every interior cell.
	All Region = iota
	// Left selects interior cells of column 1.
	Left
	// Right selects interior cells of column w-2.
	Right
	// Top selects interior cells of row 1.
	Top
	// Bottom selects interior cells of row h-2.
	Bottom
)

var regionNames = [...]string{
	All:    "all",
	Left:   "left",
	Right:  "right",
	Top:    "top",
	Bottom: "bottom",
}

// String returns the lower-case region name.
func (r Region) String() string {
	if r < All || r > Bottom {
		return "unknown"
	}

	return regionNames[r]
}

// ParseRegion maps "all", "left", "right", "top" or "bottom" (any case) to a
// Region. Unknown names return ErrInvalidRegion.
func ParseRegion(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range regionNames {
		if n == name {
			return Region(r), nil
		}
	}

	return All, ErrInvalidRegion
}

// Blacks counts interior cells with value ≥ BlackThreshold in the region.
// Matrices narrower or shorter than 3 have no interior and yield 0.
// Complexity: O(w*h) for All, O(w+h) for an edge region.
func (m *Matrix) Blacks(region Region) (int, error) {
	if region < All || region > Bottom {
		return 0, matrixErrorf(ctxBlacks, int(region), 0, ErrInvalidRegion)
	}
	if m.w < 3 || m.h < 3 {
		return 0, nil
	}

	x0, x1, y0, y1 := 1, m.w-1, 1, m.h-1 // interior is [x0,x1)×[y0,y1)
	switch region {
	case Left:
		x1 = x0 + 1
	case Right:
		x0 = x1 - 1
	case Top:
		y1 = y0 + 1
	case Bottom:
		y0 = y1 - 1
	}

	return m.countAtLeast(x0, x1, y0, y1, BlackThreshold), nil
}

// countAtLeast counts cells ≥ thr in the half-open window [x0,x1)×[y0,y1).
func (m *Matrix) countAtLeast(x0, x1, y0, y1 int, thr float64) int {
	n := 0
	for y := y0; y < y1; y++ {
		base := y * m.w
		for x := x0; x < x1; x++ {
			if m.data[base+x] >= thr {
				n++
			}
		}
	}

	return n
}
