// SPDX-License-Identifier: MIT

package regions_test

import (
	"fmt"

	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/regions"
)

// ExampleLabel lists the blobs of a small converged output.
func ExampleLabel() {
	out, _ := matrix.FromRows([][]float64{
		{-1, -1, -1, -1, -1},
		{-1, 1, 1, -1, -1},
		{-1, -1, -1, -1, -1},
		{-1, -1, -1, 1, -1},
		{-1, -1, -1, -1, -1},
	})
	regs, _ := regions.Label(out, regions.DefaultOptions())
	for i, r := range regs {
		fmt.Printf("region %d: %d cells, cells %v\n", i, r.Size(), r.Cells)
	}

	// Output:
	// region 0: 2 cells, cells [{1 1} {2 1}]
	// region 1: 1 cells, cells [{3 3}]
}
