// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/cellnet/matrix"
)

// ExampleMatrix_Expand shows the halo round-trip used around every simulation.
func ExampleMatrix_Expand() {
	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	e, _ := m.Expand(1)
	fmt.Print(e)

	back, _ := e.Shrink(1)
	fmt.Println(back.Equal(m, 0))

	// Output:
	// [0, 0, 0, 0]
	// [0, 1, 2, 0]
	// [0, 3, 4, 0]
	// [0, 0, 0, 0]
	// true
}

// ExampleMatrix_Blacks counts saturated interior cells.
func ExampleMatrix_Blacks() {
	m := matrix.MustNew(5, 5)
	_ = m.Set(1, 1, 1)
	_ = m.Set(2, 2, 1)
	_ = m.Set(0, 0, 1) // outer ring, never counted

	all, _ := m.Blacks(matrix.All)
	left, _ := m.Blacks(matrix.Left)
	fmt.Println(all, left)

	// Output:
	// 2 1
}
