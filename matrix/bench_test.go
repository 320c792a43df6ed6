// SPDX-License-Identifier: MIT

// Package matrix_test provides benchmarks for halo and counting operations.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/cellnet/matrix"
)

var benchSizes = []int{64, 256, 512}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Matrix
	sinkI int
)

func randMatrix(b *testing.B, n int, seed int64) *matrix.Matrix {
	b.Helper()
	m := matrix.MustNew(n, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range m.Values() {
		m.Values()[i] = rng.Float64()*2 - 0.5
	}

	return m
}

func BenchmarkExpandShrink(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := randMatrix(b, n, 7)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e, err := m.Expand(1)
				if err != nil {
					b.Fatal(err)
				}
				sinkM, _ = e.Shrink(1)
			}
		})
	}
}

func BenchmarkBlacks(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := randMatrix(b, n, 11)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkI, _ = m.Blacks(matrix.All)
			}
		})
	}
}
