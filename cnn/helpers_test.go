// SPDX-License-Identifier: MIT

package cnn_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/cellnet/cnn"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/template"
	"github.com/stretchr/testify/require"
)

// padded builds a matrix from rows and adds one zero ring.
func padded(t testing.TB, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	e, err := m.Expand(1)
	require.NoError(t, err)

	return e
}

// run integrates a template and strips the halo.
func run(t testing.TB, tpl *template.Template, init, input *matrix.Matrix, opts ...cnn.Option) *matrix.Matrix {
	t.Helper()
	dyn, err := cnn.FromTemplate(tpl)
	require.NoError(t, err)
	out, err := cnn.Integrate(context.Background(), cnn.Request{
		Init:     init,
		Input1:   input,
		Dynamics: dyn,
		DT:       tpl.TimeStep(),
		TEnd:     tpl.Duration(),
	}, opts...)
	require.NoError(t, err)
	s, err := out.Shrink(1)
	require.NoError(t, err)

	return s
}

// wavy returns a deterministic w×h field with values in (-1, 1).
func wavy(w, h int) *matrix.Matrix {
	m := matrix.MustNew(w, h)
	v := m.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v[y*w+x] = 0.9 * math.Sin(float64(3*x+7*y)/5)
		}
	}

	return m
}
