// SPDX-License-Identifier: MIT

package template_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/cellnet/boundary"
	"github.com/katalvlaran/cellnet/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDefaults verifies the zero configuration.
func TestNewDefaults(t *testing.T) {
	tpl, err := template.New()
	require.NoError(t, err)

	assert.True(t, tpl.A().IsZero())
	assert.True(t, tpl.B().IsZero())
	assert.False(t, tpl.IsNonlinear())
	assert.Equal(t, boundary.KindConstant, tpl.Boundary().Kind())
	assert.Zero(t, tpl.Boundary().Value())
	assert.Equal(t, template.Standard, tpl.Nonlinearity().Kind())
	assert.Equal(t, "x-x", tpl.Coupling().String())
	assert.Equal(t, template.DefaultTimeStep, tpl.TimeStep())
	assert.Equal(t, template.DefaultDuration, tpl.Duration())
}

// TestNewInvalid covers every validation failure of New.
func TestNewInvalid(t *testing.T) {
	_, err := template.New(template.WithA(1, 2, 3, 4))
	require.ErrorIs(t, err, template.ErrInvalidCoefficients)
	require.Contains(t, err.Error(), "A")

	_, err = template.New(template.WithD(math.NaN()))
	require.ErrorIs(t, err, template.ErrInvalidCoefficients)

	_, err = template.New(template.WithTimeStep(0))
	require.ErrorIs(t, err, template.ErrInvalidTiming)

	_, err = template.New(template.WithTimeStep(math.Inf(1)))
	require.ErrorIs(t, err, template.ErrInvalidTiming)

	_, err = template.New(template.WithDuration(-1))
	require.ErrorIs(t, err, template.ErrInvalidTiming)

	_, err = template.New(template.WithBoundaryName("mirror"))
	require.ErrorIs(t, err, boundary.ErrUnsupportedBoundary)

	_, err = template.New(template.WithCouplingName("x-z"))
	require.ErrorIs(t, err, template.ErrInvalidCoefficients)
}

// TestNewNonlinear marks templates with any non-zero D coefficient.
func TestNewNonlinear(t *testing.T) {
	tpl := template.MustNew(template.WithD(0, 0.5), template.WithCouplingName("y-u1"))
	require.True(t, tpl.IsNonlinear())
	require.Equal(t, template.OperandOutput, tpl.Coupling().Neighbor)
	require.Equal(t, template.OperandInput1, tpl.Coupling().Center)
	require.Zero(t, tpl.D()[template.Center])
}

func TestParseCoupling(t *testing.T) {
	c, err := template.ParseCoupling(" U2 -x")
	require.NoError(t, err)
	require.Equal(t, template.Coupling{Neighbor: template.OperandInput2, Center: template.OperandState}, c)
	require.Equal(t, "u2-x", c.String())

	for _, bad := range []string{"", "x", "x-y-u1", "a-b"} {
		_, err := template.ParseCoupling(bad)
		require.ErrorIs(t, err, template.ErrInvalidCoefficients, bad)
	}
}

// TestBuiltins checks the classic library coefficients.
func TestBuiltins(t *testing.T) {
	require.Equal(t,
		[]string{"AND", "AVG", "DILAT", "EDGE", "EROS", "HL3", "NOT", "OR", "THRES"},
		template.BuiltinNames())

	edge, err := template.Builtin("edge")
	require.NoError(t, err)
	require.Equal(t, "EDGE", edge.Name())
	require.Equal(t, template.Kernel{-1, -1, -1, -1, 8, -1, -1, -1, -1}, edge.B())
	require.Equal(t, -1.0, edge.Z())
	require.True(t, edge.A().IsZero())

	avg, err := template.Builtin(template.AVG)
	require.NoError(t, err)
	require.Equal(t, template.Kernel{0, 1, 0, 1, 2, 1, 0, 1, 0}, avg.A())

	eros, err := template.Builtin(template.EROS)
	require.NoError(t, err)
	require.Equal(t, 1.0, eros.Boundary().Value())
	require.Equal(t, 1.0, eros.Duration())

	dilat, err := template.Builtin(template.DILAT)
	require.NoError(t, err)
	require.Equal(t, -1.0, dilat.Boundary().Value())
	require.Equal(t, 8.0, dilat.Z())

	_, err = template.Builtin("blur")
	require.ErrorIs(t, err, template.ErrUnknownTemplate)
}

const libraryYAML = `
templates:
  diffuse:
    a: [0, 1]
    boundary: zeroflux
    dt: 0.05
    t_end: 2
  edge:
    b: [4, -0.5]
    z: -0.5
  ridge:
    a: [2]
    d: [0, 0.25]
    nonlinearity: pw_lin
    points: [{x: -1, y: -1}, {x: 0, y: 0}, {x: 1, y: 0.5}]
    coupling: y-y
    boundary: periodic
`

// TestLoadLibrary reads user templates over the builtin set.
func TestLoadLibrary(t *testing.T) {
	lib, err := template.LoadLibrary(strings.NewReader(libraryYAML))
	require.NoError(t, err)

	d, err := lib.Get("Diffuse")
	require.NoError(t, err)
	assert.Equal(t, "DIFFUSE", d.Name())
	assert.Equal(t, boundary.KindZeroFlux, d.Boundary().Kind())
	assert.Equal(t, 0.05, d.TimeStep())
	assert.Equal(t, 2.0, d.Duration())

	// file entries override builtins
	e, err := lib.Get(template.EDGE)
	require.NoError(t, err)
	assert.Equal(t, 4.0, e.B()[template.Center])

	r, err := lib.Get("ridge")
	require.NoError(t, err)
	assert.True(t, r.IsNonlinear())
	assert.Equal(t, template.PiecewiseLinearKind, r.Nonlinearity().Kind())
	assert.InDelta(t, 0.25, r.Nonlinearity().Eval(0.5), 1e-12)
	assert.Equal(t, boundary.KindPeriodic, r.Boundary().Kind())

	_, err = lib.Get("THRES")
	require.NoError(t, err)
	_, err = lib.Get("missing")
	require.ErrorIs(t, err, template.ErrUnknownTemplate)
}

// TestLoadLibraryErrors covers malformed entries and unknown keys.
func TestLoadLibraryErrors(t *testing.T) {
	_, err := template.LoadLibrary(strings.NewReader("templates:\n  bad:\n    a: [1, 2, 3, 4]\n"))
	require.ErrorIs(t, err, template.ErrInvalidCoefficients)
	require.Contains(t, err.Error(), "BAD")

	_, err = template.LoadLibrary(strings.NewReader("templates:\n  bad:\n    nonlinearity: pw_const\n"))
	require.ErrorIs(t, err, template.ErrInvalidCoefficients)

	_, err = template.LoadLibrary(strings.NewReader("templates:\n  bad:\n    t_end: -3\n"))
	require.ErrorIs(t, err, template.ErrInvalidTiming)

	_, err = template.LoadLibrary(strings.NewReader("templates:\n  bad:\n    alpha: 1\n"))
	require.Error(t, err)

	lib, err := template.LoadLibrary(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, template.BuiltinNames(), lib.Names())
}

// TestLibraryRoundTrip writes a library and loads it back from a file.
func TestLibraryRoundTrip(t *testing.T) {
	lib, err := template.LoadLibrary(strings.NewReader(libraryYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = lib.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lib.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	again, err := template.LoadLibraryFile(path)
	require.NoError(t, err)
	require.Equal(t, lib.Names(), again.Names())

	for _, name := range lib.Names() {
		a, _ := lib.Get(name)
		b, _ := again.Get(name)
		require.Equal(t, template.SpecOf(a), template.SpecOf(b), name)
	}

	_, err = template.LoadLibraryFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
