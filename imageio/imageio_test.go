// SPDX-License-Identifier: MIT

package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/cellnet/imageio"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// sample is 3×2: white, black, mid-gray / red, green, blue.
func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	img.Set(2, 0, color.NRGBA{R: 51, G: 51, B: 51, A: 255})
	img.Set(0, 1, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{G: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})

	return img
}

func checkSample(t *testing.T, m *matrix.Matrix) {
	t.Helper()
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())
	want := [][]float64{
		{-1, 1, 0.6},
		{0.2126*255/-127.5 + 1, 0.7152*255/-127.5 + 1, 0.0722*255/-127.5 + 1},
	}
	got := m.Rows()
	for y := range want {
		for x := range want[y] {
			assert.InDelta(t, want[y][x], got[y][x], 1e-9, "(%d,%d)", x, y)
		}
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	m, err := imageio.DecodeReader(&buf)
	require.NoError(t, err)
	checkSample(t, m)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, sample()))
	m, err := imageio.DecodeReader(&buf)
	require.NoError(t, err)
	checkSample(t, m)
}

// TestDecodeJPEG uses flat images only; JPEG is lossy.
func TestDecodeJPEG(t *testing.T) {
	for _, c := range []struct {
		gray uint8
		want float64
	}{{0, 1}, {255, -1}} {
		img := image.NewGray(image.Rect(0, 0, 8, 8))
		for i := range img.Pix {
			img.Pix[i] = c.gray
		}
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
		m, err := imageio.DecodeReader(&buf)
		require.NoError(t, err)
		for _, v := range m.Values() {
			require.InDelta(t, c.want, v, 0.02)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := imageio.DecodeReader(strings.NewReader("definitely not an image"))
	require.ErrorIs(t, err, imageio.ErrUnsupportedFormat)

	// valid PNG signature, truncated body
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	_, err = imageio.DecodeReader(bytes.NewReader(buf.Bytes()[:20]))
	require.ErrorIs(t, err, imageio.ErrIO)

	_, err = imageio.Decode(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, imageio.ErrIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestGray(t *testing.T) {
	assert.Equal(t, uint8(0), imageio.Gray(1))
	assert.Equal(t, uint8(254), imageio.Gray(-1))
	assert.Equal(t, uint8(127), imageio.Gray(0))
	assert.Equal(t, uint8(0), imageio.Gray(5))
	assert.Equal(t, uint8(254), imageio.Gray(-5))
}

// TestEncodeRoundTrip writes a PNG file and reads it back; black survives
// exactly, white comes back as gray 254.
func TestEncodeRoundTrip(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, -1}, {0, 3}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, imageio.Encode(m, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "expected 8-bit grayscale, got %T", img)
	assert.Equal(t, []uint8{0, 254, 127, 0}, gray.Pix)

	back, err := imageio.Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, back.Values()[0])
	assert.InDelta(t, 254/-127.5+1, back.Values()[1], 1e-12)
}

func TestEncodeErrors(t *testing.T) {
	m := matrix.MustNew(2, 2)
	err := imageio.Encode(m, filepath.Join(t.TempDir(), "no", "such", "dir.png"))
	require.ErrorIs(t, err, imageio.ErrIO)

	err = imageio.EncodeWriter(m, failingWriter{})
	require.ErrorIs(t, err, imageio.ErrIO)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestLoadAddsHalo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sample()))
	require.NoError(t, f.Close())

	m, err := imageio.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, m.Width())
	require.Equal(t, 4, m.Height())
	v, err := m.At(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-12)
	v, err = m.At(0, 0)
	require.NoError(t, err)
	assert.Zero(t, v)
}
