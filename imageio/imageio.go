// SPDX-License-Identifier: MIT

// Package imageio converts raster images to and from cell-state matrices.
//
// Decoding accepts PNG, JPEG and BMP. Every pixel is reduced to its luma
//
//	Y = 0.2126 R + 0.7152 G + 0.0722 B        (8-bit channels, alpha ignored)
//
// and mapped to the cell state Y/-127.5 + 1, so white is -1 and black is +1.
// Encoding writes an 8-bit grayscale PNG with gray = (v-1) * -127 after
// clamping v to [-1, 1]; white therefore encodes as 254.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG
	"image/png"
	"io"
	"os"

	"github.com/katalvlaran/cellnet/matrix"
	_ "golang.org/x/image/bmp" // register BMP
)

// Decode reads the image at path.
func Decode(path string) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open "+path, err)
	}
	defer f.Close()

	m, err := DecodeReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// DecodeReader decodes an image stream of any registered format.
func DecodeReader(r io.Reader) (*matrix.Matrix, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("imageio: %w", ErrUnsupportedFormat)
		}
		return nil, ioError("decode", err)
	}

	return FromImage(img), nil
}

// FromImage converts img to a matrix of the same size.
func FromImage(img image.Image) *matrix.Matrix {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := matrix.MustNew(w, h)
	vals := m.Values()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			vals[y*w+x] = Luma(c.R, c.G, c.B)/-127.5 + 1
		}
	}

	return m
}

// Luma returns the Rec. 709 luma of an 8-bit RGB triple.
func Luma(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// Gray maps a cell state to the gray level written by Encode.
func Gray(v float64) uint8 {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}

	return uint8((v - 1) * -127)
}

// ToImage renders m as an 8-bit grayscale image.
func ToImage(m *matrix.Matrix) *image.Gray {
	w, h := m.Shape()
	img := image.NewGray(image.Rect(0, 0, w, h))
	vals := m.Values()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			row[x] = Gray(vals[y*w+x])
		}
	}

	return img
}

// EncodeWriter writes m as a grayscale PNG.
func EncodeWriter(m *matrix.Matrix, w io.Writer) error {
	if err := png.Encode(w, ToImage(m)); err != nil {
		return ioError("encode png", err)
	}

	return nil
}

// Encode writes m as a grayscale PNG at path.
func Encode(m *matrix.Matrix, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return ioError("create "+path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = ioError("close "+path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = EncodeWriter(m, bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return ioError("write "+path, err)
	}

	return nil
}

// Load decodes the image at path and adds the one-ring halo every
// simulation expects.
func Load(path string) (*matrix.Matrix, error) {
	m, err := Decode(path)
	if err != nil {
		return nil, err
	}

	return m.Expand(1)
}
