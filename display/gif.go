// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"sync"

	"github.com/katalvlaran/cellnet/matrix"
)

// Defaults of the GIF sink.
const (
	DefaultGIFDelay  = 4 // hundredths of a second per frame
	DefaultGIFStride = 1
)

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}

	return p
}()

// GIF records shown frames as an animated grayscale GIF.
type GIF struct {
	mu     sync.Mutex
	delay  int
	stride int
	seen   int
	anim   gif.GIF
}

// GIFOption customizes NewGIF.
type GIFOption func(*GIF)

// WithDelay sets the per-frame delay in hundredths of a second. Panics if d < 0.
func WithDelay(d int) GIFOption {
	if d < 0 {
		panic("display: WithDelay(negative)")
	}
	return func(g *GIF) { g.delay = d }
}

// WithStride keeps only every n-th intermediate frame; final frames are
// always kept. Panics if n < 1.
func WithStride(n int) GIFOption {
	if n < 1 {
		panic("display: WithStride(<1)")
	}
	return func(g *GIF) { g.stride = n }
}

// NewGIF returns an empty recorder.
func NewGIF(opts ...GIFOption) *GIF {
	g := &GIF{delay: DefaultGIFDelay, stride: DefaultGIFStride}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Show appends frame if flags.Show is set.
func (g *GIF) Show(frame *matrix.Matrix, flags Flags) {
	if !flags.Show || frame.Width() == 0 || frame.Height() == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen++
	if !flags.Final() && (g.seen-1)%g.stride != 0 {
		return
	}
	g.anim.Image = append(g.anim.Image, paletted(frame))
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

// Len returns the number of frames recorded so far.
func (g *GIF) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.anim.Image)
}

// WriteTo encodes the animation. An animation without frames is an error.
func (g *GIF) WriteTo(w io.Writer) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.anim.Image) == 0 {
		return 0, fmt.Errorf("display: gif has no frames")
	}
	cw := &countingWriter{w: w}
	if err := gif.EncodeAll(cw, &g.anim); err != nil {
		return cw.n, fmt.Errorf("display: encode gif: %w", err)
	}

	return cw.n, nil
}

// Save writes the animation to path.
func (g *GIF) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("display: create gif: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("display: close gif: %w", cerr)
		}
	}()
	_, err = g.WriteTo(f)

	return err
}

func paletted(m *matrix.Matrix) *image.Paletted {
	w, h := m.Shape()
	img := image.NewPaletted(image.Rect(0, 0, w, h), grayPalette)
	vals := m.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, Shade(vals[y*w+x]))
		}
	}

	return img
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
