// SPDX-License-Identifier: MIT

// Package display delivers frames streamed by the integrator to a viewer.
//
// A Sink receives interior-cropped frames together with Flags. Intermediate
// frames carry only Show; the last frame of a run may additionally ask the
// sink to Block until the viewer dismisses it and to Close the viewer
// afterwards. Sinks have no return value: a viewer that fails must not abort
// the simulation that feeds it.
//
// Implementations:
//
//	Nop       discards everything
//	Recorder  keeps a clone of every frame (tests, post-processing)
//	Async     decouples a slow sink from the integration loop
//	GIF       renders an animated grayscale GIF
//	Terminal  interactive bubbletea view with a black-count plot
package display

import (
	"sync"

	"github.com/katalvlaran/cellnet/matrix"
)

// Flags control how a sink treats a frame.
type Flags struct {
	Show  bool // display the frame
	Block bool // wait until the viewer dismisses it
	Close bool // tear the viewer down after this frame
}

// Final reports whether the frame ends a displayed sequence.
func (f Flags) Final() bool { return f.Block || f.Close }

// Sink consumes frames. Implementations must not retain frame beyond Show
// unless they own it; callers hand over a fresh matrix per call.
type Sink interface {
	Show(frame *matrix.Matrix, flags Flags)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(frame *matrix.Matrix, flags Flags)

// Show calls f.
func (f SinkFunc) Show(frame *matrix.Matrix, flags Flags) { f(frame, flags) }

// Nop is a Sink that discards every frame.
type Nop struct{}

// Show does nothing.
func (Nop) Show(*matrix.Matrix, Flags) {}

// Recorder keeps a clone of every frame it is shown. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	frames []*matrix.Matrix
	flags  []Flags
}

// Show records a clone of frame.
func (r *Recorder) Show(frame *matrix.Matrix, flags Flags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame.Clone())
	r.flags = append(r.flags, flags)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.frames)
}

// Frames returns the recorded frames in arrival order.
func (r *Recorder) Frames() []*matrix.Matrix {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*matrix.Matrix(nil), r.frames...)
}

// Flags returns the flags of the recorded frames in arrival order.
func (r *Recorder) Flags() []Flags {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Flags(nil), r.flags...)
}

// Last returns the most recent frame and its flags; ok is false when empty.
func (r *Recorder) Last() (frame *matrix.Matrix, flags Flags, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil, Flags{}, false
	}
	i := len(r.frames) - 1

	return r.frames[i], r.flags[i], true
}

// Reset forgets every recorded frame.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames, r.flags = nil, nil
}

// Shade maps a cell value to an 8-bit gray level for display:
// -1 (white) -> 255, +1 (black) -> 0, clamped to [0, 255].
func Shade(v float64) uint8 {
	g := int((v - 1) * -127.5)
	if g > 255 {
		return 255
	}
	if g < 0 {
		return 0
	}

	return uint8(g)
}
