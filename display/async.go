// SPDX-License-Identifier: MIT

package display

import (
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/cellnet/matrix"
	"go.uber.org/zap"
)

// DefaultAsyncBuffer is the queue length used when NewAsync gets buffer <= 0.
const DefaultAsyncBuffer = 16

type queued struct {
	frame *matrix.Matrix
	flags Flags
	done  chan struct{} // non-nil for frames delivered synchronously
}

// Async forwards frames to another sink on a dedicated goroutine.
//
// Intermediate frames never block the caller: when the queue is full they
// are dropped and counted. Final frames (Block or Close set) are delivered
// in order after every queued frame, and Show returns only once the wrapped
// sink has handled them, so a blocking viewer still blocks the run that
// produced its last frame.
type Async struct {
	sink    Sink
	queue   chan queued
	stopped chan struct{}
	logger  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// AsyncOption customizes NewAsync.
type AsyncOption func(*Async)

// WithAsyncLogger reports dropped frames at debug level.
func WithAsyncLogger(l *zap.Logger) AsyncOption {
	return func(a *Async) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAsync starts the delivery goroutine. Call Close to stop it.
func NewAsync(sink Sink, buffer int, opts ...AsyncOption) *Async {
	if buffer <= 0 {
		buffer = DefaultAsyncBuffer
	}
	a := &Async{
		sink:    sink,
		queue:   make(chan queued, buffer),
		stopped: make(chan struct{}),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.loop()

	return a
}

func (a *Async) loop() {
	defer close(a.stopped)
	for q := range a.queue {
		a.sink.Show(q.frame, q.flags)
		if q.done != nil {
			close(q.done)
		}
	}
}

// Show enqueues frame. Frames shown after Close are discarded.
func (a *Async) Show(frame *matrix.Matrix, flags Flags) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}

	if !flags.Final() {
		select {
		case a.queue <- queued{frame: frame, flags: flags}:
		default:
			n := a.dropped.Add(1)
			a.logger.Debug("display frame dropped", zap.Int64("dropped", n))
		}
		return
	}

	done := make(chan struct{})
	a.queue <- queued{frame: frame, flags: flags, done: done}
	<-done
}

// Dropped returns the number of intermediate frames discarded so far.
func (a *Async) Dropped() int64 { return a.dropped.Load() }

// Close drains the queue and stops the delivery goroutine. It is safe to
// call more than once.
func (a *Async) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.stopped

	return nil
}
