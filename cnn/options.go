// SPDX-License-Identifier: MIT
// Package: cellnet/cnn
//
// options.go — functional options for the integrator.
//
// Contract:
//   • Defaults reproduce the classic engine: RK4, saturation after the last
//     step, one worker, no sink, no logging.
//   • WithX constructors panic on nonsensical values (programmer error).
//   • Parse helpers return errors; they serve config files and flags.

package cnn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cellnet/display"
	"go.uber.org/zap"
)

// Scheme selects the explicit integration method.
type Scheme int

const (
	// RK4 is classic fourth-order Runge-Kutta evaluated per cell: stages 2..4
	// perturb only the cell itself, neighbours keep their settled values.
	RK4 Scheme = iota
	// Euler is the forward Euler step x + dt*f.
	Euler
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case RK4:
		return "rk4"
	case Euler:
		return "euler"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme resolves "rk4" or "euler" (case-insensitive; empty means RK4).
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rk4":
		return RK4, nil
	case "euler":
		return Euler, nil
	default:
		return 0, fmt.Errorf("cnn: unknown scheme %q", s)
	}
}

// Saturation selects when states are clamped to [-1, 1].
type Saturation int

const (
	// SaturateFinal clamps the whole matrix once, after the last step.
	SaturateFinal Saturation = iota
	// SaturateEachStep clamps after every step.
	SaturateEachStep
	// SaturateNone never clamps.
	SaturateNone
)

// String returns the policy name.
func (s Saturation) String() string {
	switch s {
	case SaturateFinal:
		return "final"
	case SaturateEachStep:
		return "step"
	case SaturateNone:
		return "none"
	default:
		return fmt.Sprintf("Saturation(%d)", int(s))
	}
}

// ParseSaturation resolves "final", "step" or "none" (empty means final).
func ParseSaturation(s string) (Saturation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "final":
		return SaturateFinal, nil
	case "step", "each":
		return SaturateEachStep, nil
	case "none":
		return SaturateNone, nil
	default:
		return 0, fmt.Errorf("cnn: unknown saturation %q", s)
	}
}

// Step describes one completed time step.
type Step struct {
	Index    int     // 1-based step number
	Time     float64 // simulated time reached
	MaxDelta float64 // largest |x(t+dt) - x(t)| over interior cells
}

// Option customizes an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	workers    int
	scheme     Scheme
	saturation Saturation
	logger     *zap.Logger
	sink       display.Sink
	observer   func(Step)
}

func newEngineConfig(opts ...Option) engineConfig {
	cfg := engineConfig{
		workers:    1,
		scheme:     RK4,
		saturation: SaturateFinal,
		logger:     zap.NewNop(),
		sink:       display.Nop{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithWorkers splits every step into n row bands computed concurrently.
// Results do not depend on n. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("cnn: WithWorkers(%d): need at least one worker", n))
	}
	return func(c *engineConfig) { c.workers = n }
}

// WithScheme selects the integration method.
func WithScheme(s Scheme) Option {
	if s != RK4 && s != Euler {
		panic(fmt.Sprintf("cnn: WithScheme(%d): unknown scheme", int(s)))
	}
	return func(c *engineConfig) { c.scheme = s }
}

// WithSaturation selects the clamping policy.
func WithSaturation(s Saturation) Option {
	if s < SaturateFinal || s > SaturateNone {
		panic(fmt.Sprintf("cnn: WithSaturation(%d): unknown policy", int(s)))
	}
	return func(c *engineConfig) { c.saturation = s }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSink receives streamed frames of requests with Stream set.
func WithSink(s display.Sink) Option {
	return func(c *engineConfig) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithObserver is called synchronously after every step.
func WithObserver(fn func(Step)) Option {
	return func(c *engineConfig) { c.observer = fn }
}
