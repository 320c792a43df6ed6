// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/cellnet/cnn"
	"github.com/katalvlaran/cellnet/sequence"
	"github.com/katalvlaran/cellnet/template"
	"go.uber.org/zap"
)

// EngineOptions translates the engine section into cnn options. Call
// Validate first; unparsable values are reported again here.
func (c *Config) EngineOptions(logger *zap.Logger) ([]cnn.Option, error) {
	scheme, err := cnn.ParseScheme(c.Engine.Scheme)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	sat, err := cnn.ParseSaturation(c.Engine.Saturation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Engine.Workers < 1 {
		return nil, fmt.Errorf("%w: engine.workers %d < 1", ErrInvalidConfig, c.Engine.Workers)
	}

	return []cnn.Option{
		cnn.WithScheme(scheme),
		cnn.WithSaturation(sat),
		cnn.WithWorkers(c.Engine.Workers),
		cnn.WithLogger(logger),
	}, nil
}

// Steps resolves run.steps against lib.
func (c *Config) Steps(lib *template.Library) ([]sequence.Step, error) {
	steps := make([]sequence.Step, 0, len(c.Run.Steps))
	for i, sc := range c.Run.Steps {
		tpl, err := lib.Get(sc.Template)
		if err != nil {
			return nil, fmt.Errorf("config: run.steps[%d]: %w", i, err)
		}
		steps = append(steps, sequence.Step{
			Template: tpl,
			Init:     sequence.ParseRef(sc.Init),
			Input1:   sequence.ParseRef(sc.Input1),
			Input2:   sequence.ParseRef(sc.Input2),
			DT:       sc.DT,
			TEnd:     sc.TEnd,
		})
	}

	return steps, nil
}
