// SPDX-License-Identifier: MIT

// Package logging builds the zap logger used by cnnsim.
package logging

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cellnet/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from cfg: "json" selects the production encoder,
// anything else a console encoder. Output goes to stderr.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w: %w", config.ErrInvalidConfig, err)
	}

	zc := zap.NewProductionConfig()
	if !strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}

	return logger, nil
}
