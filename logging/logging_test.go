// SPDX-License-Identifier: MIT

package logging

import (
	"testing"

	"github.com/katalvlaran/cellnet/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			logger, err := New(config.LoggingConfig{Level: level, Format: format})
			require.NoError(t, err, "%s/%s", format, level)
			assert.Equal(t, level == "debug", logger.Core().Enabled(zap.DebugLevel), "%s/%s", format, level)
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		}
	}
}

func TestNewDefaultConfig(t *testing.T) {
	logger, err := New(config.DefaultConfig().Logging)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", Format: "json"})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
