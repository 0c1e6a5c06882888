package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/hospital-console/internal/config"
	"github.com/spec-kit/hospital-console/internal/observability"
)

func TestNewLoggerLevel(t *testing.T) {
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "DEBUG"}, config.AppConfig{Name: "hc"})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "chatty"}, config.AppConfig{Env: "production"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
