package logger

import (
	"testing"

	"github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (core.Logger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	observed, logs := observer.New(level)
	return NewZapLoggerFromCore(observed, level), logs
}

func TestZapLoggerLevels(t *testing.T) {
	log, logs := newObservedLogger()

	log.Debug("hidden", nil)
	log.Info("Running schema migrations", map[string]any{"count": 3})
	log.Warn("Database records a migration unknown to this build", map[string]any{"version": int64(99)})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Running schema migrations", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestZapLoggerSetLevel(t *testing.T) {
	log, logs := newObservedLogger()

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
	log.Debug("probe", map[string]any{"table": "groups"})

	log.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, log.GetLevel())
	log.Warn("dropped", nil)
	log.Error("Migration failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "probe", entries[0].Message)
	assert.Equal(t, "Migration failed", entries[1].Message)
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()

	log.SetLevel(core.LogLevelWarn)
	log.Error("ignored", map[string]any{"error": "boom"})

	assert.Equal(t, core.LogLevelWarn, log.GetLevel())
	assert.NoError(t, log.Flush())
}
