package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*LoggerAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core)), logs
}

func TestLoggerAdapter_Levels(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.Debug("debug msg", "k", 1)
	log.Info("info msg")
	log.Warn("warn msg")
	log.Error("error msg")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(1), entries[0].ContextMap()["k"])
	assert.Equal(t, "error msg", entries[3].Message)
}

func TestLoggerAdapter_WithFieldDoesNotLeak(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	child := log.WithField("node", "42")
	child.Info("child")
	log.Info("parent")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "42", entries[0].ContextMap()["node"])
	assert.NotContains(t, entries[1].ContextMap(), "node")
}

func TestLoggerAdapter_WithFields(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.WithFields(map[string]any{"b": "2", "a": "1"}).Info("msg")

	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "1", ctx["a"])
	assert.Equal(t, "2", ctx["b"])
}

func TestNewLoggerAdapter_InvalidLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerAdapter_Default(t *testing.T) {
	log, err := NewLoggerAdapter(DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}
