package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLoggerEmitsFields(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	logger.Info("analysis complete",
		String("path", "rules"),
		Int("findings", 4),
		Duration("elapsed", 30*time.Millisecond),
		Bool("enriched", true),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "analysis complete", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "rules", fields["path"])
	assert.EqualValues(t, 4, fields["findings"])
	assert.Equal(t, true, fields["enriched"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")
	logger.Error("also visible")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "visible", logs.All()[0].Message)
}

func TestWithAttachesFieldsToChildren(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	child := logger.With(String("request_id", "abc-123"))
	child.Info("first")
	child.Info("second")
	logger.Info("bare")

	all := logs.All()
	require.Len(t, all, 3)
	assert.Equal(t, "abc-123", all[0].ContextMap()["request_id"])
	assert.Equal(t, "abc-123", all[1].ContextMap()["request_id"])
	assert.NotContains(t, all[2].ContextMap(), "request_id")
}

func TestErrField(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	logger.Error("failed", Err(errors.New("boom")))
	logger.Error("no cause", Err(nil))

	all := logs.All()
	assert.Equal(t, "boom", all[0].ContextMap()["error"])
	assert.Equal(t, "<nil>", all[1].ContextMap()["error"])
}

func TestNewLoggerDefaults(t *testing.T) {
	logger, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = NewLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestDefaultIsReplaceable(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	logger, logs := newObservedLogger(zapcore.InfoLevel)
	SetDefault(logger)
	Default().Info("via default")

	require.Equal(t, 1, logs.Len())

	// A nil argument must leave the default untouched.
	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestNopLoggerDiscards(t *testing.T) {
	nop := NewNopLogger()
	nop.Info("dropped")
	nop.With(String("k", "v")).Named("x").Error("dropped too")
}

//Personal.AI order the ending
