package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelSilent,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	scoped := logger.With(String("component", "engine"))
	scoped.Debug("evaluated",
		Int("entities", 3),
		Bool("indexed", true),
		Duration("elapsed", time.Millisecond),
		Strings("stages", []string{"index", "match"}),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "evaluated", entry.Message)

	ctx := entry.ContextMap()
	require.Equal(t, "engine", ctx["component"])
	require.EqualValues(t, 3, ctx["entities"])
	require.Equal(t, true, ctx["indexed"])
	require.Equal(t, "boom", ctx["error"])
}

func TestLoggerEnabled(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	require.False(t, logger.Enabled(LevelDebug))
	require.True(t, logger.Enabled(LevelError))

	logger.Log(LevelInfo, "dropped")
	logger.Log(LevelError, "kept")
	require.Equal(t, 1, logs.Len())
	require.NoError(t, logger.Sync())

	nop := NewNop()
	require.False(t, nop.Enabled(LevelError))
	nop.Error("nothing")
}
