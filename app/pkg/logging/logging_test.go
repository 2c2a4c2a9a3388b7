package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"backend/insurance-platform/app/pkg/logging"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

func TestLevelFromMode(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	logger, err := logging.NewLogConfig("[test]", ctxutil.AppModeTest).NewLogging()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestLevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	logger, err := logging.NewLogConfig("[test]", ctxutil.AppModeProd).NewLogging()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	logging.FromContext(context.Background(), logger).Info("plain")
	logging.FromContext(ctxutil.SetRequestID(context.Background(), "req-7"), logger).Info("tagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].ContextMap())
	assert.Equal(t, "req-7", entries[1].ContextMap()["request_id"])
}
