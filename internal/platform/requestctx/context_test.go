package requestctx

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerFallsBackToNop(t *testing.T) {
	require.NotNil(t, Logger(context.Background()))
	require.False(t, HasLogger(context.Background()))

	ctx := WithLogger(context.Background(), nil)
	require.False(t, HasLogger(ctx))

	logger := zap.NewExample()
	ctx = WithLogger(ctx, logger)
	require.True(t, HasLogger(ctx))
	require.Same(t, logger, Logger(ctx))
}

func TestTraceDoesNotLeakToParent(t *testing.T) {
	logger := zap.NewExample()
	parent := WithLogger(context.Background(), logger)
	child := WithTrace(parent, TraceInfo{ProjectID: "sheraa-prod", TraceID: "abc"})

	_, ok := Trace(parent)
	require.False(t, ok)

	info, ok := Trace(child)
	require.True(t, ok)
	require.Equal(t, "projects/sheraa-prod/traces/abc", info.Resource())
	require.Same(t, logger, Logger(child), "the logger survives a trace write")
}

func TestCorrelate(t *testing.T) {
	require.Equal(t, Correlation{}, Correlate(context.Background()))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = WithTrace(ctx, TraceInfo{TraceID: "abc"})
	require.Equal(t, Correlation{RequestID: "req-1", TraceID: "abc"}, Correlate(ctx))

	require.Empty(t, TraceInfo{TraceID: "abc"}.Resource())
}
