package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestWithContext(t *testing.T) {
	logger, _ := observedLogger()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	assert.NotNil(t, FromContext(ctx))
}

func TestOrgAndItemID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetOrgID(ctx))
	assert.Empty(t, GetItemID(ctx))

	ctx = WithOrgID(ctx, "acme")
	ctx = WithItemID(ctx, "urn:app:org:acme:action:550e8400-e29b-41d4-a716-446655440000")
	assert.Equal(t, "acme", GetOrgID(ctx))
	assert.Equal(t, "urn:app:org:acme:action:550e8400-e29b-41d4-a716-446655440000", GetItemID(ctx))
}

func TestGetTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(spanContext(t)))
}

func TestContextLogger_EnrichesEntries(t *testing.T) {
	logger, logs := observedLogger()
	ctx := WithContext(spanContext(t), logger)
	ctx = WithOrgID(ctx, "acme")
	ctx = WithItemID(ctx, "urn:app:action:550e8400-e29b-41d4-a716-446655440000")

	L(ctx).Info("item created", zap.String("bucket", "inbox"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "acme", fields["org_id"])
	assert.Equal(t, "urn:app:action:550e8400-e29b-41d4-a716-446655440000", fields["item_id"])
	assert.Equal(t, "inbox", fields["bucket"])
}

func TestContextLogger_EmptyContext(t *testing.T) {
	logger, logs := observedLogger()

	WithLogger(context.Background(), logger).Warn("no context")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Empty(t, entry.Context)
}

func TestContextLogger_Levels(t *testing.T) {
	logger, logs := observedLogger()
	cl := WithLogger(context.Background(), logger).With(zap.String("component", "validator"))

	cl.Debug("d")
	cl.Info("i")
	cl.Warn("w")
	cl.Error("e")
	cl.Zap().Info("z")

	require.Equal(t, 5, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "validator", entry.ContextMap()["component"])
	}
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestContextLogger_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithLogger(context.Background(), nil).Info("dropped")
	})
}
