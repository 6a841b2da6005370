package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_Missing(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestIDAndUserID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, _ := WithRequestID(context.Background(), zap.New(core), "req-42")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user-7")

	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Equal(t, "user-7", GetUserID(ctx))

	L(ctx).Info("event created")
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "user-7", fields["user_id"])
}

func TestWithLogger_AddsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := context.WithValue(context.Background(), requestIDKey, "req-1")

	WithLogger(ctx, zap.New(core)).With(zap.String("plan", "pro")).Info("plan cached")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "pro", fields["plan"])
	assert.NotContains(t, fields, "user_id")
}

func TestContextLogger_TraceFields(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "approve")
	defer span.End()

	core, logs := observer.New(zapcore.InfoLevel)
	ctx = WithContext(ctx, zap.New(core))
	L(ctx).Info("approved")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestContextLogger_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithLogger(context.Background(), nil).With(zap.Int("n", 1)).Warn("nothing")
	})
}
