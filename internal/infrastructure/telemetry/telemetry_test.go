package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestConfigFrom_SignalsNeedTracingEnabled(t *testing.T) {
	cfg := ConfigFrom(config.TelemetryConfig{
		Enabled:        false,
		MetricsEnabled: true,
		LogsEnabled:    true,
		ServiceName:    "event-saas",
	})
	assert.False(t, cfg.MetricsEnabled)
	assert.False(t, cfg.LogsEnabled)

	cfg = ConfigFrom(config.TelemetryConfig{Enabled: true, MetricsEnabled: true})
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.LogsEnabled)
}

func TestProviders_Disabled(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)
	cfg := Config{ServiceName: "event-saas"}

	tp, err := NewTracerProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.Same(t, log, lp.Bridge(log, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := tp.Tracer(TracerName)
	approve := func(ctx context.Context) (err error) {
		_, span := tracer.Start(ctx, "payment.approve")
		defer End(span, &err)
		SetAttributes(span, SpanAttrBillingCycle, "yearly", 42, "ignored", "days", 365)
		return errors.New("payment request is not pending")
	}
	require.Error(t, approve(context.Background()))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "payment.approve", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, map[string]string{SpanAttrBillingCycle: "yearly", "days": "365"}, attrs)
}

func TestStartServiceSpan_GlobalNoop(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "event", "create", SpanAttrUserID, "u-1")
	defer span.End()
	assert.NotNil(t, ctx)
	RecordError(span, nil)
	RecordError(nil, errors.New("x"))
}

type recordingProcessor struct {
	mu      sync.Mutex
	records []string
}

func (p *recordingProcessor) OnEmit(_ context.Context, r *sdklog.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, r.Body().AsString())
	return nil
}
func (p *recordingProcessor) Enabled(context.Context, sdklog.EnabledParameters) bool { return true }
func (p *recordingProcessor) Shutdown(context.Context) error                        { return nil }
func (p *recordingProcessor) ForceFlush(context.Context) error                      { return nil }

func TestLoggerProvider_Bridge(t *testing.T) {
	processor := &recordingProcessor{}
	lp := &LoggerProvider{
		provider:    sdklog.NewLoggerProvider(sdklog.WithProcessor(processor)),
		logger:      zap.NewNop(),
		serviceName: "event-saas",
	}
	defer func() { _ = lp.Shutdown(context.Background()) }()

	bridged := lp.Bridge(zap.NewNop(), zapcore.WarnLevel)
	bridged.Info("plan cache miss")
	bridged.Warn("redis unavailable")
	require.NoError(t, lp.provider.ForceFlush(context.Background()))

	assert.Eventually(t, func() bool {
		processor.mu.Lock()
		defer processor.mu.Unlock()
		return len(processor.records) == 1 && processor.records[0] == "redis unavailable"
	}, time.Second, 10*time.Millisecond)
}
