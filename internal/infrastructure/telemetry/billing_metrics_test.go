package telemetry_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/event"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestBillingMetrics_CountsBusEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewBillingMetrics(provider.Meter("billing"))
	require.NoError(t, err)

	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(metrics)

	adminID := uuid.New()
	pr := &billing.PaymentRequest{
		UserID:        uuid.New(),
		PlanID:        uuid.New(),
		Amount:        decimal.RequireFromString("290.00"),
		BillingCycle:  billing.BillingCycleYearly,
		PaymentMethod: billing.PaymentMethodBkash,
		VerifiedBy:    &adminID,
	}
	pr.ID = uuid.New()
	sub := &billing.UserSubscription{UserID: pr.UserID}
	sub.ID = uuid.New()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx,
		billing.NewPaymentRequestSubmittedEvent(pr),
		billing.NewPaymentRequestApprovedEvent(pr),
		billing.NewPaymentRequestRejectedEvent(pr),
		billing.NewSubscriptionCancelledEvent(sub),
	))

	data := collect(t, reader)

	submitted := data["billing.payment_requests.submitted"].(metricdata.Sum[int64])
	require.Len(t, submitted.DataPoints, 1)
	assert.EqualValues(t, 1, submitted.DataPoints[0].Value)
	method, _ := submitted.DataPoints[0].Attributes.Value(telemetry.AttrPaymentMethod)
	assert.Equal(t, "bkash", method.AsString())

	decided := data["billing.payment_requests.decided"].(metricdata.Sum[int64])
	assert.Len(t, decided.DataPoints, 2, "one series per outcome")

	revenue := data["billing.revenue.approved"].(metricdata.Sum[float64])
	require.Len(t, revenue.DataPoints, 1)
	assert.InDelta(t, 290.0, revenue.DataPoints[0].Value, 0.001)

	cancelled := data["billing.subscriptions.cancelled"].(metricdata.Sum[int64])
	assert.EqualValues(t, 1, cancelled.DataPoints[0].Value)
}
