package telemetry

import (
	"context"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// BillingMetrics turns billing domain events into counters. It subscribes to
// the event bus like any other handler.
type BillingMetrics struct {
	submitted *Counter
	decided   *Counter
	revenue   *FloatCounter
	cancelled *Counter
}

// NewBillingMetrics registers the billing instruments on meter
func NewBillingMetrics(meter metric.Meter) (*BillingMetrics, error) {
	submitted, err := NewCounter(meter, "billing.payment_requests.submitted",
		"Payment requests submitted by users", "{request}")
	if err != nil {
		return nil, err
	}
	decided, err := NewCounter(meter, "billing.payment_requests.decided",
		"Payment requests approved or rejected by staff", "{request}")
	if err != nil {
		return nil, err
	}
	revenue, err := NewFloatCounter(meter, "billing.revenue.approved",
		"Sum of approved payment amounts", "{currency}")
	if err != nil {
		return nil, err
	}
	cancelled, err := NewCounter(meter, "billing.subscriptions.cancelled",
		"Subscriptions cancelled by their owners", "{subscription}")
	if err != nil {
		return nil, err
	}
	return &BillingMetrics{submitted: submitted, decided: decided, revenue: revenue, cancelled: cancelled}, nil
}

// EventTypes implements shared.EventHandler
func (m *BillingMetrics) EventTypes() []string {
	return []string{
		billing.EventTypePaymentRequestSubmitted,
		billing.EventTypePaymentRequestApproved,
		billing.EventTypePaymentRequestRejected,
		billing.EventTypeSubscriptionCancelled,
	}
}

// Handle implements shared.EventHandler
func (m *BillingMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *billing.PaymentRequestSubmittedEvent:
		m.submitted.Inc(ctx, AttrPaymentMethod.String(string(e.PaymentMethod)))
	case *billing.PaymentRequestApprovedEvent:
		m.decided.Inc(ctx, AttrOutcome.String("approved"))
		m.revenue.Add(ctx, e.Amount.InexactFloat64(), AttrBillingCycle.String(string(e.BillingCycle)))
	case *billing.PaymentRequestRejectedEvent:
		m.decided.Inc(ctx, AttrOutcome.String("rejected"))
	case *billing.SubscriptionCancelledEvent:
		m.cancelled.Inc(ctx)
	}
	return nil
}

var _ shared.EventHandler = (*BillingMetrics)(nil)
