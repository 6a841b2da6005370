package billing

import (
	"context"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditHandler writes one audit log line per committed billing event
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new handler for billing audit logging
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.Named("billing.audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditHandler) EventTypes() []string {
	return []string{
		billing.EventTypePaymentRequestSubmitted,
		billing.EventTypePaymentRequestApproved,
		billing.EventTypePaymentRequestRejected,
		billing.EventTypeSubscriptionCancelled,
	}
}

// Handle logs the event with its billing specific fields
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("user_id", event.UserID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *billing.PaymentRequestSubmittedEvent:
		fields = append(fields,
			zap.String("plan_id", e.PlanID.String()),
			zap.String("amount", e.Amount.StringFixed(2)),
			zap.String("payment_method", string(e.PaymentMethod)))
	case *billing.PaymentRequestApprovedEvent:
		fields = append(fields,
			zap.String("plan_id", e.PlanID.String()),
			zap.String("amount", e.Amount.StringFixed(2)),
			zap.String("billing_cycle", string(e.BillingCycle)),
			zap.String("approved_by", e.ApprovedBy.String()))
	case *billing.PaymentRequestRejectedEvent:
		fields = append(fields, zap.String("admin_notes", e.AdminNotes))
	case *billing.SubscriptionCancelledEvent:
		fields = append(fields, zap.String("plan_id", e.PlanID.String()))
	}

	h.logger.Info("billing event", fields...)
	return nil
}

// Ensure AuditHandler implements EventHandler
var _ shared.EventHandler = (*AuditHandler)(nil)
