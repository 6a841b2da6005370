package billing

import (
	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypePaymentRequest   = "PaymentRequest"
	AggregateTypeUserSubscription = "UserSubscription"
)

// Billing domain event types
const (
	EventTypePaymentRequestSubmitted = "billing.payment_request.submitted"
	EventTypePaymentRequestApproved  = "billing.payment_request.approved"
	EventTypePaymentRequestRejected  = "billing.payment_request.rejected"
	EventTypeSubscriptionCancelled   = "billing.subscription.cancelled"
)

// PaymentRequestSubmittedEvent is raised when a user submits a payment claim
type PaymentRequestSubmittedEvent struct {
	shared.BaseDomainEvent
	PlanID        uuid.UUID       `json:"plan_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// NewPaymentRequestSubmittedEvent creates a PaymentRequestSubmittedEvent
func NewPaymentRequestSubmittedEvent(r *PaymentRequest) *PaymentRequestSubmittedEvent {
	return &PaymentRequestSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRequestSubmitted, AggregateTypePaymentRequest, r.ID, r.UserID),
		PlanID:          r.PlanID,
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod,
	}
}

// PaymentRequestApprovedEvent is raised when staff approve a payment claim
type PaymentRequestApprovedEvent struct {
	shared.BaseDomainEvent
	PlanID       uuid.UUID       `json:"plan_id"`
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle BillingCycle    `json:"billing_cycle"`
	ApprovedBy   uuid.UUID       `json:"approved_by"`
}

// NewPaymentRequestApprovedEvent creates a PaymentRequestApprovedEvent
func NewPaymentRequestApprovedEvent(r *PaymentRequest) *PaymentRequestApprovedEvent {
	e := &PaymentRequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRequestApproved, AggregateTypePaymentRequest, r.ID, r.UserID),
		PlanID:          r.PlanID,
		Amount:          r.Amount,
		BillingCycle:    r.BillingCycle,
	}
	if r.VerifiedBy != nil {
		e.ApprovedBy = *r.VerifiedBy
	}
	return e
}

// PaymentRequestRejectedEvent is raised when staff reject a payment claim
type PaymentRequestRejectedEvent struct {
	shared.BaseDomainEvent
	AdminNotes string `json:"admin_notes"`
}

// NewPaymentRequestRejectedEvent creates a PaymentRequestRejectedEvent
func NewPaymentRequestRejectedEvent(r *PaymentRequest) *PaymentRequestRejectedEvent {
	return &PaymentRequestRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRequestRejected, AggregateTypePaymentRequest, r.ID, r.UserID),
		AdminNotes:      r.AdminNotes,
	}
}

// SubscriptionCancelledEvent is raised when a user cancels
type SubscriptionCancelledEvent struct {
	shared.BaseDomainEvent
	PlanID uuid.UUID `json:"plan_id"`
}

// NewSubscriptionCancelledEvent creates a SubscriptionCancelledEvent
func NewSubscriptionCancelledEvent(s *UserSubscription) *SubscriptionCancelledEvent {
	return &SubscriptionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCancelled, AggregateTypeUserSubscription, s.ID, s.UserID),
		PlanID:          s.PlanID,
	}
}
