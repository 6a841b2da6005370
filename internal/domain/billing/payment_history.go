package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentHistoryStatus is the outcome recorded in the ledger
type PaymentHistoryStatus string

const (
	PaymentHistoryCompleted PaymentHistoryStatus = "completed"
)

// PaymentHistory is an immutable ledger entry written once per approval.
// Corrections are new entries, never updates.
type PaymentHistory struct {
	shared.BaseEntity
	UserID           uuid.UUID
	SubscriptionID   uuid.UUID
	PaymentRequestID uuid.UUID
	PlanID           uuid.UUID
	Amount           decimal.Decimal
	PaymentMethod    PaymentMethod
	TransactionID    string
	BillingCycle     BillingCycle
	Status           PaymentHistoryStatus
	PeriodStart      time.Time
	PeriodEnd        time.Time
}

// NewPaymentHistory records an approved request against the subscription it activated
func NewPaymentHistory(req *PaymentRequest, sub *UserSubscription) *PaymentHistory {
	return &PaymentHistory{
		BaseEntity:       shared.NewBaseEntity(),
		UserID:           req.UserID,
		SubscriptionID:   sub.ID,
		PaymentRequestID: req.ID,
		PlanID:           req.PlanID,
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		TransactionID:    req.TransactionID,
		BillingCycle:     req.BillingCycle,
		Status:           PaymentHistoryCompleted,
		PeriodStart:      sub.CurrentPeriodStart,
		PeriodEnd:        sub.CurrentPeriodEnd,
	}
}
