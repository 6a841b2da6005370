package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// PlanRepository persists the plan catalog
type PlanRepository interface {
	// Save inserts or updates a plan
	Save(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByName(ctx context.Context, name string) (*Plan, error)
	// ListActive returns active plans ordered by sort order
	ListActive(ctx context.Context) ([]*Plan, error)
}

// PaymentRequestFilter narrows the staff listing. Filters keys: status, user_id.
type PaymentRequestFilter struct {
	shared.Filter
}

// PaymentRequestRepository persists payment requests
type PaymentRequestRepository interface {
	Create(ctx context.Context, req *PaymentRequest) error
	// Transition saves a reviewed request only if its stored status is still
	// from. A lost race surfaces as ErrInvalidState.
	Transition(ctx context.Context, req *PaymentRequest, from PaymentRequestStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentRequest, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PaymentRequest, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentRequest, error)
	FindAll(ctx context.Context, filter PaymentRequestFilter) ([]*PaymentRequest, int64, error)
}

// SubscriptionRepository persists the per-user subscription singleton
type SubscriptionRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserSubscription, error)
	// Upsert writes the user's subscription keyed by user ID. On return the
	// subscription carries the ID of the stored row.
	Upsert(ctx context.Context, sub *UserSubscription) error
	Update(ctx context.Context, sub *UserSubscription) error
}

// PaymentHistoryRepository appends to the payment ledger. There is no update.
type PaymentHistoryRepository interface {
	Create(ctx context.Context, entry *PaymentHistory) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentHistory, error)
	CountByPaymentRequest(ctx context.Context, paymentRequestID uuid.UUID) (int64, error)
}
