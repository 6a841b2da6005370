package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// SubscriptionStatus is the state of a user's subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionPending   SubscriptionStatus = "pending"
)

// UserSubscription is the single subscription row of a user.
// Approvals update it in place; it is never duplicated.
type UserSubscription struct {
	shared.BaseAggregateRoot
	UserID             uuid.UUID
	PlanID             uuid.UUID
	BillingCycle       BillingCycle
	Status             SubscriptionStatus
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelledAt        *time.Time
}

// NewUserSubscription creates an empty pending subscription for a user
func NewUserSubscription(userID uuid.UUID) *UserSubscription {
	return &UserSubscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            SubscriptionPending,
	}
}

// Activate points the subscription at a plan for a new period
func (s *UserSubscription) Activate(planID uuid.UUID, cycle BillingCycle, start, end time.Time) {
	s.PlanID = planID
	s.BillingCycle = cycle
	s.Status = SubscriptionActive
	s.CurrentPeriodStart = start
	s.CurrentPeriodEnd = end
	s.CancelledAt = nil
	s.UpdatedAt = start
	s.IncrementVersion()
}

// Cancel stops the subscription. The period end is kept as history.
func (s *UserSubscription) Cancel(now time.Time) {
	if s.Status == SubscriptionCancelled {
		return
	}
	s.Status = SubscriptionCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewSubscriptionCancelledEvent(s))
}

// IsActive is status active and now before the period end
func (s *UserSubscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && now.Before(s.CurrentPeriodEnd)
}

// DaysRemaining returns whole days left in an active period, or 0
func (s *UserSubscription) DaysRemaining(now time.Time) int {
	if !s.IsActive(now) {
		return 0
	}
	return int(s.CurrentPeriodEnd.Sub(now).Hours() / 24)
}
