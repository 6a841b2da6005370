package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"go.uber.org/zap"
)

// SubscriptionService exposes a user's subscription and self-service cancel
type SubscriptionService struct {
	subscriptions billing.SubscriptionRepository
	plans         billing.PlanRepository
	users         identity.UserRepository
	txScope       TransactionScope
	publisher     shared.EventPublisher
	freePlanName  string
	logger        *zap.Logger
	now           func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService. publisher may be nil.
func NewSubscriptionService(
	subscriptions billing.SubscriptionRepository,
	plans billing.PlanRepository,
	users identity.UserRepository,
	txScope TransactionScope,
	publisher shared.EventPublisher,
	freePlanName string,
	logger *zap.Logger,
) *SubscriptionService {
	if freePlanName == "" {
		freePlanName = identity.FreePlanName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{
		subscriptions: subscriptions,
		plans:         plans,
		users:         users,
		txScope:       txScope,
		publisher:     publisher,
		freePlanName:  freePlanName,
		logger:        logger,
		now:           time.Now,
	}
}

// Current returns the caller's subscription, or a null subscription and the
// plan tag when the user never had one
func (s *SubscriptionService) Current(ctx context.Context, userID uuid.UUID) (*SubscriptionStatusResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &SubscriptionStatusResponse{PlanName: user.SubscriptionPlan}

	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	var plan *billing.Plan
	if sub.PlanID != uuid.Nil {
		plan, err = s.plans.FindByID(ctx, sub.PlanID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	view := ToSubscriptionResponse(sub, plan, s.now())
	resp.Subscription = &view
	return resp, nil
}

// Cancel stops the caller's subscription and drops them back to the free
// tier. Cancelling twice is not an error.
func (s *SubscriptionService) Cancel(ctx context.Context, userID uuid.UUID) (*SubscriptionResponse, error) {
	var cancelled *billing.UserSubscription
	now := s.now()
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sub, err := repos.Subscriptions().FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		sub.Cancel(now)
		if err := repos.Subscriptions().Update(ctx, sub); err != nil {
			return err
		}
		if err := setActivePlan(ctx, repos.Users(), userID, s.freePlanName); err != nil {
			return err
		}
		cancelled = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subscription cancelled",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", cancelled.ID.String()))
	if s.publisher != nil {
		if events := cancelled.GetDomainEvents(); len(events) > 0 {
			if err := s.publisher.Publish(ctx, events...); err != nil {
				s.logger.Error("Failed to publish billing events", zap.Error(err))
			}
		}
	}

	var plan *billing.Plan
	if cancelled.PlanID != uuid.Nil {
		plan, err = s.plans.FindByID(ctx, cancelled.PlanID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	resp := ToSubscriptionResponse(cancelled, plan, now)
	return &resp, nil
}
