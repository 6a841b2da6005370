package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
)

// setActivePlan is the only writer of User.SubscriptionPlan. Every billing
// mutation that changes which plan a user is on goes through here, inside
// the same transaction as the subscription write.
func setActivePlan(ctx context.Context, users identity.UserRepository, userID uuid.UUID, planName string) error {
	return users.UpdateSubscriptionPlan(ctx, userID, planName)
}
