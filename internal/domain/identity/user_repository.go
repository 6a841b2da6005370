package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Update persists profile and credential changes. It never writes the
	// subscription plan tag; that goes through UpdateSubscriptionPlan.
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateSubscriptionPlan(ctx context.Context, userID uuid.UUID, planName string) error
}
