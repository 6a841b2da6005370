package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var subscriptionMutableColumns = []string{
	"plan_id", "billing_cycle", "status", "current_period_start",
	"current_period_end", "cancelled_at", "updated_at", "version",
}

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByUserID returns the user's subscription
func (r *GormSubscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*billing.UserSubscription, error) {
	var model models.UserSubscriptionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Subscription")
	}
	return model.ToDomain(), nil
}

// Upsert writes the subscription keyed by user. The unique user_id index
// keeps one row per user even when two approvals race.
func (r *GormSubscriptionRepository) Upsert(ctx context.Context, sub *billing.UserSubscription) error {
	model := models.UserSubscriptionModelFromDomain(sub)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(subscriptionMutableColumns),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.UserSubscriptionModel
	if err := r.db.WithContext(ctx).
		Select("id", "created_at").
		Where("user_id = ?", sub.UserID).
		First(&stored).Error; err != nil {
		return err
	}
	sub.ID = stored.ID
	sub.CreatedAt = stored.CreatedAt
	return nil
}

// Update saves an existing subscription
func (r *GormSubscriptionRepository) Update(ctx context.Context, sub *billing.UserSubscription) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserSubscriptionModel{}).
		Where("id = ?", sub.ID).
		Select(subscriptionMutableColumns).
		Updates(models.UserSubscriptionModelFromDomain(sub))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Subscription")
	}
	return nil
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ billing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
