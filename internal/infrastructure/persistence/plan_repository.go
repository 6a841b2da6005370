package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save inserts or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *billing.Plan) error {
	err := r.db.WithContext(ctx).Save(models.SubscriptionPlanModelFromDomain(plan)).Error
	return translateDuplicate(err, "A plan with this name already exists")
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	var model models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Plan")
	}
	return model.ToDomain(), nil
}

// FindByName finds a plan by its unique name
func (r *GormPlanRepository) FindByName(ctx context.Context, name string) (*billing.Plan, error) {
	var model models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Plan")
	}
	return model.ToDomain(), nil
}

// ListActive returns active plans ordered by sort order
func (r *GormPlanRepository) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	var planModels []models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	plans := make([]*billing.Plan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	return plans, nil
}

// Ensure GormPlanRepository implements PlanRepository
var _ billing.PlanRepository = (*GormPlanRepository)(nil)
