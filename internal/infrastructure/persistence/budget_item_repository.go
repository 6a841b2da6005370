package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const budgetItemViewColumns = "budget_items.*, events.name AS event_name, vendors.name AS vendor_name"

// budgetItemRow is a budget item joined with its event and vendor names
type budgetItemRow struct {
	models.BudgetItemModel
	EventName  string
	VendorName *string
}

func (row *budgetItemRow) toView() *planning.BudgetItemView {
	view := &planning.BudgetItemView{
		BudgetItem: row.BudgetItemModel.ToDomain(),
		EventName:  row.EventName,
	}
	if row.VendorName != nil {
		view.VendorName = *row.VendorName
	}
	return view
}

// GormBudgetItemRepository implements BudgetItemRepository using GORM
type GormBudgetItemRepository struct {
	db *gorm.DB
}

// NewGormBudgetItemRepository creates a new GormBudgetItemRepository
func NewGormBudgetItemRepository(db *gorm.DB) *GormBudgetItemRepository {
	return &GormBudgetItemRepository{db: db}
}

// Create inserts a new budget item
func (r *GormBudgetItemRepository) Create(ctx context.Context, item *planning.BudgetItem) error {
	return r.db.WithContext(ctx).Create(models.BudgetItemModelFromDomain(item)).Error
}

// Update saves a budget item that currently belongs to one of the owner's events
func (r *GormBudgetItemRepository) Update(ctx context.Context, ownerID uuid.UUID, item *planning.BudgetItem) error {
	result := r.db.WithContext(ctx).
		Model(&models.BudgetItemModel{}).
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(models.BudgetItemModelFromDomain(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Budget item")
	}
	return nil
}

// Delete removes a budget item belonging to one of the owner's events
func (r *GormBudgetItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(ThroughOwnedEvent(ownerID)).
		Delete(&models.BudgetItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Budget item")
	}
	return nil
}

// FindByID finds a budget item with its event and vendor names
func (r *GormBudgetItemRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.BudgetItemView, error) {
	var rows []budgetItemRow
	if err := r.joined(ctx, ownerID).
		Select(budgetItemViewColumns).
		Where("budget_items.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.NotFound("Budget item")
	}
	return rows[0].toView(), nil
}

// FindAll returns one page of the owner's budget items and the total match count
func (r *GormBudgetItemRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter planning.BudgetItemFilter) ([]*planning.BudgetItemView, int64, error) {
	f := filter.Normalize()
	query := r.applyFilter(r.joined(ctx, ownerID), f).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []budgetItemRow
	if err := query.
		Select(budgetItemViewColumns).
		Order(budgetItemOrdering.Clause(f)).
		Scopes(Paginate(f)).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]*planning.BudgetItemView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views, total, nil
}

// ListByEvent returns every budget item of an owned event
func (r *GormBudgetItemRepository) ListByEvent(ctx context.Context, ownerID, eventID uuid.UUID) ([]*planning.BudgetItem, error) {
	var itemModels []models.BudgetItemModel
	if err := r.db.WithContext(ctx).
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("event_id = ?", eventID).
		Order("due_date ASC, category ASC, id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]*planning.BudgetItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, nil
}

// joined starts a budget_items query joined to the owner's events and the optional vendor
func (r *GormBudgetItemRepository) joined(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("budget_items").
		Joins("JOIN events ON events.id = budget_items.event_id").
		Joins("LEFT JOIN vendors ON vendors.id = budget_items.vendor_id").
		Where("events.user_id = ?", ownerID)
}

func (r *GormBudgetItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(budget_items.item_name) LIKE ? OR LOWER(budget_items.notes) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "event_id":
			query = query.Where("budget_items.event_id = ?", value)
		case "category":
			query = query.Where("budget_items.category = ?", value)
		case "status":
			query = query.Where("budget_items.status = ?", value)
		}
	}
	return query
}

// Ensure GormBudgetItemRepository implements BudgetItemRepository
var _ planning.BudgetItemRepository = (*GormBudgetItemRepository)(nil)
