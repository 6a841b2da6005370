package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Create inserts a new event
func (r *GormEventRepository) Create(ctx context.Context, event *planning.Event) error {
	return r.db.WithContext(ctx).Create(models.EventModelFromDomain(event)).Error
}

// Update saves an existing event, scoped to its owner
func (r *GormEventRepository) Update(ctx context.Context, ownerID uuid.UUID, event *planning.Event) error {
	result := r.db.WithContext(ctx).
		Model(&models.EventModel{}).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", event.ID).
		Select("*").
		Omit("id", "created_at", "user_id").
		Updates(models.EventModelFromDomain(event))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Event")
	}
	return nil
}

// Delete removes the event with its budget items and guests
func (r *GormEventRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.EventModel{}).
			Scopes(OwnedBy(ownerID)).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NotFound("Event")
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.GuestModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.BudgetItemModel{}).Error; err != nil {
			return err
		}
		return tx.Scopes(OwnedBy(ownerID)).Delete(&models.EventModel{}, "id = ?", id).Error
	})
}

// FindByID finds an owned event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Event")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of the owner's events and the total match count
func (r *GormEventRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter planning.EventFilter) ([]*planning.Event, int64, error) {
	f := filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EventModel{}).Scopes(OwnedBy(ownerID)), f).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var eventModels []models.EventModel
	if err := query.
		Order(eventOrdering.Clause(f)).
		Scopes(Paginate(f)).
		Find(&eventModels).Error; err != nil {
		return nil, 0, err
	}
	return eventsToDomain(eventModels), total, nil
}

// ListByOwner returns every event of the owner, newest first
func (r *GormEventRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*planning.Event, error) {
	var eventModels []models.EventModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Order("created_at DESC, id ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}
	return eventsToDomain(eventModels), nil
}

type eventBudgetRollup struct {
	EventID    uuid.UUID
	ItemsCount int64
	TotalSpent decimal.Decimal
}

type eventGuestRollup struct {
	EventID     uuid.UUID
	GuestsCount int64
}

// Summaries loads child rollups for the given owned events in two grouped queries
func (r *GormEventRepository) Summaries(ctx context.Context, ownerID uuid.UUID, events []*planning.Event) ([]planning.EventSummary, error) {
	summaries := make([]planning.EventSummary, len(events))
	if len(events) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	var budgets []eventBudgetRollup
	if err := r.db.WithContext(ctx).
		Model(&models.BudgetItemModel{}).
		Select("event_id, COUNT(*) AS items_count, COALESCE(SUM(actual_cost), 0) AS total_spent").
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&budgets).Error; err != nil {
		return nil, err
	}

	var guests []eventGuestRollup
	if err := r.db.WithContext(ctx).
		Model(&models.GuestModel{}).
		Select("event_id, COUNT(*) AS guests_count").
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&guests).Error; err != nil {
		return nil, err
	}

	budgetByEvent := make(map[uuid.UUID]eventBudgetRollup, len(budgets))
	for _, b := range budgets {
		budgetByEvent[b.EventID] = b
	}
	guestsByEvent := make(map[uuid.UUID]int64, len(guests))
	for _, g := range guests {
		guestsByEvent[g.EventID] = g.GuestsCount
	}

	for i, e := range events {
		b := budgetByEvent[e.ID]
		summaries[i] = planning.EventSummary{
			Event:            e,
			BudgetItemsCount: b.ItemsCount,
			GuestsCount:      guestsByEvent[e.ID],
			TotalSpent:       b.TotalSpent,
		}
	}
	return summaries, nil
}

func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(venue) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		}
	}
	return query
}

func eventsToDomain(eventModels []models.EventModel) []*planning.Event {
	events := make([]*planning.Event, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events
}

// Ensure GormEventRepository implements EventRepository
var _ planning.EventRepository = (*GormEventRepository)(nil)
