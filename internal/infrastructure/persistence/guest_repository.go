package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormGuestRepository implements GuestRepository using GORM
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// Create inserts a new guest
func (r *GormGuestRepository) Create(ctx context.Context, guest *planning.Guest) error {
	return r.db.WithContext(ctx).Create(models.GuestModelFromDomain(guest)).Error
}

// Update saves a guest that currently belongs to one of the owner's events
func (r *GormGuestRepository) Update(ctx context.Context, ownerID uuid.UUID, guest *planning.Guest) error {
	result := r.db.WithContext(ctx).
		Model(&models.GuestModel{}).
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("id = ?", guest.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(models.GuestModelFromDomain(guest))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Guest")
	}
	return nil
}

// Delete removes a guest belonging to one of the owner's events
func (r *GormGuestRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(ThroughOwnedEvent(ownerID)).
		Delete(&models.GuestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Guest")
	}
	return nil
}

// FindByID finds a guest of one of the owner's events
func (r *GormGuestRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.Guest, error) {
	var model models.GuestModel
	if err := r.db.WithContext(ctx).
		Scopes(ThroughOwnedEvent(ownerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Guest")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of the owner's guests and the total match count
func (r *GormGuestRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter planning.GuestFilter) ([]*planning.Guest, int64, error) {
	f := filter.Normalize()
	query := r.applyFilter(r.owned(ctx, ownerID), f).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var guestModels []models.GuestModel
	if err := query.
		Order(guestOrdering.Clause(f)).
		Scopes(Paginate(f)).
		Find(&guestModels).Error; err != nil {
		return nil, 0, err
	}
	return guestsToDomain(guestModels), total, nil
}

// ListMatching returns every guest matching the filter, ignoring pagination
func (r *GormGuestRepository) ListMatching(ctx context.Context, ownerID uuid.UUID, filter planning.GuestFilter) ([]*planning.Guest, error) {
	var guestModels []models.GuestModel
	if err := r.applyFilter(r.owned(ctx, ownerID), filter.Filter).
		Order(guestOrdering.fallback).
		Find(&guestModels).Error; err != nil {
		return nil, err
	}
	return guestsToDomain(guestModels), nil
}

// ListByEvent returns every guest of an owned event
func (r *GormGuestRepository) ListByEvent(ctx context.Context, ownerID, eventID uuid.UUID) ([]*planning.Guest, error) {
	var guestModels []models.GuestModel
	if err := r.owned(ctx, ownerID).
		Where("event_id = ?", eventID).
		Order(guestOrdering.fallback).
		Find(&guestModels).Error; err != nil {
		return nil, err
	}
	return guestsToDomain(guestModels), nil
}

// FindByIDs returns the guests of an owned event among ids. Unknown IDs are skipped.
func (r *GormGuestRepository) FindByIDs(ctx context.Context, ownerID, eventID uuid.UUID, ids []uuid.UUID) ([]*planning.Guest, error) {
	if len(ids) == 0 {
		return []*planning.Guest{}, nil
	}
	var guestModels []models.GuestModel
	if err := r.owned(ctx, ownerID).
		Where("event_id = ? AND id IN ?", eventID, ids).
		Order(guestOrdering.fallback).
		Find(&guestModels).Error; err != nil {
		return nil, err
	}
	return guestsToDomain(guestModels), nil
}

func (r *GormGuestRepository) owned(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.GuestModel{}).Scopes(ThroughOwnedEvent(ownerID))
}

func (r *GormGuestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "event_id":
			query = query.Where("event_id = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "rsvp_status":
			query = query.Where("rsvp_status = ?", value)
		case "checked_in":
			if checkedIn, ok := boolFilter(value); ok {
				query = query.Where("checked_in = ?", checkedIn)
			}
		}
	}
	return query
}

func guestsToDomain(guestModels []models.GuestModel) []*planning.Guest {
	guests := make([]*planning.Guest, len(guestModels))
	for i := range guestModels {
		guests[i] = guestModels[i].ToDomain()
	}
	return guests
}

// Ensure GormGuestRepository implements GuestRepository
var _ planning.GuestRepository = (*GormGuestRepository)(nil)
