package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Create inserts a new vendor
func (r *GormVendorRepository) Create(ctx context.Context, vendor *planning.Vendor) error {
	return r.db.WithContext(ctx).Create(models.VendorModelFromDomain(vendor)).Error
}

// Update saves an existing vendor, scoped to its owner
func (r *GormVendorRepository) Update(ctx context.Context, ownerID uuid.UUID, vendor *planning.Vendor) error {
	result := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", vendor.ID).
		Select("*").
		Omit("id", "created_at", "user_id").
		Updates(models.VendorModelFromDomain(vendor))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Vendor")
	}
	return nil
}

// Delete removes the vendor and clears it from any budget items that referenced it
func (r *GormVendorRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(OwnedBy(ownerID)).Delete(&models.VendorModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NotFound("Vendor")
		}
		return tx.Model(&models.BudgetItemModel{}).
			Where("vendor_id = ?", id).
			Update("vendor_id", nil).Error
	})
}

// FindByID finds an owned vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Vendor")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of the owner's vendors and the total match count
func (r *GormVendorRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter planning.VendorFilter) ([]*planning.Vendor, int64, error) {
	f := filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VendorModel{}).Scopes(OwnedBy(ownerID)), f).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendorModels []models.VendorModel
	if err := query.
		Order(vendorOrdering.Clause(f)).
		Scopes(Paginate(f)).
		Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}
	return vendorsToDomain(vendorModels), total, nil
}

// ListByOwner returns every vendor of the owner
func (r *GormVendorRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*planning.Vendor, error) {
	var vendorModels []models.VendorModel
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Order(vendorOrdering.fallback).
		Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return vendorsToDomain(vendorModels), nil
}

func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(services) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "price_range":
			query = query.Where("price_range = ?", value)
		case "is_preferred":
			if preferred, ok := boolFilter(value); ok {
				query = query.Where("is_preferred = ?", preferred)
			}
		}
	}
	return query
}

func vendorsToDomain(vendorModels []models.VendorModel) []*planning.Vendor {
	vendors := make([]*planning.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = vendorModels[i].ToDomain()
	}
	return vendors
}

// Ensure GormVendorRepository implements VendorRepository
var _ planning.VendorRepository = (*GormVendorRepository)(nil)
