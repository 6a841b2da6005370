package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/settings"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByUserID returns the user's settings
func (r *GormSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*settings.Settings, error) {
	var model models.UserSettingsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "Settings")
	}
	return model.ToDomain(), nil
}

// Save inserts or updates the user's settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	model := models.UserSettingsModelFromDomain(s)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email_notifications", "sms_notifications", "whatsapp_notifications",
				"event_reminders_days", "currency", "timezone", "language",
				"data_export_format", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.UserSettingsModel
	if err := r.db.WithContext(ctx).
		Select("id", "created_at").
		Where("user_id = ?", s.UserID).
		First(&stored).Error; err != nil {
		return err
	}
	s.ID = stored.ID
	s.CreatedAt = stored.CreatedAt
	return nil
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
