// Package settings serves the caller's preference record.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/settings"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UpdateSettingsRequest changes only the fields that are present
type UpdateSettingsRequest struct {
	EmailNotifications    *bool   `json:"email_notifications"`
	SMSNotifications      *bool   `json:"sms_notifications"`
	WhatsAppNotifications *bool   `json:"whatsapp_notifications"`
	EventRemindersDays    *int    `json:"event_reminders_days"`
	Currency              *string `json:"currency"`
	Timezone              *string `json:"timezone"`
	Language              *string `json:"language"`
	DataExportFormat      *string `json:"data_export_format"`
}

func (r UpdateSettingsRequest) apply(p settings.Preferences) settings.Preferences {
	if r.EmailNotifications != nil {
		p.EmailNotifications = *r.EmailNotifications
	}
	if r.SMSNotifications != nil {
		p.SMSNotifications = *r.SMSNotifications
	}
	if r.WhatsAppNotifications != nil {
		p.WhatsAppNotifications = *r.WhatsAppNotifications
	}
	if r.EventRemindersDays != nil {
		p.EventRemindersDays = *r.EventRemindersDays
	}
	if r.Currency != nil {
		p.Currency = *r.Currency
	}
	if r.Timezone != nil {
		p.Timezone = *r.Timezone
	}
	if r.Language != nil {
		p.Language = *r.Language
	}
	if r.DataExportFormat != nil {
		p.DataExportFormat = settings.ExportFormat(*r.DataExportFormat)
	}
	return p
}

// SettingsResponse is the caller's preference record
type SettingsResponse struct {
	ID                    uuid.UUID `json:"id"`
	EmailNotifications    bool      `json:"email_notifications"`
	SMSNotifications      bool      `json:"sms_notifications"`
	WhatsAppNotifications bool      `json:"whatsapp_notifications"`
	EventRemindersDays    int       `json:"event_reminders_days"`
	Currency              string    `json:"currency"`
	Timezone              string    `json:"timezone"`
	Language              string    `json:"language"`
	DataExportFormat      string    `json:"data_export_format"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func toSettingsResponse(s *settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		ID:                    s.ID,
		EmailNotifications:    s.EmailNotifications,
		SMSNotifications:      s.SMSNotifications,
		WhatsAppNotifications: s.WhatsAppNotifications,
		EventRemindersDays:    s.EventRemindersDays,
		Currency:              s.Currency,
		Timezone:              s.Timezone,
		Language:              s.Language,
		DataExportFormat:      string(s.DataExportFormat),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// SettingsService reads and updates user settings
type SettingsService struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.Repository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the caller's settings, creating the defaults on first read
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*SettingsResponse, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(record), nil
}

// Update applies a partial change to the caller's settings
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := record.Apply(req.apply(record.Preferences)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Settings updated", zap.String("user_id", userID.String()))
	return toSettingsResponse(record), nil
}

func (s *SettingsService) load(ctx context.Context, userID uuid.UUID) (*settings.Settings, error) {
	record, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	record = settings.New(userID)
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	logger.L(ctx).Debug("Default settings created", zap.String("user_id", userID.String()))
	return record, nil
}
