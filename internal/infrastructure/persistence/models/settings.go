package models

import (
	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/settings"
)

// UserSettingsModel is the persistence model for per-user settings.
type UserSettingsModel struct {
	BaseModel
	UserID                uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	EmailNotifications    bool                  `gorm:"not null"`
	SMSNotifications      bool                  `gorm:"column:sms_notifications;not null"`
	WhatsAppNotifications bool                  `gorm:"column:whatsapp_notifications;not null"`
	EventRemindersDays    int                   `gorm:"not null;default:7"`
	Currency              string                `gorm:"type:varchar(3);not null;default:'BDT'"`
	Timezone              string                `gorm:"type:varchar(50);not null;default:'Asia/Dhaka'"`
	Language              string                `gorm:"type:varchar(10);not null;default:'en'"`
	DataExportFormat      settings.ExportFormat `gorm:"type:varchar(10);not null;default:'csv'"`
}

// TableName returns the table name for GORM
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToDomain converts the persistence model to domain Settings.
func (m *UserSettingsModel) ToDomain() *settings.Settings {
	return &settings.Settings{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Preferences: settings.Preferences{
			EmailNotifications:    m.EmailNotifications,
			SMSNotifications:      m.SMSNotifications,
			WhatsAppNotifications: m.WhatsAppNotifications,
			EventRemindersDays:    m.EventRemindersDays,
			Currency:              m.Currency,
			Timezone:              m.Timezone,
			Language:              m.Language,
			DataExportFormat:      m.DataExportFormat,
		},
	}
}

// UserSettingsModelFromDomain creates a new persistence model from domain Settings.
func UserSettingsModelFromDomain(s *settings.Settings) *UserSettingsModel {
	m := &UserSettingsModel{
		UserID:                s.UserID,
		EmailNotifications:    s.EmailNotifications,
		SMSNotifications:      s.SMSNotifications,
		WhatsAppNotifications: s.WhatsAppNotifications,
		EventRemindersDays:    s.EventRemindersDays,
		Currency:              s.Currency,
		Timezone:              s.Timezone,
		Language:              s.Language,
		DataExportFormat:      s.DataExportFormat,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
