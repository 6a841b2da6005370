// Package settings holds per-user preferences.
package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// ExportFormat is the preferred data export format
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "excel"
)

// IsValid checks if the format is a known value
func (f ExportFormat) IsValid() bool {
	return f == ExportFormatCSV || f == ExportFormatExcel
}

// Preferences is the writable state of a settings record
type Preferences struct {
	EmailNotifications    bool
	SMSNotifications      bool
	WhatsAppNotifications bool
	EventRemindersDays    int
	Currency              string
	Timezone              string
	Language              string
	DataExportFormat      ExportFormat
}

// DefaultPreferences are applied on first read
func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications:    true,
		SMSNotifications:      false,
		WhatsAppNotifications: true,
		EventRemindersDays:    7,
		Currency:              "BDT",
		Timezone:              "Asia/Dhaka",
		Language:              "en",
		DataExportFormat:      ExportFormatCSV,
	}
}

// Settings is the one preference record of a user
type Settings struct {
	shared.BaseEntity
	UserID uuid.UUID
	Preferences
}

// New creates default settings for a user
func New(userID uuid.UUID) *Settings {
	return &Settings{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Preferences: DefaultPreferences(),
	}
}

// Apply replaces the preferences after validating them
func (s *Settings) Apply(p Preferences) error {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	p.Timezone = strings.TrimSpace(p.Timezone)
	p.Language = strings.ToLower(strings.TrimSpace(p.Language))

	errs := shared.ValidationErrors{}
	if p.EventRemindersDays < 1 || p.EventRemindersDays > 30 {
		errs.Add("event_reminders_days", "Ensure this value is between 1 and 30.")
	}
	if len(p.Currency) != 3 {
		errs.Add("currency", "Use a three letter currency code.")
	}
	if p.Timezone == "" || len(p.Timezone) > 50 {
		errs.Add("timezone", "Enter a valid timezone.")
	}
	if p.Language == "" || len(p.Language) > 10 {
		errs.Add("language", "Enter a valid language code.")
	}
	if !p.DataExportFormat.IsValid() {
		errs.Add("data_export_format", "\""+string(p.DataExportFormat)+"\" is not a valid choice.")
	}
	if err := errs.Err(); err != nil {
		return err
	}
	s.Preferences = p
	s.Touch()
	return nil
}

// Repository persists settings
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Settings, error)
	// Save inserts or updates the record keyed by user
	Save(ctx context.Context, s *Settings) error
}
