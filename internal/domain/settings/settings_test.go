package settings

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New(uuid.New())
	assert.Equal(t, DefaultPreferences(), s.Preferences)
	assert.True(t, s.EmailNotifications)
	assert.False(t, s.SMSNotifications)
	assert.Equal(t, ExportFormatCSV, s.DataExportFormat)
}

func TestSettings_Apply(t *testing.T) {
	s := New(uuid.New())

	p := s.Preferences
	p.Currency = "usd"
	p.DataExportFormat = ExportFormatExcel
	p.EventRemindersDays = 14
	require.NoError(t, s.Apply(p))
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, ExportFormatExcel, s.DataExportFormat)

	bad := s.Preferences
	bad.EventRemindersDays = 0
	bad.DataExportFormat = "pdf"
	bad.Currency = "TAKA"
	err := s.Apply(bad)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Fields, "event_reminders_days")
	assert.Contains(t, de.Fields, "data_export_format")
	assert.Contains(t, de.Fields, "currency")
	assert.Equal(t, 14, s.EventRemindersDays)
}
