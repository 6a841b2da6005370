// Package analytics serves the read-only event and account reports.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/analytics"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AnalyticsService loads an owner's rows and hands them to the report builders
type AnalyticsService struct {
	events  planning.EventRepository
	items   planning.BudgetItemRepository
	guests  planning.GuestRepository
	vendors planning.VendorRepository
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an AnalyticsService
type Option func(*AnalyticsService)

// WithClock overrides the time source used for progress and generated_at
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) { s.now = now }
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	events planning.EventRepository,
	items planning.BudgetItemRepository,
	guests planning.GuestRepository,
	vendors planning.VendorRepository,
	logger *zap.Logger,
	opts ...Option,
) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AnalyticsService{
		events:  events,
		items:   items,
		guests:  guests,
		vendors: vendors,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EventReport builds the analytics of one of the owner's events. Vendor
// rollups cover the owner's whole address book.
func (s *AnalyticsService) EventReport(ctx context.Context, ownerID, eventID uuid.UUID) (*analytics.EventReport, error) {
	event, err := s.events.FindByID(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guests.ListByEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	vendors, err := s.vendors.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildEventReport(event, items, guests, vendors, s.now())
	logger.L(ctx).Debug("Event analytics built",
		zap.String("event_id", eventID.String()),
		zap.Int("budget_items", len(items)),
		zap.Int("guests", len(guests)))
	return &report, nil
}

// OverallReport rolls up every event the owner has
func (s *AnalyticsService) OverallReport(ctx context.Context, ownerID uuid.UUID) (*analytics.OverallReport, error) {
	events, err := s.events.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	report := analytics.BuildOverallReport(events, s.now())
	return &report, nil
}
