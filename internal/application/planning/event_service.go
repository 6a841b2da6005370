// Package planning implements the owner-scoped CRUD use cases for events,
// budget items, guests and vendors.
package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventService handles event use cases
type EventService struct {
	events planning.EventRepository
	logger *zap.Logger
}

// NewEventService creates a new EventService
func NewEventService(events planning.EventRepository, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{events: events, logger: logger}
}

// List returns one page of the owner's events with their rollups
func (s *EventService) List(ctx context.Context, ownerID uuid.UUID, filter EventListFilter) (shared.Paginated[EventResponse], error) {
	f := filter.domain()
	events, total, err := s.events.FindAll(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[EventResponse]{}, err
	}
	summaries, err := s.events.Summaries(ctx, ownerID, events)
	if err != nil {
		return shared.Paginated[EventResponse]{}, err
	}

	results := make([]EventResponse, len(summaries))
	for i, summary := range summaries {
		results[i] = ToEventResponse(summary)
	}
	return shared.NewPaginated(results, total, f.Page, f.PageSize), nil
}

// Create adds an event for the owner
func (s *EventService) Create(ctx context.Context, ownerID uuid.UUID, req EventRequest) (*EventResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	event, err := planning.NewEvent(ownerID, details)
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("category", string(event.Category)))
	resp := ToEventResponse(planning.EventSummary{Event: event, TotalSpent: decimal.Zero})
	return &resp, nil
}

// Get returns one of the owner's events
func (s *EventService) Get(ctx context.Context, ownerID, id uuid.UUID) (*EventResponse, error) {
	event, err := s.events.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, ownerID, event)
}

// Update replaces the writable fields of one of the owner's events
func (s *EventService) Update(ctx context.Context, ownerID, id uuid.UUID, req EventRequest) (*EventResponse, error) {
	event, err := s.events.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	if err := event.Revise(details); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ownerID, event); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Event updated",
		zap.String("event_id", event.ID.String()),
		zap.String("status", string(event.Status)))
	return s.withSummary(ctx, ownerID, event)
}

// Delete removes one of the owner's events with its budget items and guests
func (s *EventService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.events.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (s *EventService) withSummary(ctx context.Context, ownerID uuid.UUID, event *planning.Event) (*EventResponse, error) {
	summaries, err := s.events.Summaries(ctx, ownerID, []*planning.Event{event})
	if err != nil {
		return nil, err
	}
	resp := ToEventResponse(summaries[0])
	return &resp, nil
}
