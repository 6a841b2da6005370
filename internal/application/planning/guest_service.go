package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/analytics"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// GuestService handles guest use cases. Guests are owned through their event.
type GuestService struct {
	guests planning.GuestRepository
	events planning.EventRepository
	logger *zap.Logger
}

// NewGuestService creates a new GuestService
func NewGuestService(guests planning.GuestRepository, events planning.EventRepository, logger *zap.Logger) *GuestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuestService{guests: guests, events: events, logger: logger}
}

// List returns one page of guests and stats over every guest matching the
// filter, computed with the same formulas as event analytics
func (s *GuestService) List(ctx context.Context, ownerID uuid.UUID, filter GuestListFilter) (*GuestListResponse, error) {
	f := filter.domain()
	guests, total, err := s.guests.FindAll(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	matching, err := s.guests.ListMatching(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	results := make([]GuestResponse, len(guests))
	for i, g := range guests {
		results[i] = ToGuestResponse(g)
	}
	return &GuestListResponse{
		Paginated: shared.NewPaginated(results, total, f.Page, f.PageSize),
		Stats:     analytics.SummarizeGuests(matching),
	}, nil
}

// Create adds a guest to one of the owner's events
func (s *GuestService) Create(ctx context.Context, ownerID uuid.UUID, req GuestRequest) (*GuestResponse, error) {
	guest, err := planning.NewGuest(req.details())
	if err != nil {
		return nil, err
	}
	if _, err := s.events.FindByID(ctx, ownerID, guest.EventID); err != nil {
		return nil, err
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Guest added",
		zap.String("guest_id", guest.ID.String()),
		zap.String("event_id", guest.EventID.String()))
	resp := ToGuestResponse(guest)
	return &resp, nil
}

// Get returns one guest of the owner's events
func (s *GuestService) Get(ctx context.Context, ownerID, id uuid.UUID) (*GuestResponse, error) {
	guest, err := s.guests.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToGuestResponse(guest)
	return &resp, nil
}

// Update replaces the writable fields of a guest
func (s *GuestService) Update(ctx context.Context, ownerID, id uuid.UUID, req GuestRequest) (*GuestResponse, error) {
	guest, err := s.guests.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := guest.Revise(req.details()); err != nil {
		return nil, err
	}
	if _, err := s.events.FindByID(ctx, ownerID, guest.EventID); err != nil {
		return nil, err
	}
	if err := s.guests.Update(ctx, ownerID, guest); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Guest updated",
		zap.String("guest_id", guest.ID.String()),
		zap.String("rsvp_status", string(guest.RSVPStatus)),
		zap.Bool("checked_in", guest.CheckedIn))
	resp := ToGuestResponse(guest)
	return &resp, nil
}

// Delete removes a guest of the owner's events
func (s *GuestService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.guests.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Guest removed", zap.String("guest_id", id.String()))
	return nil
}
