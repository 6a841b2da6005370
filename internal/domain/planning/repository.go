package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventFilter narrows an event listing. Filters keys: status, category.
type EventFilter struct {
	shared.Filter
}

// EventSummary is an event together with its child rollups
type EventSummary struct {
	*Event
	BudgetItemsCount int64
	GuestsCount      int64
	TotalSpent       decimal.Decimal
}

// EventRepository persists events. Every method is scoped to ownerID.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, ownerID uuid.UUID, event *Event) error
	// Delete removes the event together with its budget items and guests
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Event, error)
	FindAll(ctx context.Context, ownerID uuid.UUID, filter EventFilter) ([]*Event, int64, error)
	// ListByOwner returns every event of the owner, newest first
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Event, error)
	// Summaries loads child rollups for the given owned events
	Summaries(ctx context.Context, ownerID uuid.UUID, events []*Event) ([]EventSummary, error)
}

// BudgetItemFilter narrows a budget listing. Filters keys: event_id, category, status.
type BudgetItemFilter struct {
	shared.Filter
}

// BudgetItemView is a budget item with the names it refers to
type BudgetItemView struct {
	*BudgetItem
	EventName  string
	VendorName string
}

// BudgetItemRepository persists budget items, scoped through the parent event's owner
type BudgetItemRepository interface {
	Create(ctx context.Context, item *BudgetItem) error
	Update(ctx context.Context, ownerID uuid.UUID, item *BudgetItem) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*BudgetItemView, error)
	FindAll(ctx context.Context, ownerID uuid.UUID, filter BudgetItemFilter) ([]*BudgetItemView, int64, error)
	ListByEvent(ctx context.Context, ownerID, eventID uuid.UUID) ([]*BudgetItem, error)
}

// GuestFilter narrows a guest listing. Filters keys: event_id, category, rsvp_status, checked_in.
type GuestFilter struct {
	shared.Filter
}

// GuestRepository persists guests, scoped through the parent event's owner
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	Update(ctx context.Context, ownerID uuid.UUID, guest *Guest) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Guest, error)
	FindAll(ctx context.Context, ownerID uuid.UUID, filter GuestFilter) ([]*Guest, int64, error)
	// ListMatching returns every guest matching the filter, ignoring pagination
	ListMatching(ctx context.Context, ownerID uuid.UUID, filter GuestFilter) ([]*Guest, error)
	ListByEvent(ctx context.Context, ownerID, eventID uuid.UUID) ([]*Guest, error)
	FindByIDs(ctx context.Context, ownerID, eventID uuid.UUID, ids []uuid.UUID) ([]*Guest, error)
}

// VendorFilter narrows a vendor listing. Filters keys: category, price_range, is_preferred.
type VendorFilter struct {
	shared.Filter
}

// VendorRepository persists vendors. Every method is scoped to ownerID.
type VendorRepository interface {
	Create(ctx context.Context, vendor *Vendor) error
	Update(ctx context.Context, ownerID uuid.UUID, vendor *Vendor) error
	// Delete removes the vendor and clears it from any budget items
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Vendor, error)
	FindAll(ctx context.Context, ownerID uuid.UUID, filter VendorFilter) ([]*Vendor, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Vendor, error)
}
