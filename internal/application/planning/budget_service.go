package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// BudgetService handles budget item use cases. Items are owned through
// their event; the referenced vendor must be in the same owner's address book.
type BudgetService struct {
	items   planning.BudgetItemRepository
	events  planning.EventRepository
	vendors planning.VendorRepository
	logger  *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	items planning.BudgetItemRepository,
	events planning.EventRepository,
	vendors planning.VendorRepository,
	logger *zap.Logger,
) *BudgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetService{items: items, events: events, vendors: vendors, logger: logger}
}

// List returns one page of budget items across the owner's events
func (s *BudgetService) List(ctx context.Context, ownerID uuid.UUID, filter BudgetItemListFilter) (shared.Paginated[BudgetItemResponse], error) {
	f := filter.domain()
	views, total, err := s.items.FindAll(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[BudgetItemResponse]{}, err
	}
	results := make([]BudgetItemResponse, len(views))
	for i, v := range views {
		results[i] = ToBudgetItemResponse(v)
	}
	return shared.NewPaginated(results, total, f.Page, f.PageSize), nil
}

// Create adds a budget item to one of the owner's events
func (s *BudgetService) Create(ctx context.Context, ownerID uuid.UUID, req BudgetItemRequest) (*BudgetItemResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	item, err := planning.NewBudgetItem(details)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, ownerID, item.BudgetItemDetails); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Budget item created",
		zap.String("budget_item_id", item.ID.String()),
		zap.String("event_id", item.EventID.String()))
	return s.Get(ctx, ownerID, item.ID)
}

// Get returns one budget item of the owner's events
func (s *BudgetService) Get(ctx context.Context, ownerID, id uuid.UUID) (*BudgetItemResponse, error) {
	view, err := s.items.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToBudgetItemResponse(view)
	return &resp, nil
}

// Update replaces the writable fields of a budget item. Moving the item to
// another event is allowed only within the owner's events.
func (s *BudgetService) Update(ctx context.Context, ownerID, id uuid.UUID, req BudgetItemRequest) (*BudgetItemResponse, error) {
	view, err := s.items.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	item := view.BudgetItem
	if err := item.Revise(details); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, ownerID, item.BudgetItemDetails); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, ownerID, item); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Budget item updated", zap.String("budget_item_id", item.ID.String()))
	return s.Get(ctx, ownerID, item.ID)
}

// Delete removes a budget item of the owner's events
func (s *BudgetService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.items.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Budget item deleted", zap.String("budget_item_id", id.String()))
	return nil
}

// checkReferences resolves the event and vendor through the owner. A foreign
// event reads as absent; a foreign vendor is an invalid choice.
func (s *BudgetService) checkReferences(ctx context.Context, ownerID uuid.UUID, details planning.BudgetItemDetails) error {
	if _, err := s.events.FindByID(ctx, ownerID, details.EventID); err != nil {
		return err
	}
	if details.VendorID == nil {
		return nil
	}
	_, err := s.vendors.FindByID(ctx, ownerID, *details.VendorID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewValidationError("vendor_id",
			fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", details.VendorID.String()))
	}
	return err
}
