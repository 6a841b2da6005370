package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// VendorService manages the owner's vendor address book
type VendorService struct {
	vendors planning.VendorRepository
	logger  *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendors planning.VendorRepository, logger *zap.Logger) *VendorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorService{vendors: vendors, logger: logger}
}

// List returns one page of the owner's vendors
func (s *VendorService) List(ctx context.Context, ownerID uuid.UUID, filter VendorListFilter) (shared.Paginated[VendorResponse], error) {
	f := filter.domain()
	vendors, total, err := s.vendors.FindAll(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[VendorResponse]{}, err
	}
	results := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		results[i] = ToVendorResponse(v)
	}
	return shared.NewPaginated(results, total, f.Page, f.PageSize), nil
}

// Create adds a vendor to the owner's address book
func (s *VendorService) Create(ctx context.Context, ownerID uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := planning.NewVendor(ownerID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("category", string(vendor.Category)))
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Get returns one of the owner's vendors
func (s *VendorService) Get(ctx context.Context, ownerID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Update replaces the writable fields of one of the owner's vendors
func (s *VendorService) Update(ctx context.Context, ownerID, id uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.Revise(req.details()); err != nil {
		return nil, err
	}
	if err := s.vendors.Update(ctx, ownerID, vendor); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Vendor updated", zap.String("vendor_id", vendor.ID.String()))
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Delete removes a vendor; budget items that referenced it keep their costs
// but lose the vendor link
func (s *VendorService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.vendors.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}
