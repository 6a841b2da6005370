package planning

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VendorCategory classifies a vendor's trade
type VendorCategory string

const (
	VendorCategoryCatering       VendorCategory = "catering"
	VendorCategoryPhotography    VendorCategory = "photography"
	VendorCategoryDecoration     VendorCategory = "decoration"
	VendorCategoryEntertainment  VendorCategory = "entertainment"
	VendorCategoryVenue          VendorCategory = "venue"
	VendorCategoryTransportation VendorCategory = "transportation"
	VendorCategoryFlowers        VendorCategory = "flowers"
	VendorCategoryMakeup         VendorCategory = "makeup"
	VendorCategorySound          VendorCategory = "sound"
	VendorCategorySecurity       VendorCategory = "security"
	VendorCategoryOther          VendorCategory = "other"
)

// IsValid checks if the category is a known value
func (c VendorCategory) IsValid() bool {
	switch c {
	case VendorCategoryCatering, VendorCategoryPhotography, VendorCategoryDecoration, VendorCategoryEntertainment,
		VendorCategoryVenue, VendorCategoryTransportation, VendorCategoryFlowers, VendorCategoryMakeup,
		VendorCategorySound, VendorCategorySecurity, VendorCategoryOther:
		return true
	}
	return false
}

// PriceRange is a vendor's price bracket
type PriceRange string

const (
	PriceRangeBudget   PriceRange = "budget"
	PriceRangeMidRange PriceRange = "mid_range"
	PriceRangePremium  PriceRange = "premium"
	PriceRangeLuxury   PriceRange = "luxury"
)

// IsValid checks if the price range is a known value
func (p PriceRange) IsValid() bool {
	switch p {
	case PriceRangeBudget, PriceRangeMidRange, PriceRangePremium, PriceRangeLuxury:
		return true
	}
	return false
}

// VendorDetails is the writable state of a vendor
type VendorDetails struct {
	Name           string
	Category       VendorCategory
	Email          string
	Phone          string
	WhatsAppNumber string
	Address        string
	Website        string
	Rating         decimal.Decimal
	PriceRange     PriceRange
	Services       string
	Notes          string
	IsPreferred    bool
}

// Vendor is an entry in a user's vendor address book. Vendors are not
// tied to a single event; budget items reference them optionally.
type Vendor struct {
	shared.OwnedAggregateRoot
	VendorDetails
}

// NewVendor creates a vendor owned by the user
func NewVendor(ownerID uuid.UUID, details VendorDetails) (*Vendor, error) {
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &Vendor{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		VendorDetails:      details,
	}, nil
}

// Revise replaces the writable state after validating it
func (v *Vendor) Revise(details VendorDetails) error {
	details, err := details.normalize()
	if err != nil {
		return err
	}
	v.VendorDetails = details
	v.Touch()
	v.IncrementVersion()
	return nil
}

var maxRating = decimal.NewFromInt(5)

func (d VendorDetails) normalize() (VendorDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Website = strings.TrimSpace(d.Website)

	errs := shared.ValidationErrors{}
	requireText(errs, "name", d.Name, 200)
	choice(errs, "category", d.Category, VendorCategory.IsValid)
	choice(errs, "price_range", d.PriceRange, PriceRange.IsValid)
	optionalEmail(errs, "email", d.Email)
	requireText(errs, "phone", d.Phone, 20)
	limitText(errs, "whatsapp_number", d.WhatsAppNumber, 20)
	requireText(errs, "address", d.Address, 0)
	requireText(errs, "services", d.Services, 0)
	if d.Website != "" {
		if u, err := url.ParseRequestURI(d.Website); err != nil || u.Host == "" {
			errs.Add("website", "Enter a valid URL.")
		}
	}
	if d.Rating.IsNegative() || d.Rating.GreaterThan(maxRating) {
		errs.Add("rating", "Ensure this value is between 0 and 5.")
	}
	if err := errs.Err(); err != nil {
		return d, err
	}
	d.Rating = d.Rating.Round(2)
	return d, nil
}
