package planning

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BudgetCategory classifies a budget line
type BudgetCategory string

const (
	BudgetCategoryVenue          BudgetCategory = "venue"
	BudgetCategoryCatering       BudgetCategory = "catering"
	BudgetCategoryDecoration     BudgetCategory = "decoration"
	BudgetCategoryPhotography    BudgetCategory = "photography"
	BudgetCategoryEntertainment  BudgetCategory = "entertainment"
	BudgetCategoryTransportation BudgetCategory = "transportation"
	BudgetCategoryFlowers        BudgetCategory = "flowers"
	BudgetCategoryInvitations    BudgetCategory = "invitations"
	BudgetCategoryGifts          BudgetCategory = "gifts"
	BudgetCategoryMiscellaneous  BudgetCategory = "miscellaneous"
)

// IsValid checks if the category is a known value
func (c BudgetCategory) IsValid() bool {
	switch c {
	case BudgetCategoryVenue, BudgetCategoryCatering, BudgetCategoryDecoration, BudgetCategoryPhotography,
		BudgetCategoryEntertainment, BudgetCategoryTransportation, BudgetCategoryFlowers,
		BudgetCategoryInvitations, BudgetCategoryGifts, BudgetCategoryMiscellaneous:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a budget item
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusOverdue:
		return true
	}
	return false
}

// PaymentStatuses lists every payment status
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusOverdue,
}

// BudgetItemDetails is the writable state of a budget item
type BudgetItemDetails struct {
	EventID       uuid.UUID
	VendorID      *uuid.UUID
	Category      BudgetCategory
	ItemName      string
	EstimatedCost decimal.Decimal
	ActualCost    decimal.Decimal
	Status        PaymentStatus
	DueDate       *time.Time
	Notes         string
}

// BudgetItem is one planned expense of an event. Estimated and actual
// cost are tracked independently; actual may exceed estimated.
type BudgetItem struct {
	shared.BaseAggregateRoot
	BudgetItemDetails
}

// NewBudgetItem creates a budget item. The caller has already checked
// that the event and vendor belong to the same user.
func NewBudgetItem(details BudgetItemDetails) (*BudgetItem, error) {
	if details.Status == "" {
		details.Status = PaymentStatusPending
	}
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &BudgetItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BudgetItemDetails: details,
	}, nil
}

// Revise replaces the writable state after validating it. An empty status
// keeps the current one.
func (b *BudgetItem) Revise(details BudgetItemDetails) error {
	if details.Status == "" {
		details.Status = b.Status
	}
	details, err := details.normalize()
	if err != nil {
		return err
	}
	b.BudgetItemDetails = details
	b.Touch()
	b.IncrementVersion()
	return nil
}

// Variance is actual minus estimated; positive means over estimate
func (b *BudgetItem) Variance() decimal.Decimal {
	return b.ActualCost.Sub(b.EstimatedCost)
}

func (d BudgetItemDetails) normalize() (BudgetItemDetails, error) {
	d.ItemName = strings.TrimSpace(d.ItemName)

	errs := shared.ValidationErrors{}
	if d.EventID == uuid.Nil {
		errs.Add("event_id", msgRequired)
	}
	choice(errs, "category", d.Category, BudgetCategory.IsValid)
	choice(errs, "status", d.Status, PaymentStatus.IsValid)
	requireText(errs, "item_name", d.ItemName, 200)
	nonNegativeMoney(errs, "estimated_cost", d.EstimatedCost, 10)
	nonNegativeMoney(errs, "actual_cost", d.ActualCost, 10)
	if err := errs.Err(); err != nil {
		return d, err
	}
	if d.VendorID != nil && *d.VendorID == uuid.Nil {
		d.VendorID = nil
	}
	if d.DueDate != nil {
		due := DateOnly(*d.DueDate)
		d.DueDate = &due
	}
	return d, nil
}
