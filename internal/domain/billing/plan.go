package billing

import (
	"regexp"
	"strings"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingCycle is how often a plan is paid for
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// IsValid checks if the cycle is a known value
func (c BillingCycle) IsValid() bool {
	return c == BillingCycleMonthly || c == BillingCycleYearly
}

// Periods holds the fixed length of each billing cycle. Calendar months
// and leap years are ignored on purpose.
type Periods struct {
	Monthly time.Duration
	Yearly  time.Duration
}

// DefaultPeriods is 30 days per month and 365 days per year
var DefaultPeriods = Periods{
	Monthly: 30 * 24 * time.Hour,
	Yearly:  365 * 24 * time.Hour,
}

// End returns the period end for a cycle starting at start
func (p Periods) End(cycle BillingCycle, start time.Time) time.Time {
	if cycle == BillingCycleMonthly {
		return start.Add(p.Monthly)
	}
	return start.Add(p.Yearly)
}

var planNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// PlanDetails is the writable state of a plan
type PlanDetails struct {
	Name              string
	DisplayName       string
	Description       string
	PriceMonthly      decimal.Decimal
	PriceYearly       decimal.Decimal
	MaxEvents         int
	MaxGuestsPerEvent int
	MaxVendors        int
	Features          []string
	IsActive          bool
	SortOrder         int
}

// Plan is a catalog tier. Its Name doubles as the user's plan tag.
// Limits are declarative; nothing enforces them.
type Plan struct {
	shared.BaseAggregateRoot
	PlanDetails
}

// NewPlan creates a catalog entry
func NewPlan(details PlanDetails) (*Plan, error) {
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &Plan{BaseAggregateRoot: shared.NewBaseAggregateRoot(), PlanDetails: details}, nil
}

// Revise replaces the writable state after validating it
func (p *Plan) Revise(details PlanDetails) error {
	details, err := details.normalize()
	if err != nil {
		return err
	}
	p.PlanDetails = details
	p.Touch()
	p.IncrementVersion()
	return nil
}

// PriceFor returns the plan price for a billing cycle
func (p *Plan) PriceFor(cycle BillingCycle) (decimal.Decimal, error) {
	switch cycle {
	case BillingCycleMonthly:
		return p.PriceMonthly, nil
	case BillingCycleYearly:
		return p.PriceYearly, nil
	}
	return decimal.Zero, shared.NewValidationError("billing_cycle", "\""+string(cycle)+"\" is not a valid choice.")
}

func (d PlanDetails) normalize() (PlanDetails, error) {
	d.Name = strings.ToLower(strings.TrimSpace(d.Name))
	d.DisplayName = strings.TrimSpace(d.DisplayName)

	errs := shared.ValidationErrors{}
	switch {
	case d.Name == "":
		errs.Add("name", "This field is required.")
	case len(d.Name) > 50 || !planNameRegex.MatchString(d.Name):
		errs.Add("name", "Use lowercase letters, digits, '-' or '_' (max 50).")
	}
	if d.DisplayName == "" && d.Name != "" {
		d.DisplayName = strings.ToUpper(d.Name[:1]) + d.Name[1:]
	}
	if d.PriceMonthly.IsNegative() {
		errs.Add("price_monthly", "Ensure this value is greater than or equal to 0.")
	}
	if d.PriceYearly.IsNegative() {
		errs.Add("price_yearly", "Ensure this value is greater than or equal to 0.")
	}
	if d.MaxEvents < 0 || d.MaxGuestsPerEvent < 0 || d.MaxVendors < 0 {
		errs.Add("limits", "Limits cannot be negative.")
	}
	if err := errs.Err(); err != nil {
		return d, err
	}
	if d.Features == nil {
		d.Features = []string{}
	}
	d.PriceMonthly = d.PriceMonthly.Round(2)
	d.PriceYearly = d.PriceYearly.Round(2)
	return d, nil
}
