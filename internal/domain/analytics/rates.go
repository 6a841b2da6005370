// Package analytics computes read-side rollups over planning resources.
// Every function here is pure: callers fetch the owned rows and pass them in.
package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the bucket key format used by every time series
const MonthLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// Round2 rounds a float to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns num/den*100 rounded to two places, or 0 when den <= 0
func Percent(num, den decimal.Decimal) float64 {
	if !den.IsPositive() {
		return 0
	}
	return num.Mul(hundred).Div(den).Round(2).InexactFloat64()
}

// BudgetUtilization is actual spend as a percentage of the event budget
func BudgetUtilization(actualTotal, budget decimal.Decimal) float64 {
	return Percent(actualTotal, budget)
}

// Variance is actual minus estimated spend; negative means under estimate
func Variance(actualTotal, estimatedTotal decimal.Decimal) decimal.Decimal {
	return actualTotal.Sub(estimatedTotal)
}

// RSVPRate is confirmed guests as a percentage of all guests
func RSVPRate(confirmed, total int) float64 {
	return boundedRate(confirmed, total)
}

// AttendanceRate is checked-in guests as a percentage of confirmed guests.
// Walk-ins can push check-ins past confirmations, so the result is capped at 100.
func AttendanceRate(checkedIn, confirmed int) float64 {
	return boundedRate(checkedIn, confirmed)
}

func boundedRate(num, den int) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	if num >= den {
		return 100
	}
	return Percent(decimal.NewFromInt(int64(num)), decimal.NewFromInt(int64(den)))
}

// EventProgress describes how close an event is
type EventProgress struct {
	DaysUntilEvent   int  `json:"days_until_event"`
	IsPastEvent      bool `json:"is_past_event"`
	PlanningProgress int  `json:"planning_progress"`
}

// Progress computes the planning heuristic: 2% per day remaining off 100,
// reaching 100 fifty days out and staying there through and after the event.
func Progress(daysUntilEvent int) EventProgress {
	progress := 100
	if daysUntilEvent > 0 {
		progress = min(100, max(0, 100-daysUntilEvent*2))
	}
	return EventProgress{
		DaysUntilEvent:   daysUntilEvent,
		IsPastEvent:      daysUntilEvent < 0,
		PlanningProgress: progress,
	}
}

// MonthKey buckets a timestamp by its calendar month
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}
