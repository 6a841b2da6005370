package analytics

import (
	"sort"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/shopspring/decimal"
)

// BudgetStats totals an event's budget items
type BudgetStats struct {
	TotalEstimated decimal.Decimal `json:"total_estimated"`
	TotalActual    decimal.Decimal `json:"total_actual"`
	TotalItems     int             `json:"total_items"`
	PaidItems      int             `json:"paid_items"`
	PendingItems   int             `json:"pending_items"`
	PartialItems   int             `json:"partial_items"`
	OverdueItems   int             `json:"overdue_items"`
}

// BudgetCategoryRollup totals one spending category
type BudgetCategoryRollup struct {
	Category  planning.BudgetCategory `json:"category"`
	Estimated decimal.Decimal         `json:"estimated"`
	Actual    decimal.Decimal         `json:"actual"`
	Count     int                     `json:"count"`
}

// BudgetMonth is actual spend of items created in a month
type BudgetMonth struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// BudgetReport is the budget section of event analytics
type BudgetReport struct {
	Stats             BudgetStats            `json:"stats"`
	ByCategory        []BudgetCategoryRollup `json:"by_category"`
	Timeline          []BudgetMonth          `json:"timeline"`
	BudgetUtilization float64                `json:"budget_utilization"`
	Variance          decimal.Decimal        `json:"variance"`
}

// SummarizeBudget totals budget items and counts them by payment status
func SummarizeBudget(items []*planning.BudgetItem) BudgetStats {
	stats := BudgetStats{TotalEstimated: decimal.Zero, TotalActual: decimal.Zero}
	for _, item := range items {
		stats.TotalItems++
		stats.TotalEstimated = stats.TotalEstimated.Add(item.EstimatedCost)
		stats.TotalActual = stats.TotalActual.Add(item.ActualCost)
		switch item.Status {
		case planning.PaymentStatusPaid:
			stats.PaidItems++
		case planning.PaymentStatusPending:
			stats.PendingItems++
		case planning.PaymentStatusPartial:
			stats.PartialItems++
		case planning.PaymentStatusOverdue:
			stats.OverdueItems++
		}
	}
	return stats
}

// BuildBudgetReport produces the budget section for an event with the given budget ceiling
func BuildBudgetReport(items []*planning.BudgetItem, eventBudget decimal.Decimal) BudgetReport {
	stats := SummarizeBudget(items)
	return BudgetReport{
		Stats:             stats,
		ByCategory:        budgetByCategory(items),
		Timeline:          budgetTimeline(items),
		BudgetUtilization: BudgetUtilization(stats.TotalActual, eventBudget),
		Variance:          Variance(stats.TotalActual, stats.TotalEstimated),
	}
}

func budgetByCategory(items []*planning.BudgetItem) []BudgetCategoryRollup {
	index := make(map[planning.BudgetCategory]*BudgetCategoryRollup)
	for _, item := range items {
		r, ok := index[item.Category]
		if !ok {
			r = &BudgetCategoryRollup{Category: item.Category, Estimated: decimal.Zero, Actual: decimal.Zero}
			index[item.Category] = r
		}
		r.Estimated = r.Estimated.Add(item.EstimatedCost)
		r.Actual = r.Actual.Add(item.ActualCost)
		r.Count++
	}
	out := make([]BudgetCategoryRollup, 0, len(index))
	for _, r := range index {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Estimated.Cmp(out[j].Estimated); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func budgetTimeline(items []*planning.BudgetItem) []BudgetMonth {
	index := make(map[string]*BudgetMonth)
	for _, item := range items {
		key := MonthKey(item.CreatedAt)
		m, ok := index[key]
		if !ok {
			m = &BudgetMonth{Month: key, Amount: decimal.Zero}
			index[key] = m
		}
		m.Amount = m.Amount.Add(item.ActualCost)
		m.Count++
	}
	out := make([]BudgetMonth, 0, len(index))
	for _, m := range index {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
