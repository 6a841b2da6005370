package persistence

import (
	"slices"
	"strings"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// Ordering is the ?order_by whitelist of one list endpoint. Column names
// never reach SQL unless they appear in columns.
type Ordering struct {
	// table prefixes every column for joined queries; empty for single-table reads
	table    string
	columns  []string
	fallback string
}

var (
	eventOrdering = Ordering{
		columns:  []string{"date", "created_at", "name", "budget"},
		fallback: "created_at DESC, id ASC",
	}
	budgetItemOrdering = Ordering{
		table:    "budget_items",
		columns:  []string{"due_date", "category", "item_name", "estimated_cost", "actual_cost", "status", "created_at"},
		fallback: "budget_items.due_date ASC, budget_items.category ASC, budget_items.id ASC",
	}
	guestOrdering = Ordering{
		columns:  []string{"name", "category", "rsvp_status", "plus_ones", "created_at"},
		fallback: "name ASC, id ASC",
	}
	vendorOrdering = Ordering{
		columns:  []string{"name", "category", "rating", "price_range", "created_at"},
		fallback: "name ASC, id ASC",
	}
	paymentRequestOrdering = Ordering{
		columns:  []string{"created_at", "submitted_at", "status", "amount"},
		fallback: "created_at DESC, id ASC",
	}
)

// Clause renders the ORDER BY for f. A leading "-" on order_by sorts
// descending, as does order_dir=desc; a column outside the whitelist sorts
// newest first. id always breaks ties so pages never overlap.
func (o Ordering) Clause(f shared.Filter) string {
	column := strings.TrimSpace(f.OrderBy)
	if column == "" {
		return o.fallback
	}

	desc := strings.EqualFold(strings.TrimSpace(f.OrderDir), "desc")
	if rest, ok := strings.CutPrefix(column, "-"); ok {
		column, desc = rest, true
	}
	if !slices.Contains(o.columns, column) {
		column, desc = "created_at", true
	}

	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	return o.qualify(column) + dir + ", " + o.qualify("id") + " ASC"
}

func (o Ordering) qualify(column string) string {
	if o.table == "" {
		return column
	}
	return o.table + "." + column
}
