package persistence

import (
	"testing"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestOrdering_Clause(t *testing.T) {
	tests := []struct {
		name     string
		ordering Ordering
		filter   shared.Filter
		want     string
	}{
		{"no order_by keeps newest events first", eventOrdering, shared.Filter{}, "created_at DESC, id ASC"},
		{"plain column sorts ascending", eventOrdering, shared.Filter{OrderBy: "date"}, "date ASC, id ASC"},
		{"dash prefix sorts descending", eventOrdering, shared.Filter{OrderBy: "-budget"}, "budget DESC, id ASC"},
		{"order_dir desc", guestOrdering, shared.Filter{OrderBy: "plus_ones", OrderDir: "DESC"}, "plus_ones DESC, id ASC"},
		{"guests default by name", guestOrdering, shared.Filter{}, "name ASC, id ASC"},
		{"column of another resource", eventOrdering, shared.Filter{OrderBy: "rating"}, "created_at DESC, id ASC"},
		{"budget items default", budgetItemOrdering, shared.Filter{},
			"budget_items.due_date ASC, budget_items.category ASC, budget_items.id ASC"},
		{"joined query is qualified", budgetItemOrdering, shared.Filter{OrderBy: "-actual_cost"},
			"budget_items.actual_cost DESC, budget_items.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ordering.Clause(tt.filter))
		})
	}
}

func TestOrdering_RejectsInjectedColumns(t *testing.T) {
	payloads := []string{
		"name; DROP TABLE events;--",
		"name' OR '1'='1",
		"-name, (SELECT password_hash FROM users)",
		"CASE WHEN 1=1 THEN name ELSE budget END",
		"name/**/",
		"--name",
		"NAME",
	}

	for _, p := range payloads {
		t.Run(p, func(t *testing.T) {
			assert.Equal(t, "created_at DESC, id ASC",
				vendorOrdering.Clause(shared.Filter{OrderBy: p, OrderDir: "asc; --"}))
		})
	}
}
