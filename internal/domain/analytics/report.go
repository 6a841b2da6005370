package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/shopspring/decimal"
)

const recentEventsLimit = 5

// EventBrief is the short form of an event used inside reports
type EventBrief struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Date           string                 `json:"date"`
	Status         planning.EventStatus   `json:"status"`
	Category       planning.EventCategory `json:"category"`
	Budget         decimal.Decimal        `json:"budget"`
	ExpectedGuests int                    `json:"expected_guests"`
}

// Brief converts an event to its report form
func Brief(e *planning.Event) EventBrief {
	return EventBrief{
		ID:             e.ID,
		Name:           e.Name,
		Date:           e.Date.Format("2006-01-02"),
		Status:         e.Status,
		Category:       e.Category,
		Budget:         e.Budget,
		ExpectedGuests: e.ExpectedGuests,
	}
}

// EventReport is the full analytics payload for one event
type EventReport struct {
	Event       EventBrief    `json:"event"`
	Budget      BudgetReport  `json:"budget"`
	Guests      GuestReport   `json:"guests"`
	Vendors     VendorReport  `json:"vendors"`
	Progress    EventProgress `json:"progress"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// BuildEventReport combines the event's rows into one report. Vendors are the
// owner's whole address book; items and guests belong to the event.
func BuildEventReport(event *planning.Event, items []*planning.BudgetItem, guests []*planning.Guest, vendors []*planning.Vendor, now time.Time) EventReport {
	return EventReport{
		Event:       Brief(event),
		Budget:      BuildBudgetReport(items, event.Budget),
		Guests:      BuildGuestReport(guests),
		Vendors:     BuildVendorReport(vendors),
		Progress:    Progress(event.DaysUntil(now)),
		GeneratedAt: now,
	}
}

// OverallStats summarizes all of a user's events
type OverallStats struct {
	TotalEvents         int             `json:"total_events"`
	ActiveEvents        int             `json:"active_events"`
	CompletedEvents     int             `json:"completed_events"`
	CancelledEvents     int             `json:"cancelled_events"`
	TotalBudget         decimal.Decimal `json:"total_budget"`
	TotalExpectedGuests int             `json:"total_expected_guests"`
}

// EventCategoryRollup counts events in a category
type EventCategoryRollup struct {
	Category    planning.EventCategory `json:"category"`
	Count       int                    `json:"count"`
	TotalBudget decimal.Decimal        `json:"total_budget"`
}

// EventStatusRollup counts events in a status
type EventStatusRollup struct {
	Status planning.EventStatus `json:"status"`
	Count  int                  `json:"count"`
}

// EventMonth counts events created in a month
type EventMonth struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// OverallReport is the cross-event analytics payload
type OverallReport struct {
	OverallStats     OverallStats          `json:"overall_stats"`
	EventsByCategory []EventCategoryRollup `json:"events_by_category"`
	EventsByStatus   []EventStatusRollup   `json:"events_by_status"`
	MonthlyTrend     []EventMonth          `json:"monthly_trend"`
	RecentEvents     []EventBrief          `json:"recent_events"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// BuildOverallReport rolls up every event the user owns
func BuildOverallReport(events []*planning.Event, now time.Time) OverallReport {
	stats := OverallStats{TotalBudget: decimal.Zero}
	categories := make(map[planning.EventCategory]*EventCategoryRollup)
	statuses := make(map[planning.EventStatus]int)
	months := make(map[string]int)

	for _, e := range events {
		stats.TotalEvents++
		stats.TotalBudget = stats.TotalBudget.Add(e.Budget)
		stats.TotalExpectedGuests += e.ExpectedGuests
		switch e.Status {
		case planning.EventStatusPlanning, planning.EventStatusConfirmed, planning.EventStatusActive:
			stats.ActiveEvents++
		case planning.EventStatusCompleted:
			stats.CompletedEvents++
		case planning.EventStatusCancelled:
			stats.CancelledEvents++
		}

		c, ok := categories[e.Category]
		if !ok {
			c = &EventCategoryRollup{Category: e.Category, TotalBudget: decimal.Zero}
			categories[e.Category] = c
		}
		c.Count++
		c.TotalBudget = c.TotalBudget.Add(e.Budget)

		statuses[e.Status]++
		months[MonthKey(e.CreatedAt)]++
	}

	byCategory := make([]EventCategoryRollup, 0, len(categories))
	for _, c := range categories {
		byCategory = append(byCategory, *c)
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Count != byCategory[j].Count {
			return byCategory[i].Count > byCategory[j].Count
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	byStatus := make([]EventStatusRollup, 0, len(statuses))
	for _, status := range planning.EventStatuses {
		if n, ok := statuses[status]; ok {
			byStatus = append(byStatus, EventStatusRollup{Status: status, Count: n})
		}
	}

	trend := make([]EventMonth, 0, len(months))
	for month, n := range months {
		trend = append(trend, EventMonth{Month: month, Count: n})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	recent := make([]*planning.Event, len(events))
	copy(recent, events)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > recentEventsLimit {
		recent = recent[:recentEventsLimit]
	}
	briefs := make([]EventBrief, 0, len(recent))
	for _, e := range recent {
		briefs = append(briefs, Brief(e))
	}

	return OverallReport{
		OverallStats:     stats,
		EventsByCategory: byCategory,
		EventsByStatus:   byStatus,
		MonthlyTrend:     trend,
		RecentEvents:     briefs,
		GeneratedAt:      now,
	}
}
