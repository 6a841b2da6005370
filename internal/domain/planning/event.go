package planning

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventCategory classifies an event
type EventCategory string

const (
	EventCategoryWedding     EventCategory = "wedding"
	EventCategoryCorporate   EventCategory = "corporate"
	EventCategoryCommunity   EventCategory = "community"
	EventCategorySocial      EventCategory = "social"
	EventCategoryBirthday    EventCategory = "birthday"
	EventCategoryAnniversary EventCategory = "anniversary"
	EventCategoryConference  EventCategory = "conference"
	EventCategorySeminar     EventCategory = "seminar"
	EventCategoryOther       EventCategory = "other"
)

// IsValid checks if the category is a known value
func (c EventCategory) IsValid() bool {
	switch c {
	case EventCategoryWedding, EventCategoryCorporate, EventCategoryCommunity, EventCategorySocial,
		EventCategoryBirthday, EventCategoryAnniversary, EventCategoryConference, EventCategorySeminar,
		EventCategoryOther:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planning"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPlanning, EventStatusConfirmed, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// EventStatuses lists every status in lifecycle order
var EventStatuses = []EventStatus{
	EventStatusPlanning, EventStatusConfirmed, EventStatusActive, EventStatusCompleted, EventStatusCancelled,
}

// EventDetails is the writable state of an event
type EventDetails struct {
	Name                string
	Category            EventCategory
	Description         string
	Date                time.Time
	Time                string
	Venue               string
	Address             string
	Budget              decimal.Decimal
	ExpectedGuests      int
	Status              EventStatus
	SpecialRequirements string
	ContactPerson       string
	ContactPhone        string
	ContactEmail        string
}

// Event is a planned occasion owned by a user
type Event struct {
	shared.OwnedAggregateRoot
	EventDetails
}

// NewEvent creates an event for the owner
func NewEvent(ownerID uuid.UUID, details EventDetails) (*Event, error) {
	if details.Status == "" {
		details.Status = EventStatusPlanning
	}
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &Event{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		EventDetails:       details,
	}, nil
}

// Revise replaces the writable state after validating it. An empty status
// keeps the current one.
func (e *Event) Revise(details EventDetails) error {
	if details.Status == "" {
		details.Status = e.Status
	}
	details, err := details.normalize()
	if err != nil {
		return err
	}
	e.EventDetails = details
	e.Touch()
	e.IncrementVersion()
	return nil
}

// DaysUntil returns the whole days between today and the event date.
// Negative values mean the event is in the past.
func (e *Event) DaysUntil(today time.Time) int {
	return int(DateOnly(e.Date).Sub(DateOnly(today)).Hours() / 24)
}

func (d EventDetails) normalize() (EventDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Venue = strings.TrimSpace(d.Venue)
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)

	errs := shared.ValidationErrors{}
	requireText(errs, "name", d.Name, 200)
	choice(errs, "category", d.Category, EventCategory.IsValid)
	choice(errs, "status", d.Status, EventStatus.IsValid)
	if d.Date.IsZero() {
		errs.Add("date", msgRequired)
	}
	if d.Time == "" {
		errs.Add("time", msgRequired)
	} else if canonical, err := ParseTimeOfDay(d.Time); err != nil {
		errs.Add("time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss].")
	} else {
		d.Time = canonical
	}
	requireText(errs, "venue", d.Venue, 200)
	nonNegativeMoney(errs, "budget", d.Budget, 12)
	if d.ExpectedGuests < 0 {
		errs.Add("expected_guests", "Ensure this value is greater than or equal to 0.")
	}
	limitText(errs, "contact_person", d.ContactPerson, 100)
	limitText(errs, "contact_phone", d.ContactPhone, 20)
	optionalEmail(errs, "contact_email", d.ContactEmail)
	if err := errs.Err(); err != nil {
		return d, err
	}
	d.Date = DateOnly(d.Date)
	return d, nil
}
