package planning

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// GuestCategory groups guests
type GuestCategory string

const (
	GuestCategoryFamily     GuestCategory = "family"
	GuestCategoryFriends    GuestCategory = "friends"
	GuestCategoryColleagues GuestCategory = "colleagues"
	GuestCategoryVIP        GuestCategory = "vip"
	GuestCategoryVendors    GuestCategory = "vendors"
	GuestCategoryOther      GuestCategory = "other"
)

// IsValid checks if the category is a known value
func (c GuestCategory) IsValid() bool {
	switch c {
	case GuestCategoryFamily, GuestCategoryFriends, GuestCategoryColleagues, GuestCategoryVIP,
		GuestCategoryVendors, GuestCategoryOther:
		return true
	}
	return false
}

// RSVPStatus is a guest's reply to the invitation
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
	RSVPMaybe     RSVPStatus = "maybe"
)

// IsValid checks if the status is a known value
func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPPending, RSVPConfirmed, RSVPDeclined, RSVPMaybe:
		return true
	}
	return false
}

// RSVPStatuses lists every RSVP status
var RSVPStatuses = []RSVPStatus{RSVPPending, RSVPConfirmed, RSVPDeclined, RSVPMaybe}

// GuestDetails is the writable state of a guest
type GuestDetails struct {
	EventID             uuid.UUID
	Name                string
	Email               string
	Phone               string
	WhatsAppNumber      string
	Category            GuestCategory
	RSVPStatus          RSVPStatus
	PlusOnes            int
	DietaryRestrictions string
	Notes               string
	InvitationSent      bool
	InvitationSentDate  *time.Time
	CheckedIn           bool
	CheckInTime         *time.Time
}

// Guest is an invitee of an event.
// CheckedIn does not require InvitationSent; walk-ins are allowed.
type Guest struct {
	shared.BaseAggregateRoot
	GuestDetails
}

// NewGuest creates a guest for an event the caller owns
func NewGuest(details GuestDetails) (*Guest, error) {
	if details.RSVPStatus == "" {
		details.RSVPStatus = RSVPPending
	}
	details, err := details.normalize(GuestDetails{})
	if err != nil {
		return nil, err
	}
	return &Guest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GuestDetails:      details,
	}, nil
}

// Revise replaces the writable state after validating it. An empty RSVP
// status keeps the current one.
func (g *Guest) Revise(details GuestDetails) error {
	if details.RSVPStatus == "" {
		details.RSVPStatus = g.RSVPStatus
	}
	details, err := details.normalize(g.GuestDetails)
	if err != nil {
		return err
	}
	g.GuestDetails = details
	g.Touch()
	g.IncrementVersion()
	return nil
}

// TotalAttendees counts the guest plus their plus-ones
func (g *Guest) TotalAttendees() int {
	return 1 + g.PlusOnes
}

// ContactNumber prefers the WhatsApp number over the phone number
func (g *Guest) ContactNumber() string {
	if g.WhatsAppNumber != "" {
		return g.WhatsAppNumber
	}
	return g.Phone
}

func (d GuestDetails) normalize(previous GuestDetails) (GuestDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)

	errs := shared.ValidationErrors{}
	if d.EventID == uuid.Nil {
		errs.Add("event_id", msgRequired)
	}
	requireText(errs, "name", d.Name, 200)
	optionalEmail(errs, "email", d.Email)
	limitText(errs, "phone", d.Phone, 20)
	limitText(errs, "whatsapp_number", d.WhatsAppNumber, 20)
	choice(errs, "category", d.Category, GuestCategory.IsValid)
	choice(errs, "rsvp_status", d.RSVPStatus, RSVPStatus.IsValid)
	if d.PlusOnes < 0 {
		errs.Add("plus_ones", "Ensure this value is greater than or equal to 0.")
	}
	if err := errs.Err(); err != nil {
		return d, err
	}

	now := time.Now()
	d.InvitationSentDate = stampFlag(d.InvitationSent, d.InvitationSentDate, previous.InvitationSentDate, now)
	d.CheckInTime = stampFlag(d.CheckedIn, d.CheckInTime, previous.CheckInTime, now)
	return d, nil
}

// stampFlag keeps a flag's companion timestamp in step with the flag
func stampFlag(flag bool, requested, previous *time.Time, now time.Time) *time.Time {
	if !flag {
		return nil
	}
	if requested != nil {
		return requested
	}
	if previous != nil {
		return previous
	}
	return &now
}
