// Package whatsapp prepares guest contact lists and invite links for
// WhatsApp. Nothing is sent; the planner opens the links themselves.
package whatsapp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	// DefaultCountryCode is prefixed to numbers written in national form
	DefaultCountryCode = "880"

	chatBaseURL  = "https://wa.me/"
	webURL       = "https://web.whatsapp.com/"
	minDigits    = 8
	maxGroupName = 100
)

// Contact is a guest reachable by phone or email
type Contact struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Category   string    `json:"category"`
	RSVPStatus string    `json:"rsvp_status"`
}

// EventRef identifies the event a contact list belongs to
type EventRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Date string    `json:"date"`
}

// ContactsResponse lists an event's guests that can be reached
type ContactsResponse struct {
	Event             EventRef  `json:"event"`
	TotalGuests       int       `json:"total_guests"`
	ContactsWithPhone []Contact `json:"contacts_with_phone"`
	ContactsWithEmail []Contact `json:"contacts_with_email"`
	PhoneCount        int       `json:"phone_count"`
	EmailCount        int       `json:"email_count"`
}

// GroupRequest selects guests for a group. An empty GuestIDs means every guest.
type GroupRequest struct {
	GuestIDs []uuid.UUID `json:"guest_ids"`
	Message  string      `json:"message" binding:"max=2000"`
}

// IndividualLink opens a chat with one guest, prefilled with the message
type IndividualLink struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Link  string `json:"link"`
}

// GroupResponse is everything needed to create the group by hand
type GroupResponse struct {
	GroupName        string           `json:"group_name"`
	GroupTag         string           `json:"group_tag"`
	PhoneNumbers     []string         `json:"phone_numbers"`
	GuestNames       []string         `json:"guest_names"`
	FormattedNumbers string           `json:"formatted_numbers"`
	WelcomeMessage   string           `json:"welcome_message"`
	WhatsAppGroupURL string           `json:"whatsapp_group_url"`
	IndividualLinks  []IndividualLink `json:"individual_links"`
	TotalGuests      int              `json:"total_guests"`
	Instructions     []string         `json:"instructions"`
}

// WhatsAppService builds contact lists and invite links for an owner's events
type WhatsAppService struct {
	events      planning.EventRepository
	guests      planning.GuestRepository
	countryCode string
	logger      *zap.Logger
}

// NewWhatsAppService creates a new WhatsAppService. An empty countryCode
// falls back to DefaultCountryCode.
func NewWhatsAppService(events planning.EventRepository, guests planning.GuestRepository, countryCode string, logger *zap.Logger) *WhatsAppService {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppService{
		events:      events,
		guests:      guests,
		countryCode: digitsOnly(countryCode),
		logger:      logger,
	}
}

// Contacts returns the guests of an event that have a usable number or email
func (s *WhatsAppService) Contacts(ctx context.Context, ownerID, eventID uuid.UUID) (*ContactsResponse, error) {
	event, err := s.events.FindByID(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guests.ListByEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}

	resp := &ContactsResponse{
		Event:             EventRef{ID: event.ID, Name: event.Name, Date: event.Date.Format("2006-01-02")},
		TotalGuests:       len(guests),
		ContactsWithPhone: []Contact{},
		ContactsWithEmail: []Contact{},
	}
	for _, g := range guests {
		c := Contact{
			ID:         g.ID,
			Name:       g.Name,
			Phone:      NormalizeNumber(g.ContactNumber(), s.countryCode),
			Email:      g.Email,
			Category:   string(g.Category),
			RSVPStatus: string(g.RSVPStatus),
		}
		if c.Phone != "" {
			resp.ContactsWithPhone = append(resp.ContactsWithPhone, c)
		}
		if c.Email != "" {
			resp.ContactsWithEmail = append(resp.ContactsWithEmail, c)
		}
	}
	resp.PhoneCount = len(resp.ContactsWithPhone)
	resp.EmailCount = len(resp.ContactsWithEmail)
	return resp, nil
}

// CreateGroup prepares the group name, numbers, welcome message and one
// prefilled chat link per selected guest with a usable number
func (s *WhatsAppService) CreateGroup(ctx context.Context, ownerID, eventID uuid.UUID, req GroupRequest) (*GroupResponse, error) {
	event, err := s.events.FindByID(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}

	var guests []*planning.Guest
	if len(req.GuestIDs) > 0 {
		guests, err = s.guests.FindByIDs(ctx, ownerID, eventID, req.GuestIDs)
	} else {
		guests, err = s.guests.ListByEvent(ctx, ownerID, eventID)
	}
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = WelcomeMessage(event)
	}
	tag := slug.Make(event.Name + " " + event.Date.Format("2006-01-02"))

	resp := &GroupResponse{
		GroupName:        GroupName(event),
		GroupTag:         tag,
		PhoneNumbers:     []string{},
		GuestNames:       []string{},
		WelcomeMessage:   message,
		WhatsAppGroupURL: webURL,
		IndividualLinks:  []IndividualLink{},
	}
	formatted := make([]string, 0, len(guests))
	for _, g := range guests {
		number := NormalizeNumber(g.ContactNumber(), s.countryCode)
		if number == "" {
			continue
		}
		resp.PhoneNumbers = append(resp.PhoneNumbers, number)
		resp.GuestNames = append(resp.GuestNames, g.Name)
		formatted = append(formatted, "+"+number)
		resp.IndividualLinks = append(resp.IndividualLinks, IndividualLink{
			Name:  g.Name,
			Phone: "+" + number,
			Link:  ChatLink(number, fmt.Sprintf("Hi %s! %s", g.Name, message)),
		})
	}
	if len(resp.PhoneNumbers) == 0 {
		return nil, shared.NewValidationError("guest_ids", "No guests with phone numbers found for this event.")
	}

	resp.TotalGuests = len(resp.PhoneNumbers)
	resp.FormattedNumbers = strings.Join(formatted, ", ")
	resp.Instructions = []string{
		"Open WhatsApp and tap New group.",
		fmt.Sprintf("Name the group \"%s\".", resp.GroupName),
		fmt.Sprintf("Add the %d phone numbers listed above.", resp.TotalGuests),
		"Post the welcome message once the group is created.",
		"Guests not on your contacts can be invited with their individual links.",
	}

	logger.L(ctx).Info("WhatsApp group prepared",
		zap.String("event_id", eventID.String()),
		zap.Int("contacts", resp.TotalGuests))
	return resp, nil
}

// GroupName is the event name and date, trimmed to the group name limit
func GroupName(e *planning.Event) string {
	name := fmt.Sprintf("%s - %s", e.Name, e.Date.Format("Jan 2, 2006"))
	if runes := []rune(name); len(runes) > maxGroupName {
		name = string(runes[:maxGroupName])
	}
	return name
}

// WelcomeMessage is the default text posted to a new event group
func WelcomeMessage(e *planning.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome to %s!\n\n", e.Name)
	fmt.Fprintf(&b, "Date: %s\n", e.Date.Format("Monday, January 2, 2006"))
	if e.Time != "" {
		fmt.Fprintf(&b, "Time: %s\n", strings.TrimSuffix(e.Time, ":00"))
	}
	fmt.Fprintf(&b, "Venue: %s\n", e.Venue)
	if e.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", e.Address)
	}
	b.WriteString("\nThis group will be used to share updates about the event. We look forward to seeing you!")
	return b.String()
}

// ChatLink is a wa.me link to number with the message prefilled
func ChatLink(number, message string) string {
	return chatBaseURL + number + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// NormalizeNumber reduces a phone number to international digits. A leading
// 00 is an international prefix; a single leading 0 is national form and gets
// countryCode. Numbers too short to dial yield "".
func NormalizeNumber(raw, countryCode string) string {
	digits := digitsOnly(raw)
	switch {
	case strings.HasPrefix(digits, "00"):
		digits = digits[2:]
	case strings.HasPrefix(digits, "0") && countryCode != "" && !strings.HasPrefix(strings.TrimSpace(raw), "+"):
		digits = countryCode + digits[1:]
	}
	if len(digits) < minDigits {
		return ""
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
