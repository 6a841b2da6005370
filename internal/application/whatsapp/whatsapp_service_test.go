package whatsapp_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/application/whatsapp"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence"
	"github.com/m3shovon/Event-SaaS-Platform/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"national form", "01711-000000", "8801711000000"},
		{"international plus", "+880 1711 000000", "8801711000000"},
		{"double zero prefix", "00441234567890", "441234567890"},
		{"plus with leading zero kept", "+0123456789", "0123456789"},
		{"already international", "8801711000000", "8801711000000"},
		{"too short", "12345", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, whatsapp.NormalizeNumber(tt.raw, whatsapp.DefaultCountryCode))
		})
	}
}

func TestChatLink(t *testing.T) {
	link := whatsapp.ChatLink("8801711000000", "Hi Ayesha! See you & yours at 7 pm")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/8801711000000?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi Ayesha! See you & yours at 7 pm", u.Query().Get("text"))
}

type whatsappFixture struct {
	db      *gorm.DB
	service *whatsapp.WhatsAppService
	owner   uuid.UUID
	event   *planning.Event
}

func newWhatsAppFixture(t *testing.T) *whatsappFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	events := persistence.NewGormEventRepository(db)

	owner, err := identity.NewUser("planner@example.com", "planner123", identity.Profile{
		BusinessName: "Dhaka Weddings",
		BusinessType: "Wedding Planner",
		City:         "Dhaka",
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(db).Create(context.Background(), owner))

	event, err := planning.NewEvent(owner.ID, planning.EventDetails{
		Name:     "Rahman Wedding",
		Category: planning.EventCategoryWedding,
		Date:     time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		Time:     "18:30",
		Venue:    "Radisson Blu",
		Budget:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	require.NoError(t, events.Create(context.Background(), event))

	return &whatsappFixture{
		db:      db,
		service: whatsapp.NewWhatsAppService(events, persistence.NewGormGuestRepository(db), "", nil),
		owner:   owner.ID,
		event:   event,
	}
}

func (f *whatsappFixture) guest(t *testing.T, name, phone, whatsappNumber, email string) *planning.Guest {
	t.Helper()
	g, err := planning.NewGuest(planning.GuestDetails{
		EventID:        f.event.ID,
		Name:           name,
		Phone:          phone,
		WhatsAppNumber: whatsappNumber,
		Email:          email,
		Category:       planning.GuestCategoryFamily,
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormGuestRepository(f.db).Create(context.Background(), g))
	return g
}

func TestWhatsAppService_Contacts(t *testing.T) {
	f := newWhatsAppFixture(t)
	f.guest(t, "Ayesha", "01711000000", "", "ayesha@example.com")
	f.guest(t, "Babul", "01711000001", "+880 1811 000000", "")
	f.guest(t, "Chandni", "", "", "chandni@example.com")

	resp, err := f.service.Contacts(context.Background(), f.owner, f.event.ID)
	require.NoError(t, err)

	assert.Equal(t, "Rahman Wedding", resp.Event.Name)
	assert.Equal(t, "2026-12-20", resp.Event.Date)
	assert.Equal(t, 3, resp.TotalGuests)
	assert.Equal(t, 2, resp.PhoneCount)
	assert.Equal(t, 2, resp.EmailCount)

	phones := map[string]string{}
	for _, c := range resp.ContactsWithPhone {
		phones[c.Name] = c.Phone
	}
	assert.Equal(t, "8801711000000", phones["Ayesha"])
	assert.Equal(t, "8801811000000", phones["Babul"], "WhatsApp number wins over phone")
}

func TestWhatsAppService_CreateGroup(t *testing.T) {
	f := newWhatsAppFixture(t)
	ayesha := f.guest(t, "Ayesha", "01711000000", "", "")
	f.guest(t, "Babul", "01711000001", "", "")
	noPhone := f.guest(t, "Chandni", "", "", "chandni@example.com")

	t.Run("every guest by default", func(t *testing.T) {
		resp, err := f.service.CreateGroup(context.Background(), f.owner, f.event.ID, whatsapp.GroupRequest{})
		require.NoError(t, err)

		assert.Equal(t, "Rahman Wedding - Dec 20, 2026", resp.GroupName)
		assert.Equal(t, "rahman-wedding-2026-12-20", resp.GroupTag)
		assert.Equal(t, []string{"8801711000000", "8801711000001"}, resp.PhoneNumbers)
		assert.Equal(t, []string{"Ayesha", "Babul"}, resp.GuestNames)
		assert.Equal(t, "+8801711000000, +8801711000001", resp.FormattedNumbers)
		assert.Equal(t, 2, resp.TotalGuests)
		assert.Contains(t, resp.WelcomeMessage, "Welcome to Rahman Wedding!")
		assert.Contains(t, resp.WelcomeMessage, "Venue: Radisson Blu")
		assert.NotEmpty(t, resp.WhatsAppGroupURL)
		assert.NotEmpty(t, resp.Instructions)
		require.Len(t, resp.IndividualLinks, 2)
		assert.True(t, strings.HasPrefix(resp.IndividualLinks[0].Link, "https://wa.me/8801711000000?text=Hi%20Ayesha"))
	})

	t.Run("selected guests with a custom message", func(t *testing.T) {
		resp, err := f.service.CreateGroup(context.Background(), f.owner, f.event.ID, whatsapp.GroupRequest{
			GuestIDs: []uuid.UUID{ayesha.ID, noPhone.ID},
			Message:  "Dinner at 8",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ayesha"}, resp.GuestNames)
		assert.Equal(t, "Dinner at 8", resp.WelcomeMessage)
		assert.Equal(t, 1, resp.TotalGuests)
	})

	t.Run("no reachable guests", func(t *testing.T) {
		_, err := f.service.CreateGroup(context.Background(), f.owner, f.event.ID, whatsapp.GroupRequest{
			GuestIDs: []uuid.UUID{noPhone.ID},
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("foreign event", func(t *testing.T) {
		_, err := f.service.CreateGroup(context.Background(), uuid.New(), f.event.ID, whatsapp.GroupRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
