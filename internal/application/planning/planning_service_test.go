package planning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appplanning "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence"
	"github.com/m3shovon/Event-SaaS-Platform/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type planningFixture struct {
	db      *gorm.DB
	events  *appplanning.EventService
	budget  *appplanning.BudgetService
	guests  *appplanning.GuestService
	vendors *appplanning.VendorService
}

func newPlanningFixture(t *testing.T) *planningFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	eventRepo := persistence.NewGormEventRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	log := zap.NewNop()
	return &planningFixture{
		db:      db,
		events:  appplanning.NewEventService(eventRepo, log),
		budget:  appplanning.NewBudgetService(persistence.NewGormBudgetItemRepository(db), eventRepo, vendorRepo, log),
		guests:  appplanning.NewGuestService(persistence.NewGormGuestRepository(db), eventRepo, log),
		vendors: appplanning.NewVendorService(vendorRepo, log),
	}
}

func (f *planningFixture) seedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := identity.NewUser(email, "planner123", identity.Profile{
		BusinessName: "Dhaka Weddings",
		BusinessType: "Wedding Planner",
		City:         "Dhaka",
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(f.db).Create(context.Background(), user))
	return user.ID
}

func (f *planningFixture) createEvent(t *testing.T, ownerID uuid.UUID, name, budget string) *appplanning.EventResponse {
	t.Helper()
	resp, err := f.events.Create(context.Background(), ownerID, eventRequest(name, budget))
	require.NoError(t, err)
	return resp
}

func (f *planningFixture) createVendor(t *testing.T, ownerID uuid.UUID, name string) *appplanning.VendorResponse {
	t.Helper()
	resp, err := f.vendors.Create(context.Background(), ownerID, appplanning.VendorRequest{
		Name:       name,
		Category:   "catering",
		Phone:      "01711000000",
		Address:    "Gulshan 2, Dhaka",
		Services:   "Buffet",
		Rating:     decimal.RequireFromString("4.5"),
		PriceRange: "premium",
	})
	require.NoError(t, err)
	return resp
}

func eventRequest(name, budget string) appplanning.EventRequest {
	return appplanning.EventRequest{
		Name:     name,
		Category: "wedding",
		Date:     "2026-12-20",
		Time:     "18:30",
		Venue:    "Radisson Blu",
		Budget:   decimal.RequireFromString(budget),
	}
}

func budgetRequest(eventID uuid.UUID, vendorID *uuid.UUID, name, estimated, actual string) appplanning.BudgetItemRequest {
	return appplanning.BudgetItemRequest{
		EventID:       eventID,
		VendorID:      vendorID,
		Category:      "catering",
		ItemName:      name,
		EstimatedCost: decimal.RequireFromString(estimated),
		ActualCost:    decimal.RequireFromString(actual),
	}
}

func guestRequest(eventID uuid.UUID, name, rsvp string, plusOnes int, checkedIn bool) appplanning.GuestRequest {
	return appplanning.GuestRequest{
		EventID:    eventID,
		Name:       name,
		Phone:      "+8801711000000",
		Category:   "family",
		RSVPStatus: rsvp,
		PlusOnes:   plusOnes,
		CheckedIn:  checkedIn,
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Fields
}

func TestEventService_CreateDefaultsAndSummaries(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")

	created := f.createEvent(t, owner, "Rahman Wedding", "1000")
	assert.Equal(t, "planning", created.Status)
	assert.Equal(t, "2026-12-20", created.Date)
	assert.Equal(t, "18:30:00", created.Time)
	assert.Equal(t, int64(0), created.BudgetItemsCount)
	assert.True(t, created.TotalSpent.IsZero())

	_, err := f.budget.Create(ctx, owner, budgetRequest(created.ID, nil, "Buffet", "800", "1200"))
	require.NoError(t, err)
	_, err = f.guests.Create(ctx, owner, guestRequest(created.ID, "Ayesha", "confirmed", 1, false))
	require.NoError(t, err)

	got, err := f.events.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.BudgetItemsCount)
	assert.Equal(t, int64(1), got.GuestsCount)
	assert.True(t, got.TotalSpent.Equal(decimal.NewFromInt(1200)))

	page, err := f.events.List(ctx, owner, appplanning.EventListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, shared.DefaultPageSize, page.PageSize)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(1), page.Results[0].GuestsCount)
}

func TestEventService_ValidationIsReportedPerField(t *testing.T) {
	f := newPlanningFixture(t)
	owner := f.seedUser(t, "planner@example.com")

	req := eventRequest("", "-5")
	req.Date = "20-12-2026"
	_, err := f.events.Create(context.Background(), owner, req)
	require.Error(t, err)
	assert.Contains(t, fieldErrors(t, err), "date")

	req.Date = "2026-12-20"
	req.Category = "picnic"
	_, err = f.events.Create(context.Background(), owner, req)
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "budget")
	assert.Contains(t, fields, "category")
}

func TestEventService_OtherOwnersSeeNotFound(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice@example.com")
	bob := f.seedUser(t, "bob@example.com")
	event := f.createEvent(t, alice, "Rahman Wedding", "1000")

	_, err := f.events.Get(ctx, bob, event.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.events.Update(ctx, bob, event.ID, eventRequest("Hijacked", "1"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, f.events.Delete(ctx, bob, event.ID), shared.ErrNotFound)

	page, err := f.events.List(ctx, bob, appplanning.EventListFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestEventService_UpdateAndDeleteCascade(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")
	item, err := f.budget.Create(ctx, owner, budgetRequest(event.ID, nil, "Buffet", "800", "0"))
	require.NoError(t, err)

	req := eventRequest("Rahman Wedding Reception", "1500")
	req.Status = "confirmed"
	updated, err := f.events.Update(ctx, owner, event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Rahman Wedding Reception", updated.Name)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, int64(1), updated.BudgetItemsCount)

	require.NoError(t, f.events.Delete(ctx, owner, event.ID))
	_, err = f.budget.Get(ctx, owner, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBudgetService_ReadModelAndReferences(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	other := f.seedUser(t, "other@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")
	vendor := f.createVendor(t, owner, "Star Kabab")
	foreignEvent := f.createEvent(t, other, "Other Wedding", "1000")
	foreignVendor := f.createVendor(t, other, "Other Caterer")

	t.Run("names and variance", func(t *testing.T) {
		item, err := f.budget.Create(ctx, owner, budgetRequest(event.ID, &vendor.ID, "Buffet", "1000", "1200"))
		require.NoError(t, err)
		assert.Equal(t, "Rahman Wedding", item.EventName)
		require.NotNil(t, item.VendorName)
		assert.Equal(t, "Star Kabab", *item.VendorName)
		assert.True(t, item.Variance.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "pending", item.Status)
	})

	t.Run("foreign event is not found", func(t *testing.T) {
		_, err := f.budget.Create(ctx, owner, budgetRequest(foreignEvent.ID, nil, "Buffet", "10", "0"))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("foreign vendor is a field error", func(t *testing.T) {
		_, err := f.budget.Create(ctx, owner, budgetRequest(event.ID, &foreignVendor.ID, "Buffet", "10", "0"))
		require.Error(t, err)
		assert.Contains(t, fieldErrors(t, err), "vendor_id")
	})

	t.Run("bad due date", func(t *testing.T) {
		req := budgetRequest(event.ID, nil, "Buffet", "10", "0")
		due := "next week"
		req.DueDate = &due
		_, err := f.budget.Create(ctx, owner, req)
		assert.Contains(t, fieldErrors(t, err), "due_date")
	})
}

func TestBudgetService_UpdateCannotMoveToForeignEvent(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	other := f.seedUser(t, "other@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")
	foreignEvent := f.createEvent(t, other, "Other Wedding", "1000")
	item, err := f.budget.Create(ctx, owner, budgetRequest(event.ID, nil, "Buffet", "100", "0"))
	require.NoError(t, err)

	_, err = f.budget.Update(ctx, owner, item.ID, budgetRequest(foreignEvent.ID, nil, "Buffet", "100", "0"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	req := budgetRequest(event.ID, nil, "Buffet", "100", "150")
	req.Status = "partial"
	updated, err := f.budget.Update(ctx, owner, item.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "partial", updated.Status)
	assert.True(t, updated.Variance.Equal(decimal.NewFromInt(50)))
}

func TestUpdateWithoutStatusKeepsStoredStatus(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")

	t.Run("event", func(t *testing.T) {
		req := eventRequest("Rahman Wedding", "1000")
		req.Status = "confirmed"
		_, err := f.events.Update(ctx, owner, event.ID, req)
		require.NoError(t, err)

		updated, err := f.events.Update(ctx, owner, event.ID, eventRequest("Rahman Wedding Reception", "1200"))
		require.NoError(t, err)
		assert.Equal(t, "confirmed", updated.Status)
		assert.Equal(t, "Rahman Wedding Reception", updated.Name)
	})

	t.Run("budget item", func(t *testing.T) {
		req := budgetRequest(event.ID, nil, "Buffet", "100", "0")
		req.Status = "paid"
		item, err := f.budget.Create(ctx, owner, req)
		require.NoError(t, err)

		updated, err := f.budget.Update(ctx, owner, item.ID, budgetRequest(event.ID, nil, "Buffet", "100", "100"))
		require.NoError(t, err)
		assert.Equal(t, "paid", updated.Status)
	})

	t.Run("guest", func(t *testing.T) {
		guest, err := f.guests.Create(ctx, owner, guestRequest(event.ID, "Ayesha", "declined", 0, false))
		require.NoError(t, err)

		updated, err := f.guests.Update(ctx, owner, guest.ID, guestRequest(event.ID, "Ayesha", "", 0, true))
		require.NoError(t, err)
		assert.Equal(t, "declined", updated.RSVPStatus)
		assert.NotNil(t, updated.CheckInTime)
	})
}

func TestBudgetService_ListFiltersByEvent(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	wedding := f.createEvent(t, owner, "Rahman Wedding", "1000")
	seminar := f.createEvent(t, owner, "Tech Seminar", "1000")
	for _, name := range []string{"Buffet", "Stage"} {
		_, err := f.budget.Create(ctx, owner, budgetRequest(wedding.ID, nil, name, "10", "0"))
		require.NoError(t, err)
	}
	_, err := f.budget.Create(ctx, owner, budgetRequest(seminar.ID, nil, "Projector", "10", "0"))
	require.NoError(t, err)

	page, err := f.budget.List(ctx, owner, appplanning.BudgetItemListFilter{EventID: wedding.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)

	page, err = f.budget.List(ctx, owner, appplanning.BudgetItemListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
}

func TestGuestService_ListStatsCoverEveryMatchingGuest(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")

	for _, g := range []appplanning.GuestRequest{
		guestRequest(event.ID, "Ayesha", "confirmed", 2, true),
		guestRequest(event.ID, "Babul", "confirmed", 0, false),
		guestRequest(event.ID, "Chandni", "pending", 1, false),
		guestRequest(event.ID, "Dipu", "declined", 0, false),
	} {
		_, err := f.guests.Create(ctx, owner, g)
		require.NoError(t, err)
	}

	list, err := f.guests.List(ctx, owner, appplanning.GuestListFilter{
		ListQuery: appplanning.ListQuery{PageSize: 2},
		EventID:   event.ID.String(),
	})
	require.NoError(t, err)

	assert.Len(t, list.Results, 2)
	assert.Equal(t, int64(4), list.Count)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 4, list.Stats.TotalGuests)
	assert.Equal(t, 7, list.Stats.TotalAttendees)
	assert.Equal(t, 2, list.Stats.ConfirmedGuests)
	assert.Equal(t, 1, list.Stats.PendingGuests)
	assert.Equal(t, 1, list.Stats.DeclinedGuests)
	assert.Equal(t, 1, list.Stats.CheckedInGuests)

	sum := 0
	all, err := f.guests.List(ctx, owner, appplanning.GuestListFilter{EventID: event.ID.String()})
	require.NoError(t, err)
	for _, g := range all.Results {
		assert.Equal(t, 1+g.PlusOnes, g.TotalAttendees)
		sum += g.TotalAttendees
	}
	assert.Equal(t, list.Stats.TotalAttendees, sum)
}

func TestGuestService_CheckInStampsAndClearsTime(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")

	guest, err := f.guests.Create(ctx, owner, guestRequest(event.ID, "Ayesha", "confirmed", 0, false))
	require.NoError(t, err)
	assert.Nil(t, guest.CheckInTime)

	checkedIn, err := f.guests.Update(ctx, owner, guest.ID, guestRequest(event.ID, "Ayesha", "confirmed", 0, true))
	require.NoError(t, err)
	require.NotNil(t, checkedIn.CheckInTime)
	assert.WithinDuration(t, time.Now(), *checkedIn.CheckInTime, time.Minute)
	assert.False(t, checkedIn.InvitationSent)

	undone, err := f.guests.Update(ctx, owner, guest.ID, guestRequest(event.ID, "Ayesha", "confirmed", 0, false))
	require.NoError(t, err)
	assert.Nil(t, undone.CheckInTime)
}

func TestGuestService_ForeignEventIsNotFound(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	other := f.seedUser(t, "other@example.com")
	foreign := f.createEvent(t, other, "Other Wedding", "1000")

	_, err := f.guests.Create(ctx, owner, guestRequest(foreign.ID, "Ayesha", "pending", 0, false))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.guests.Create(ctx, owner, guestRequest(foreign.ID, "", "unknown", -1, false))
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "rsvp_status")
	assert.Contains(t, fields, "plus_ones")
}

func TestVendorService_DeleteKeepsBudgetItems(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	event := f.createEvent(t, owner, "Rahman Wedding", "1000")
	vendor := f.createVendor(t, owner, "Star Kabab")
	item, err := f.budget.Create(ctx, owner, budgetRequest(event.ID, &vendor.ID, "Buffet", "100", "0"))
	require.NoError(t, err)

	require.NoError(t, f.vendors.Delete(ctx, owner, vendor.ID))

	kept, err := f.budget.Get(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.VendorID)
	assert.Nil(t, kept.VendorName)
}

func TestVendorService_ListFiltersAndRatingBounds(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "planner@example.com")
	f.createVendor(t, owner, "Star Kabab")
	preferred := f.createVendor(t, owner, "Bloom Florists")

	req := appplanning.VendorRequest{
		Name:        preferred.Name,
		Category:    "flowers",
		Phone:       preferred.Phone,
		Address:     preferred.Address,
		Services:    "Stage flowers",
		Rating:      decimal.RequireFromString("4.8"),
		PriceRange:  "luxury",
		IsPreferred: true,
	}
	_, err := f.vendors.Update(ctx, owner, preferred.ID, req)
	require.NoError(t, err)

	yes := true
	page, err := f.vendors.List(ctx, owner, appplanning.VendorListFilter{IsPreferred: &yes})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Bloom Florists", page.Results[0].Name)

	req.Rating = decimal.RequireFromString("5.5")
	_, err = f.vendors.Update(ctx, owner, preferred.ID, req)
	assert.Contains(t, fieldErrors(t, err), "rating")
}
