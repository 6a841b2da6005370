package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()
	user := &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Username:          email,
		PasswordHash:      "not-a-real-hash",
		BusinessName:      "Dhaka Weddings",
		BusinessType:      "Wedding Planner",
		Country:           identity.DefaultCountry,
		City:              "Dhaka",
		SubscriptionPlan:  identity.FreePlanName,
		IsActive:          true,
	}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, status planning.EventStatus) *planning.Event {
	t.Helper()
	event, err := planning.NewEvent(ownerID, planning.EventDetails{
		Name:     name,
		Category: planning.EventCategoryWedding,
		Date:     time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		Time:     "18:30",
		Venue:    "Radisson Blu",
		Budget:   decimal.NewFromInt(500000),
		Status:   status,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormEventRepository(db).Create(context.Background(), event))
	return event
}

func seedVendor(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *planning.Vendor {
	t.Helper()
	vendor, err := planning.NewVendor(ownerID, planning.VendorDetails{
		Name:       name,
		Category:   planning.VendorCategoryCatering,
		Phone:      "01711000000",
		Address:    "Gulshan 2, Dhaka",
		Services:   "Buffet and plated dinners",
		Rating:     decimal.RequireFromString("4.50"),
		PriceRange: planning.PriceRangePremium,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormVendorRepository(db).Create(context.Background(), vendor))
	return vendor
}

func seedBudgetItem(t *testing.T, db *gorm.DB, eventID uuid.UUID, vendorID *uuid.UUID, name string, estimated, actual int64) *planning.BudgetItem {
	t.Helper()
	item, err := planning.NewBudgetItem(planning.BudgetItemDetails{
		EventID:       eventID,
		VendorID:      vendorID,
		Category:      planning.BudgetCategoryCatering,
		ItemName:      name,
		EstimatedCost: decimal.NewFromInt(estimated),
		ActualCost:    decimal.NewFromInt(actual),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormBudgetItemRepository(db).Create(context.Background(), item))
	return item
}

func seedGuest(t *testing.T, db *gorm.DB, eventID uuid.UUID, name string, rsvp planning.RSVPStatus, checkedIn bool) *planning.Guest {
	t.Helper()
	guest, err := planning.NewGuest(planning.GuestDetails{
		EventID:    eventID,
		Name:       name,
		Phone:      "+8801711000000",
		Category:   planning.GuestCategoryFamily,
		RSVPStatus: rsvp,
		CheckedIn:  checkedIn,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormGuestRepository(db).Create(context.Background(), guest))
	return guest
}

func TestGormEventRepository_OwnerScoping(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormEventRepository(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	event := seedEvent(t, db, alice.ID, "Rahman Wedding", planning.EventStatusPlanning)

	t.Run("owner can read", func(t *testing.T) {
		found, err := repo.FindByID(ctx, alice.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rahman Wedding", found.Name)
		assert.Equal(t, "18:30:00", found.Time)
		assert.True(t, found.Budget.Equal(decimal.NewFromInt(500000)))
		assert.Equal(t, alice.ID, found.OwnerID)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, bob.ID, event.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		stolen := *event
		stolen.Name = "Hijacked"
		err := repo.Update(ctx, bob.ID, &stolen)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByID(ctx, alice.ID, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rahman Wedding", found.Name)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		err := repo.Delete(ctx, bob.ID, event.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByID(ctx, alice.ID, event.ID)
		assert.NoError(t, err)
	})
}

func TestGormEventRepository_FindAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormEventRepository(db)

	owner := seedUser(t, db, "planner@example.com")
	other := seedUser(t, db, "other@example.com")
	seedEvent(t, db, owner.ID, "Rahman Wedding", planning.EventStatusPlanning)
	seedEvent(t, db, owner.ID, "Annual Conference", planning.EventStatusConfirmed)
	seedEvent(t, db, owner.ID, "Karim Wedding", planning.EventStatusCompleted)
	seedEvent(t, db, other.ID, "Someone Else's Wedding", planning.EventStatusPlanning)

	t.Run("lists only the owner's events", func(t *testing.T) {
		events, total, err := repo.FindAll(ctx, owner.ID, planning.EventFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, events, 3)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		events, total, err := repo.FindAll(ctx, owner.ID, planning.EventFilter{
			Filter: shared.Filter{Search: "WEDDING"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, events, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		events, total, err := repo.FindAll(ctx, owner.ID, planning.EventFilter{
			Filter: shared.Filter{Filters: map[string]any{"status": "confirmed"}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Annual Conference", events[0].Name)
	})

	t.Run("paginates with the full count", func(t *testing.T) {
		events, total, err := repo.FindAll(ctx, owner.ID, planning.EventFilter{
			Filter: shared.Filter{Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, events, 1)
		assert.Equal(t, "Rahman Wedding", events[0].Name)
	})
}

func TestGormEventRepository_SummariesAndCascade(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormEventRepository(db)

	owner := seedUser(t, db, "planner@example.com")
	event := seedEvent(t, db, owner.ID, "Rahman Wedding", planning.EventStatusPlanning)
	empty := seedEvent(t, db, owner.ID, "Quiet Dinner", planning.EventStatusPlanning)
	seedBudgetItem(t, db, event.ID, nil, "Dinner buffet", 1000, 1200)
	seedBudgetItem(t, db, event.ID, nil, "Stage decor", 500, 300)
	seedGuest(t, db, event.ID, "Ayesha", planning.RSVPConfirmed, false)

	summaries, err := repo.Summaries(ctx, owner.ID, []*planning.Event{event, empty})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, int64(2), summaries[0].BudgetItemsCount)
	assert.Equal(t, int64(1), summaries[0].GuestsCount)
	assert.True(t, summaries[0].TotalSpent.Equal(decimal.NewFromInt(1500)), "got %s", summaries[0].TotalSpent)

	assert.Equal(t, int64(0), summaries[1].BudgetItemsCount)
	assert.Equal(t, int64(0), summaries[1].GuestsCount)
	assert.True(t, summaries[1].TotalSpent.IsZero())

	require.NoError(t, repo.Delete(ctx, owner.ID, event.ID))

	items, err := NewGormBudgetItemRepository(db).ListByEvent(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	guests, err := NewGormGuestRepository(db).ListByEvent(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestGormBudgetItemRepository_Views(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormBudgetItemRepository(db)

	owner := seedUser(t, db, "planner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	event := seedEvent(t, db, owner.ID, "Rahman Wedding", planning.EventStatusPlanning)
	vendor := seedVendor(t, db, owner.ID, "Star Kabab Catering")
	withVendor := seedBudgetItem(t, db, event.ID, &vendor.ID, "Dinner buffet", 1000, 1200)
	seedBudgetItem(t, db, event.ID, nil, "Stage decor", 500, 0)

	t.Run("find by id carries names", func(t *testing.T) {
		view, err := repo.FindByID(ctx, owner.ID, withVendor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rahman Wedding", view.EventName)
		assert.Equal(t, "Star Kabab Catering", view.VendorName)
		assert.True(t, view.Variance().Equal(decimal.NewFromInt(200)))
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, stranger.ID, withVendor.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		renamed := *withVendor
		renamed.ItemName = "Renamed"
		assert.ErrorIs(t, repo.Update(ctx, stranger.ID, &renamed), shared.ErrNotFound)

		view, err := repo.FindByID(ctx, owner.ID, withVendor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner buffet", view.ItemName)
	})

	t.Run("list filters and searches", func(t *testing.T) {
		views, total, err := repo.FindAll(ctx, owner.ID, planning.BudgetItemFilter{
			Filter: shared.Filter{Search: "decor", Filters: map[string]any{"event_id": event.ID}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, "Stage decor", views[0].ItemName)
		assert.Empty(t, views[0].VendorName)
	})

	t.Run("deleting a vendor clears the reference", func(t *testing.T) {
		require.NoError(t, NewGormVendorRepository(db).Delete(ctx, owner.ID, vendor.ID))

		view, err := repo.FindByID(ctx, owner.ID, withVendor.ID)
		require.NoError(t, err)
		assert.Nil(t, view.VendorID)
		assert.Empty(t, view.VendorName)
	})
}

func TestGormGuestRepository_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormGuestRepository(db)

	owner := seedUser(t, db, "planner@example.com")
	event := seedEvent(t, db, owner.ID, "Rahman Wedding", planning.EventStatusPlanning)
	other := seedEvent(t, db, owner.ID, "Karim Wedding", planning.EventStatusPlanning)
	ayesha := seedGuest(t, db, event.ID, "Ayesha", planning.RSVPConfirmed, true)
	babul := seedGuest(t, db, event.ID, "Babul", planning.RSVPPending, false)
	seedGuest(t, db, other.ID, "Chhobi", planning.RSVPDeclined, false)

	t.Run("checked_in filter accepts query-string form", func(t *testing.T) {
		guests, total, err := repo.FindAll(ctx, owner.ID, planning.GuestFilter{
			Filter: shared.Filter{Filters: map[string]any{"checked_in": "true"}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, ayesha.ID, guests[0].ID)
		assert.NotNil(t, guests[0].CheckInTime)
	})

	t.Run("list matching ignores pagination", func(t *testing.T) {
		guests, err := repo.ListMatching(ctx, owner.ID, planning.GuestFilter{
			Filter: shared.Filter{Page: 1, PageSize: 1, Filters: map[string]any{"event_id": event.ID}},
		})
		require.NoError(t, err)
		assert.Len(t, guests, 2)
	})

	t.Run("find by ids stays within the event", func(t *testing.T) {
		guests, err := repo.FindByIDs(ctx, owner.ID, event.ID, []uuid.UUID{babul.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, guests, 1)
		assert.Equal(t, "Babul", guests[0].Name)
	})

	t.Run("update is scoped to the event owner", func(t *testing.T) {
		stranger := seedUser(t, db, "stranger@example.com")
		renamed := *ayesha
		renamed.Name = "Renamed"
		assert.ErrorIs(t, repo.Update(ctx, stranger.ID, &renamed), shared.ErrNotFound)

		found, err := repo.FindByID(ctx, owner.ID, ayesha.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ayesha", found.Name)
	})

	t.Run("update persists check-in", func(t *testing.T) {
		details := babul.GuestDetails
		details.CheckedIn = true
		require.NoError(t, babul.Revise(details))
		require.NoError(t, repo.Update(ctx, owner.ID, babul))

		found, err := repo.FindByID(ctx, owner.ID, babul.ID)
		require.NoError(t, err)
		assert.True(t, found.CheckedIn)
		assert.NotNil(t, found.CheckInTime)
	})
}

func TestGormVendorRepository_FindAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewGormVendorRepository(db)

	owner := seedUser(t, db, "planner@example.com")
	seedVendor(t, db, owner.ID, "Star Kabab Catering")
	preferred := seedVendor(t, db, owner.ID, "Lens Queen Photography")
	details := preferred.VendorDetails
	details.IsPreferred = true
	details.Category = planning.VendorCategoryPhotography
	require.NoError(t, preferred.Revise(details))
	require.NoError(t, repo.Update(ctx, owner.ID, preferred))

	vendors, total, err := repo.FindAll(ctx, owner.ID, planning.VendorFilter{
		Filter: shared.Filter{Filters: map[string]any{"is_preferred": true}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Lens Queen Photography", vendors[0].Name)
	assert.True(t, vendors[0].Rating.Equal(decimal.RequireFromString("4.5")))

	all, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Lens Queen Photography", all[0].Name)
}
