package cache

import (
	"context"
	"testing"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testPlans(t *testing.T) []*billing.Plan {
	t.Helper()
	pro, err := billing.NewPlan(billing.PlanDetails{
		Name:         "pro",
		DisplayName:  "Pro",
		PriceMonthly: decimal.RequireFromString("29.00"),
		PriceYearly:  decimal.RequireFromString("290.00"),
		MaxEvents:    50,
		Features:     []string{"Analytics", "WhatsApp groups"},
		IsActive:     true,
		SortOrder:    3,
	})
	require.NoError(t, err)
	return []*billing.Plan{pro}
}

func TestPlanSnapshot_PreservesPlan(t *testing.T) {
	plans := testPlans(t)

	data, err := encodePlans(plans)
	require.NoError(t, err)
	decoded, err := decodePlans(data)
	require.NoError(t, err)

	require.Len(t, decoded, 1)
	got := decoded[0]
	assert.Equal(t, plans[0].ID, got.ID)
	assert.Equal(t, "pro", got.Name)
	assert.True(t, got.PriceYearly.Equal(decimal.NewFromInt(290)))
	assert.Equal(t, []string{"Analytics", "WhatsApp groups"}, got.Features)
	assert.Equal(t, 3, got.SortOrder)
	assert.True(t, got.CreatedAt.Equal(plans[0].CreatedAt))
}

func TestInMemoryPlanCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewInMemoryPlanCache()
	cache.now = func() time.Time { return now }

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	plans := testPlans(t)
	require.NoError(t, cache.Set(ctx, plans, time.Minute))

	cached, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "pro", cached[0].Name)

	// Mutating a returned plan does not leak into the cache.
	cached[0].Name = "changed"
	again, _, _ := cache.Get(ctx)
	assert.Equal(t, "pro", again[0].Name)

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "expired entry is a miss")

	require.NoError(t, cache.Set(ctx, plans, time.Minute))
	require.NoError(t, cache.Invalidate(ctx))
	_, ok, _ = cache.Get(ctx)
	assert.False(t, ok)
}

func TestFactory_CreateStores(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("disabled uses memory", func(t *testing.T) {
		stores, err := NewFactory(config.RedisConfig{}).CreateStores(ctx)
		require.NoError(t, err)
		assert.Equal(t, "memory", stores.Backend())
		assert.IsType(t, &InMemoryPlanCache{}, stores.Plans)
		assert.NoError(t, stores.Close())
	})

	t.Run("unreachable falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		stores, err := NewFactory(unreachable, WithLogger(zap.New(core))).CreateStores(ctx)
		require.NoError(t, err)
		assert.Equal(t, "memory", stores.Backend())
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("unreachable without fallback fails", func(t *testing.T) {
		_, err := NewFactory(unreachable, WithInMemoryFallback(false)).CreateStores(ctx)
		assert.Error(t, err)
	})
}
