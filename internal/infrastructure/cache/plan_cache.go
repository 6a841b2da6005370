package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultPlanCacheKey holds the JSON snapshot of the active catalog
const DefaultPlanCacheKey = "eventsaas:billing:plans:active"

// planSnapshot is the cached form of a plan
type planSnapshot struct {
	ID                uuid.UUID       `json:"id"`
	Version           int             `json:"version"`
	Name              string          `json:"name"`
	DisplayName       string          `json:"display_name"`
	Description       string          `json:"description"`
	PriceMonthly      decimal.Decimal `json:"price_monthly"`
	PriceYearly       decimal.Decimal `json:"price_yearly"`
	MaxEvents         int             `json:"max_events"`
	MaxGuestsPerEvent int             `json:"max_guests_per_event"`
	MaxVendors        int             `json:"max_vendors"`
	Features          []string        `json:"features"`
	IsActive          bool            `json:"is_active"`
	SortOrder         int             `json:"sort_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func snapshotOf(p *billing.Plan) planSnapshot {
	return planSnapshot{
		ID:                p.ID,
		Version:           p.Version,
		Name:              p.Name,
		DisplayName:       p.DisplayName,
		Description:       p.Description,
		PriceMonthly:      p.PriceMonthly,
		PriceYearly:       p.PriceYearly,
		MaxEvents:         p.MaxEvents,
		MaxGuestsPerEvent: p.MaxGuestsPerEvent,
		MaxVendors:        p.MaxVendors,
		Features:          p.Features,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (s planSnapshot) toDomain() *billing.Plan {
	return &billing.Plan{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: s.ID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
			Version:    s.Version,
		},
		PlanDetails: billing.PlanDetails{
			Name:              s.Name,
			DisplayName:       s.DisplayName,
			Description:       s.Description,
			PriceMonthly:      s.PriceMonthly,
			PriceYearly:       s.PriceYearly,
			MaxEvents:         s.MaxEvents,
			MaxGuestsPerEvent: s.MaxGuestsPerEvent,
			MaxVendors:        s.MaxVendors,
			Features:          s.Features,
			IsActive:          s.IsActive,
			SortOrder:         s.SortOrder,
		},
	}
}

func encodePlans(plans []*billing.Plan) ([]byte, error) {
	snapshots := make([]planSnapshot, len(plans))
	for i, p := range plans {
		snapshots[i] = snapshotOf(p)
	}
	return json.Marshal(snapshots)
}

func decodePlans(data []byte) ([]*billing.Plan, error) {
	var snapshots []planSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, err
	}
	plans := make([]*billing.Plan, len(snapshots))
	for i, s := range snapshots {
		plans[i] = s.toDomain()
	}
	return plans, nil
}

// RedisPlanCache stores the active plan catalog as one JSON value
type RedisPlanCache struct {
	client redis.UniversalClient
	key    string
}

// NewRedisPlanCache creates a plan cache on an existing client
func NewRedisPlanCache(client redis.UniversalClient, key string) *RedisPlanCache {
	if key == "" {
		key = DefaultPlanCacheKey
	}
	return &RedisPlanCache{client: client, key: key}
}

// Get returns the cached catalog, ok=false on a miss
func (c *RedisPlanCache) Get(ctx context.Context) ([]*billing.Plan, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read plan cache: %w", err)
	}
	plans, err := decodePlans(data)
	if err != nil {
		// A snapshot we cannot read is a miss; the next Set replaces it.
		return nil, false, nil
	}
	return plans, true, nil
}

// Set replaces the cached catalog
func (c *RedisPlanCache) Set(ctx context.Context, plans []*billing.Plan, ttl time.Duration) error {
	data, err := encodePlans(plans)
	if err != nil {
		return fmt.Errorf("failed to encode plan cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write plan cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog
func (c *RedisPlanCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan cache: %w", err)
	}
	return nil
}

// Ensure RedisPlanCache implements PlanCache
var _ appbilling.PlanCache = (*RedisPlanCache)(nil)
