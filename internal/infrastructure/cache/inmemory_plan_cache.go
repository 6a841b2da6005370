package cache

import (
	"context"
	"sync"
	"time"

	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
)

// InMemoryPlanCache keeps the catalog snapshot in process memory.
// Each instance invalidates only its own copy.
type InMemoryPlanCache struct {
	mu        sync.RWMutex
	data      []byte
	expiresAt time.Time
	now       func() time.Time
}

// NewInMemoryPlanCache creates an empty in-memory plan cache
func NewInMemoryPlanCache() *InMemoryPlanCache {
	return &InMemoryPlanCache{now: time.Now}
}

// Get returns a copy of the cached catalog
func (c *InMemoryPlanCache) Get(_ context.Context) ([]*billing.Plan, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	plans, err := decodePlans(c.data)
	if err != nil {
		return nil, false, nil
	}
	return plans, true, nil
}

// Set stores an encoded copy so callers cannot mutate the cached plans
func (c *InMemoryPlanCache) Set(_ context.Context, plans []*billing.Plan, ttl time.Duration) error {
	data, err := encodePlans(plans)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.expiresAt = c.now().Add(ttl)
	return nil
}

// Invalidate drops the cached catalog
func (c *InMemoryPlanCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	return nil
}

// Ensure InMemoryPlanCache implements PlanCache
var _ appbilling.PlanCache = (*InMemoryPlanCache)(nil)
