package cache

import (
	"context"
	"fmt"

	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores are the Redis backed stores the server needs
type Stores struct {
	Plans     appbilling.PlanCache
	Blacklist auth.TokenBlacklist
	client    *redis.Client
}

// Backend names the store implementation in use
func (s *Stores) Backend() string {
	if s.client != nil {
		return "redis"
	}
	return "memory"
}

// Ping checks the Redis connection. The in-memory stores are always up.
func (s *Stores) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis client, if any
func (s *Stores) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Factory creates stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStores creates process-local stores. Revocations and cache
// invalidations are not shared across instances.
func (f *Factory) CreateInMemoryStores() *Stores {
	return &Stores{
		Plans:     NewInMemoryPlanCache(),
		Blacklist: auth.NewInMemoryTokenBlacklist(),
	}
}

// CreateStores uses Redis when enabled and reachable, falling back to
// in-memory stores when allowed
func (f *Factory) CreateStores(ctx context.Context) (*Stores, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory plan cache and token blacklist")
		return f.CreateInMemoryStores(), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis plan cache and token blacklist", zap.String("addr", f.redisConfig.Addr()))
		return &Stores{
			Plans:     NewRedisPlanCache(client, ""),
			Blacklist: auth.NewRedisTokenBlacklist(client, ""),
			client:    client,
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
		"Logouts will not be shared between instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStores(), nil
}
