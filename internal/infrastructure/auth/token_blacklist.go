package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultBlacklistPrefix namespaces revocation keys in a shared Redis
const DefaultBlacklistPrefix = "eventsaas:auth:revoked:"

// TokenBlacklist revokes tokens before they expire. Logout revokes the
// presented tokens; a password change revokes every token issued earlier.
type TokenBlacklist interface {
	// Revoke blacklists the token until it would have expired anyway
	Revoke(ctx context.Context, claims *Claims) error
	// RevokeAllForUser rejects every token of the user issued up to now
	RevokeAllForUser(ctx context.Context, userID string, ttl time.Duration) error
	// IsRevoked reports whether the token was revoked individually or by user
	IsRevoked(ctx context.Context, claims *Claims) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenBlacklist creates a blacklist on an existing client. The
// caller keeps ownership of the client.
func NewRedisTokenBlacklist(client redis.UniversalClient, keyPrefix string) *RedisTokenBlacklist {
	if keyPrefix == "" {
		keyPrefix = DefaultBlacklistPrefix
	}
	return &RedisTokenBlacklist{client: client, keyPrefix: keyPrefix}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

// Revoke stores the token ID for the rest of its lifetime
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, claims *Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 || claims.ID == "" {
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(claims.ID), claims.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAllForUser stores the cutoff as unix nanoseconds
func (b *RedisTokenBlacklist) RevokeAllForUser(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := time.Now().UnixNano()
	if err := b.client.Set(ctx, b.userKey(userID), cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsRevoked checks the token ID first, then the user cutoff
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, claims *Claims) (bool, error) {
	if claims.ID != "" {
		n, err := b.client.Exists(ctx, b.jtiKey(claims.ID)).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check token blacklist: %w", err)
		}
		if n > 0 {
			return true, nil
		}
	}

	raw, err := b.client.Get(ctx, b.userKey(claims.UserID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation cutoff: %w", err)
	}
	return !claims.GetIssuedAtTime().After(time.Unix(0, cutoff)), nil
}

// Ensure RedisTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory. Used when
// Redis is disabled and in tests; it is not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> expiry
	cutoffs map[string]time.Time // user -> cutoff
	now     func() time.Time
}

// NewInMemoryTokenBlacklist creates an empty in-memory blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke remembers the token ID until it expires
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, claims *Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 || claims.ID == "" {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[claims.ID] = b.now().Add(ttl)
	return nil
}

// RevokeAllForUser records the cutoff; ttl is ignored
func (b *InMemoryTokenBlacklist) RevokeAllForUser(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cutoffs[userID] = b.now()
	return nil
}

// IsRevoked checks the token ID, dropping expired entries, then the user cutoff
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, claims *Claims) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if expiry, ok := b.tokens[claims.ID]; ok {
		if b.now().Before(expiry) {
			return true, nil
		}
		delete(b.tokens, claims.ID)
	}
	cutoff, ok := b.cutoffs[claims.UserID]
	if !ok {
		return false, nil
	}
	return !claims.GetIssuedAtTime().After(cutoff), nil
}

// Ensure InMemoryTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
