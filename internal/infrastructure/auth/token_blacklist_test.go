package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(userID string, issuedAt time.Time, ttl time.Duration) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID:    userID,
		TokenType: auth.TokenTypeAccess,
	}
}

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	revoked := claimsFor("user-1", time.Now(), time.Hour)
	other := claimsFor("user-1", time.Now(), time.Hour)

	require.NoError(t, blacklist.Revoke(ctx, revoked))

	isRevoked, err := blacklist.IsRevoked(ctx, revoked)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	isRevoked, err = blacklist.IsRevoked(ctx, other)
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestInMemoryTokenBlacklist_ExpiredTokenIsNotStored(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	expired := claimsFor("user-1", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, blacklist.Revoke(ctx, expired))

	isRevoked, err := blacklist.IsRevoked(ctx, expired)
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestInMemoryTokenBlacklist_ShortLivedEntryExpires(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	claims := claimsFor("user-1", time.Now(), 20*time.Millisecond)
	require.NoError(t, blacklist.Revoke(ctx, claims))

	time.Sleep(40 * time.Millisecond)

	isRevoked, err := blacklist.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestInMemoryTokenBlacklist_RevokeAllForUser(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	before := claimsFor("user-1", time.Now().Add(-time.Minute), time.Hour)
	otherUser := claimsFor("user-2", time.Now().Add(-time.Minute), time.Hour)

	isRevoked, err := blacklist.IsRevoked(ctx, before)
	require.NoError(t, err)
	assert.False(t, isRevoked)

	require.NoError(t, blacklist.RevokeAllForUser(ctx, "user-1", time.Hour))

	isRevoked, err = blacklist.IsRevoked(ctx, before)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	isRevoked, err = blacklist.IsRevoked(ctx, otherUser)
	require.NoError(t, err)
	assert.False(t, isRevoked)

	after := claimsFor("user-1", time.Now().Add(time.Second), time.Hour)
	isRevoked, err = blacklist.IsRevoked(ctx, after)
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestTokenBlacklist_Implementations(t *testing.T) {
	var _ auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	var _ auth.TokenBlacklist = auth.NewRedisTokenBlacklist(nil, "")
}
