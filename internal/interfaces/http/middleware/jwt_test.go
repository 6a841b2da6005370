package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "event-saas-test",
		MaxRefreshCount:        10,
	})
}

func issue(t *testing.T, svc *auth.JWTService, staff bool) (*auth.TokenPair, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  userID,
		Email:   "planner@example.com",
		IsStaff: staff,
	})
	require.NoError(t, err)
	return pair, userID
}

type failingBlacklist struct{ auth.TokenBlacklist }

func (failingBlacklist) IsRevoked(context.Context, *auth.Claims) (bool, error) {
	return false, assert.AnError
}

func authRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuth(cfg))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "email": GetJWTClaims(c).Email})
	})
	admin := router.Group("/admin", RequireStaff())
	admin.GET("/payments/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func call(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(AuthHeaderKey, authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, userID := issue(t, svc, false)
	router := authRouter(JWTMiddlewareConfig{JWTService: svc})

	w := call(router, "/me", "Bearer "+pair.AccessToken)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, "planner@example.com", body["email"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := issue(t, svc, false)
	expired, _ := issue(t, newTestJWTService(-time.Minute), false)
	router := authRouter(JWTMiddlewareConfig{JWTService: svc})

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authentication credentials were not provided."},
		{"wrong scheme", "Token " + pair.AccessToken, "Invalid authorization header format"},
		{"empty bearer", "Bearer ", "Authentication credentials were not provided."},
		{"garbage", "Bearer not-a-jwt", "Invalid token"},
		{"refresh token", "Bearer " + pair.RefreshToken, "Invalid token"},
		{"expired", "Bearer " + expired.AccessToken, "Token has expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(router, "/me", tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := errorBody(t, w)
			assert.Equal(t, dto.ErrCodeUnauthorized, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, userID := issue(t, svc, false)
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := authRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

	assert.Equal(t, http.StatusOK, call(router, "/me", "Bearer "+pair.AccessToken).Code)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims))

	w := call(router, "/me", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", errorBody(t, w).Message)

	t.Run("revoking all user tokens", func(t *testing.T) {
		other, _ := issue(t, svc, false)
		fresh, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Email: "planner@example.com"})
		require.NoError(t, err)
		require.NoError(t, blacklist.RevokeAllForUser(context.Background(), userID.String(), time.Hour))

		assert.Equal(t, http.StatusUnauthorized, call(router, "/me", "Bearer "+fresh.AccessToken).Code)
		assert.Equal(t, http.StatusOK, call(router, "/me", "Bearer "+other.AccessToken).Code)
	})
}

func TestJWTAuth_BlacklistOutageFailsOpen(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := issue(t, svc, false)
	router := authRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: failingBlacklist{}})

	assert.Equal(t, http.StatusOK, call(router, "/me", "Bearer "+pair.AccessToken).Code)
}

func TestRequireStaff(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	planner, _ := issue(t, svc, false)
	staff, _ := issue(t, svc, true)

	router := gin.New()
	admin := router.Group("/admin", JWTAuth(JWTMiddlewareConfig{JWTService: svc}), RequireStaff())
	admin.GET("/payments/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := call(router, "/admin/payments/", "Bearer "+planner.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, errorBody(t, w).Code)

	assert.Equal(t, http.StatusOK, call(router, "/admin/payments/", "Bearer "+staff.AccessToken).Code)
}

func TestRequireStaff_WithoutAuth(t *testing.T) {
	router := gin.New()
	router.GET("/admin", RequireStaff(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, call(router, "/admin", "").Code)
}
