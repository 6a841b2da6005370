package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional; without it logout only drops client state
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// JWTAuth rejects requests without a valid, unrevoked access token and
// exposes the claims to handlers
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			unauthorized(c, log, auth.ErrInvalidToken, "Authentication credentials were not provided.")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			unauthorized(c, log, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if tokenString == "" {
			unauthorized(c, log, auth.ErrInvalidToken, "Authentication credentials were not provided.")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			unauthorized(c, log, err, tokenErrorMessage(err))
			return
		}

		if cfg.TokenBlacklist != nil {
			revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims)
			if err != nil {
				// Fail open: a Redis outage must not log every user out
				log.Error("Failed to check token revocation",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				unauthorized(c, log, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireStaff allows only staff accounts through. It must run after JWTAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized,
				"Authentication credentials were not provided.")
			return
		}
		if !claims.IsStaff {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden,
				"You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		return "Invalid token type"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token is not yet valid"
	default:
		return "Invalid token"
	}
}

func unauthorized(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Debug("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path))
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
