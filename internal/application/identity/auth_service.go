// Package identity implements signup, signin, token lifecycle and the
// caller's own profile.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const nonFieldErrors = "non_field_errors"

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. publisher may be nil.
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		publisher:  publisher,
		logger:     logger,
	}
}

// Signup creates an account on the free plan and signs it in
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	errs := shared.ValidationErrors{}
	if req.Password != req.ConfirmPassword {
		errs.Add("confirm_password", "Passwords don't match")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		errs.Add("email", "A user with this email already exists.")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.profile())
	if err != nil {
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) || len(domainErr.Fields) == 0 {
			return nil, err
		}
		for field, msgs := range domainErr.Fields {
			for _, msg := range msgs {
				errs.Add(field, msg)
			}
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewValidationError("email", "A user with this email already exists.")
		}
		return nil, err
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("business_type", user.BusinessType))
	s.publish(ctx, user)

	return &AuthResponse{
		Message:       "User created successfully",
		User:          ToUserResponse(user),
		TokenResponse: tokens,
	}, nil
}

// Signin checks credentials and issues a token pair
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, shared.ErrNotFound) {
		logger.L(ctx).Warn("Signin for unknown email")
		return nil, shared.NewValidationError(nonFieldErrors, "Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		logger.L(ctx).Warn("Signin with wrong password", zap.String("user_id", user.ID.String()))
		return nil, shared.NewValidationError(nonFieldErrors, "Invalid credentials")
	}
	if !user.CanLogin() {
		logger.L(ctx).Warn("Signin for disabled account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewValidationError(nonFieldErrors, "User account is disabled")
	}

	user.RecordLogin()
	if err := s.users.Update(ctx, user); err != nil {
		// a stale last-login stamp is not worth failing the signin for
		logger.L(ctx).Warn("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("User signed in", zap.String("user_id", user.ID.String()))
	return &AuthResponse{
		Message:       "Login successful",
		User:          ToUserResponse(user),
		TokenResponse: tokens,
	}, nil
}

// Refresh rotates a refresh token. The presented token is revoked so it
// cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, tokenError(auth.ErrTokenBlacklisted)
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.ErrUnauthorized.Code, "User account is disabled")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, tokenInput(user))
	if err != nil {
		return nil, tokenError(err)
	}
	if s.blacklist != nil {
		if err := s.blacklist.Revoke(ctx, claims); err != nil {
			logger.L(ctx).Warn("Failed to revoke rotated refresh token", zap.Error(err))
		}
	}

	resp := toTokenResponse(pair)
	return &resp, nil
}

// Logout revokes the access token of the current request and, when given,
// the matching refresh token
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, req LogoutRequest) error {
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, access); err != nil {
		return err
	}
	if req.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		switch {
		case err != nil:
			logger.L(ctx).Debug("Ignoring invalid refresh token on logout", zap.Error(err))
		case refresh.UserID != access.UserID:
			return shared.NewValidationError("refresh_token", "Token does not belong to the current user")
		default:
			if err := s.blacklist.Revoke(ctx, refresh); err != nil {
				return err
			}
		}
	}
	logger.L(ctx).Info("User logged out", zap.String("user_id", access.UserID))
	return nil
}

// GetProfile returns the caller's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update to the caller's profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.update()); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Profile updated", zap.String("user_id", userID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the caller's password and revokes every token
// issued so far, so all sessions have to sign in again
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return shared.NewValidationError("confirm_password", "Passwords don't match")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.OldPassword) {
		return shared.NewValidationError("old_password", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if s.blacklist != nil {
		if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
			return err
		}
	}
	logger.L(ctx).Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) issue(user *identity.User) (TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(tokenInput(user))
	if err != nil {
		return TokenResponse{}, err
	}
	return toTokenResponse(pair), nil
}

func (s *AuthService) publish(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	user.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Error("Failed to publish identity events", zap.Error(err))
	}
}

func tokenInput(user *identity.User) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{UserID: user.ID, Email: user.Email, IsStaff: user.IsStaff}
}

// tokenError maps token validation failures onto 401 responses
func tokenError(err error) error {
	msg := "Invalid refresh token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		msg = "Refresh token has expired"
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		msg = "Maximum token refresh count exceeded. Please sign in again"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		msg = "Refresh token has been revoked"
	}
	return shared.NewDomainError(shared.ErrUnauthorized.Code, msg)
}
