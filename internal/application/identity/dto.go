package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
)

// SignupRequest registers a new planner account
type SignupRequest struct {
	Email               string `json:"email" binding:"required,email,max=254"`
	Password            string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword     string `json:"confirm_password" binding:"required"`
	FirstName           string `json:"first_name" binding:"max=150"`
	LastName            string `json:"last_name" binding:"max=150"`
	Phone               string `json:"phone" binding:"max=20"`
	WhatsAppNumber      string `json:"whatsapp_number" binding:"max=20"`
	BusinessName        string `json:"business_name" binding:"required,max=200"`
	BusinessType        string `json:"business_type" binding:"required"`
	Country             string `json:"country" binding:"max=100"`
	City                string `json:"city" binding:"required,max=100"`
	SubscribeNewsletter bool   `json:"subscribe_newsletter"`
}

func (r SignupRequest) profile() identity.Profile {
	return identity.Profile{
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Phone:               r.Phone,
		WhatsAppNumber:      r.WhatsAppNumber,
		BusinessName:        r.BusinessName,
		BusinessType:        r.BusinessType,
		Country:             r.Country,
		City:                r.City,
		SubscribeNewsletter: r.SubscribeNewsletter,
	}
}

// SigninRequest contains login credentials
type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke with the
// access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest is a partial profile update. Email, staff flag,
// verification and plan are read-only and not accepted here.
type UpdateProfileRequest struct {
	FirstName           *string `json:"first_name" binding:"omitempty,max=150"`
	LastName            *string `json:"last_name" binding:"omitempty,max=150"`
	Phone               *string `json:"phone" binding:"omitempty,max=20"`
	WhatsAppNumber      *string `json:"whatsapp_number" binding:"omitempty,max=20"`
	BusinessName        *string `json:"business_name" binding:"omitempty,max=200"`
	BusinessType        *string `json:"business_type"`
	Country             *string `json:"country" binding:"omitempty,max=100"`
	City                *string `json:"city" binding:"omitempty,max=100"`
	SubscribeNewsletter *bool   `json:"subscribe_newsletter"`
}

func (r UpdateProfileRequest) update() identity.ProfileUpdate {
	return identity.ProfileUpdate{
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Phone:               r.Phone,
		WhatsAppNumber:      r.WhatsAppNumber,
		BusinessName:        r.BusinessName,
		BusinessType:        r.BusinessType,
		Country:             r.Country,
		City:                r.City,
		SubscribeNewsletter: r.SubscribeNewsletter,
	}
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// UserResponse is the public profile snapshot
type UserResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	FullName            string     `json:"full_name"`
	Phone               string     `json:"phone"`
	WhatsAppNumber      string     `json:"whatsapp_number"`
	BusinessName        string     `json:"business_name"`
	BusinessType        string     `json:"business_type"`
	Country             string     `json:"country"`
	City                string     `json:"city"`
	SubscriptionPlan    string     `json:"subscription_plan"`
	IsVerified          bool       `json:"is_verified"`
	IsStaff             bool       `json:"is_staff"`
	SubscribeNewsletter bool       `json:"subscribe_newsletter"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		FullName:            u.FullName(),
		Phone:               u.Phone,
		WhatsAppNumber:      u.WhatsAppNumber,
		BusinessName:        u.BusinessName,
		BusinessType:        u.BusinessType,
		Country:             u.Country,
		City:                u.City,
		SubscriptionPlan:    u.SubscriptionPlan,
		IsVerified:          u.IsVerified,
		IsStaff:             u.IsStaff,
		SubscribeNewsletter: u.SubscribeNewsletter,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// TokenResponse is an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

func toTokenResponse(p *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}

// AuthResponse is returned by signup and signin
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	TokenResponse
}
