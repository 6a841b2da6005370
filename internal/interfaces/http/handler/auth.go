package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/application/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/middleware"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers an account and returns it with a token pair.
// POST /auth/signup
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.SignupRequest true "Request body"
// @Success      201 {object} identity.AuthResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req identity.SignupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Signin exchanges credentials for a token pair.
// POST /auth/signin
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.SigninRequest true "Request body"
// @Success      200 {object} identity.AuthResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req identity.SigninRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Refresh rotates a refresh token into a new pair.
// POST /auth/refresh
// @Summary      Rotate a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshRequest true "Request body"
// @Success      200 {object} identity.TokenResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Logout revokes the presented access token and, when sent, the refresh token.
// POST /auth/logout
// @Summary      Revoke the current tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LogoutRequest false "Request body"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication credentials were not provided.")
		return
	}

	// The body is optional
	var req identity.LogoutRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Logged out successfully")
}

// GetProfile returns the caller's profile.
// GET /auth/profile
// @Summary      Get the caller profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} identity.UserResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

// UpdateProfile applies a partial update to the caller's profile.
// PUT /auth/profile
// @Summary      Update the caller profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateProfileRequest true "Request body"
// @Success      200 {object} identity.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req identity.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

// ChangePassword replaces the caller's password and signs out every session.
// POST /auth/change-password
// @Summary      Change the caller password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.ChangePasswordRequest true "Request body"
// @Success      200 {object} object
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req identity.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Password changed successfully. Please sign in again.")
}
