package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/settings"
)

// SettingsHandler handles the caller's notification and locale preferences
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get handles GET /settings/. The defaults are stored on first read.
// @Summary      Get the caller settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} settingsapp.SettingsResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /settings/ [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Update handles PUT /settings/ as a partial update
// @Summary      Update the caller settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateSettingsRequest true "Request body"
// @Success      200 {object} settingsapp.SettingsResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /settings/ [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req settingsapp.UpdateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.settingsService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
