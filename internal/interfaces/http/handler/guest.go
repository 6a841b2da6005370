package handler

import (
	"github.com/gin-gonic/gin"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
)

// GuestHandler handles guests of the caller's events
type GuestHandler struct {
	BaseHandler
	guestService *planningapp.GuestService
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(guestService *planningapp.GuestService) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
	}
}

// List returns one page of guests plus stats over every matching guest.
// GET /guests/
// @Summary      List guests with stats
// @Tags         guests
// @Produce      json
// @Param        event_id query string false "Event ID"
// @Param        category query string false "Guest category"
// @Param        rsvp_status query string false "RSVP status"
// @Param        checked_in query bool false "Checked in"
// @Param        search query string false "Search name, email and phone"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} planningapp.GuestListResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /guests/ [get]
func (h *GuestHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var filter planningapp.GuestListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	resp, err := h.guestService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Create adds a guest.
// POST /guests/
// @Summary      Create a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        request body planningapp.GuestRequest true "Request body"
// @Success      201 {object} planningapp.GuestResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /guests/ [post]
func (h *GuestHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req planningapp.GuestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, guest)
}

// Get returns one guest.
// GET /guests/:id
// @Summary      Get a guest
// @Tags         guests
// @Produce      json
// @Param        id path string true "Guest ID"
// @Success      200 {object} planningapp.GuestResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /guests/{id} [get]
func (h *GuestHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Guest")
	if !ok {
		return
	}

	guest, err := h.guestService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, guest)
}

// Update replaces a guest. Check-in and invitation timestamps follow their flags.
// PUT /guests/:id
// @Summary      Replace a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        request body planningapp.GuestRequest true "Request body"
// @Param        id path string true "Guest ID"
// @Success      200 {object} planningapp.GuestResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /guests/{id} [put]
func (h *GuestHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Guest")
	if !ok {
		return
	}
	var req planningapp.GuestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, guest)
}

// Delete removes a guest.
// DELETE /guests/:id
// @Summary      Delete a guest
// @Tags         guests
// @Produce      json
// @Param        id path string true "Guest ID"
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /guests/{id} [delete]
func (h *GuestHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Guest")
	if !ok {
		return
	}

	if err := h.guestService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
