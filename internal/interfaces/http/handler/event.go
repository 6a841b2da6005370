package handler

import (
	"github.com/gin-gonic/gin"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
)

// EventHandler handles the caller's events
type EventHandler struct {
	BaseHandler
	eventService *planningapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *planningapp.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List returns one page of the caller's events.
// GET /events/
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        status query string false "Event status"
// @Param        category query string false "Event category"
// @Param        search query string false "Search name, venue and description"
// @Param        order_by query string false "date, created_at, name or budget; prefix - for descending"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} object
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /events/ [get]
func (h *EventHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var filter planningapp.EventListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.eventService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, page)
}

// Create adds an event.
// POST /events/
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body planningapp.EventRequest true "Request body"
// @Success      201 {object} planningapp.EventResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /events/ [post]
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req planningapp.EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// Get returns one event.
// GET /events/:id
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} planningapp.EventResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Event")
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, event)
}

// Update replaces an event.
// PUT /events/:id
// @Summary      Replace an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body planningapp.EventRequest true "Request body"
// @Param        id path string true "Event ID"
// @Success      200 {object} planningapp.EventResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Event")
	if !ok {
		return
	}
	var req planningapp.EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, event)
}

// Delete removes an event with its budget items and guests.
// DELETE /events/:id
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Event")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
