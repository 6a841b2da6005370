package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/application/whatsapp"
)

// WhatsAppHandler builds guest contact lists and invite links
type WhatsAppHandler struct {
	BaseHandler
	whatsappService *whatsapp.WhatsAppService
}

// NewWhatsAppHandler creates a new WhatsAppHandler
func NewWhatsAppHandler(whatsappService *whatsapp.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{
		whatsappService: whatsappService,
	}
}

// Contacts handles GET /whatsapp/events/:event_id/contacts
// @Summary      Guest contacts of an event
// @Tags         whatsapp
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Success      200 {object} whatsapp.ContactsResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/events/{event_id}/contacts [get]
func (h *WhatsAppHandler) Contacts(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.pathID(c, "event_id", "Event")
	if !ok {
		return
	}

	resp, err := h.whatsappService.Contacts(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// CreateGroup handles POST /whatsapp/events/:event_id/group. An empty body
// selects every guest with a number.
// @Summary      Build WhatsApp group links
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Param        request body whatsapp.GroupRequest false "Request body"
// @Param        event_id path string true "Event ID"
// @Success      200 {object} whatsapp.GroupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /whatsapp/events/{event_id}/group [post]
func (h *WhatsAppHandler) CreateGroup(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.pathID(c, "event_id", "Event")
	if !ok {
		return
	}
	var req whatsapp.GroupRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.whatsappService.CreateGroup(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
