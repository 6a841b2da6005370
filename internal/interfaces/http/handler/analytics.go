package handler

import (
	"github.com/gin-gonic/gin"
	analyticsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/analytics"
)

// AnalyticsHandler serves the read-only reports
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analyticsapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *analyticsapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Event returns budget, guest, vendor and progress analytics of one event.
// GET /analytics/event/:event_id
// @Summary      Analytics of one event
// @Tags         analytics
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/event/{event_id} [get]
func (h *AnalyticsHandler) Event(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := h.pathID(c, "event_id", "Event")
	if !ok {
		return
	}

	report, err := h.analyticsService.EventReport(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, report)
}

// Overall rolls up all of the caller's events.
// GET /analytics/overall
// @Summary      Analytics across all events
// @Tags         analytics
// @Produce      json
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/overall [get]
func (h *AnalyticsHandler) Overall(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.OverallReport(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, report)
}
