package handler

import (
	"github.com/gin-gonic/gin"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
)

// BudgetHandler handles budget items of the caller's events
type BudgetHandler struct {
	BaseHandler
	budgetService *planningapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *planningapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// List handles GET /budget/
// @Summary      List budget items
// @Tags         budget
// @Produce      json
// @Param        event_id query string false "Event ID"
// @Param        category query string false "Budget category"
// @Param        status query string false "Payment status"
// @Param        search query string false "Search item name and notes"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} object
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /budget/ [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var filter planningapp.BudgetItemListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.budgetService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, page)
}

// Create handles POST /budget/. The event must be the caller's and the
// vendor, when set, must be in the caller's address book.
// @Summary      Create a budget item
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        request body planningapp.BudgetItemRequest true "Request body"
// @Success      201 {object} planningapp.BudgetItemResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /budget/ [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req planningapp.BudgetItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.budgetService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Get handles GET /budget/:id
// @Summary      Get a budget item
// @Tags         budget
// @Produce      json
// @Param        id path string true "Budget item ID"
// @Success      200 {object} planningapp.BudgetItemResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /budget/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Budget item")
	if !ok {
		return
	}

	item, err := h.budgetService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, item)
}

// Update handles PUT /budget/:id
// @Summary      Replace a budget item
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        request body planningapp.BudgetItemRequest true "Request body"
// @Param        id path string true "Budget item ID"
// @Success      200 {object} planningapp.BudgetItemResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /budget/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Budget item")
	if !ok {
		return
	}
	var req planningapp.BudgetItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.budgetService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, item)
}

// Delete handles DELETE /budget/:id
// @Summary      Delete a budget item
// @Tags         budget
// @Produce      json
// @Param        id path string true "Budget item ID"
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /budget/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Budget item")
	if !ok {
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
