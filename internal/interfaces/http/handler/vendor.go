package handler

import (
	"github.com/gin-gonic/gin"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
)

// VendorHandler handles the caller's vendor address book
type VendorHandler struct {
	BaseHandler
	vendorService *planningapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *planningapp.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// List handles GET /vendors/
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        category query string false "Vendor category"
// @Param        price_range query string false "Price range"
// @Param        is_preferred query bool false "Preferred vendors only"
// @Param        search query string false "Search name and services"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} object
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/ [get]
func (h *VendorHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var filter planningapp.VendorListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.vendorService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, page)
}

// Create handles POST /vendors/
// @Summary      Create a vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body planningapp.VendorRequest true "Request body"
// @Success      201 {object} planningapp.VendorResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/ [post]
func (h *VendorHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req planningapp.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// Get handles GET /vendors/:id
// @Summary      Get a vendor
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} planningapp.VendorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [get]
func (h *VendorHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Vendor")
	if !ok {
		return
	}

	vendor, err := h.vendorService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, vendor)
}

// Update handles PUT /vendors/:id
// @Summary      Replace a vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body planningapp.VendorRequest true "Request body"
// @Param        id path string true "Vendor ID"
// @Success      200 {object} planningapp.VendorResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Vendor")
	if !ok {
		return
	}
	var req planningapp.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, vendor)
}

// Delete handles DELETE /vendors/:id. Budget items keep their costs and lose
// the vendor link.
// @Summary      Delete a vendor
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Vendor")
	if !ok {
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
