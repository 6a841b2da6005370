package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
)

// AdminHandler handles staff review of payments and plan maintenance. Every
// route sits behind RequireStaff.
type AdminHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
	planService    *billingapp.PlanService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(paymentService *billingapp.PaymentService, planService *billingapp.PlanService) *AdminHandler {
	return &AdminHandler{
		paymentService: paymentService,
		planService:    planService,
	}
}

// ListPayments handles GET /admin/payments/
// @Summary      List payment requests
// @Tags         admin
// @Produce      json
// @Param        status query string false "Request status"
// @Param        user_id query string false "Submitting user ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/ [get]
func (h *AdminHandler) ListPayments(c *gin.Context) {
	var filter billingapp.PaymentRequestListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.paymentService.AdminList(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, page)
}

// VerifyPayment handles POST /admin/payments/:id/verify
// @Summary      Mark a payment request verified
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body billingapp.ReviewPaymentRequest false "Request body"
// @Param        id path string true "Payment request ID"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/{id}/verify [post]
func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	adminID, id, req, ok := h.reviewInput(c)
	if !ok {
		return
	}

	pr, err := h.paymentService.Verify(c.Request.Context(), adminID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Payment verified", "payment_request": pr})
}

// ApprovePayment activates the requested plan in one transaction with the
// ledger entry.
// POST /admin/payments/:id/approve
// @Summary      Approve a payment request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body billingapp.ReviewPaymentRequest false "Request body"
// @Param        id path string true "Payment request ID"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/{id}/approve [post]
func (h *AdminHandler) ApprovePayment(c *gin.Context) {
	adminID, id, req, ok := h.reviewInput(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.Approve(c.Request.Context(), adminID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{
		"message":         "Payment approved and subscription activated",
		"payment_request": resp.PaymentRequest,
		"subscription":    resp.Subscription,
	})
}

// RejectPayment handles POST /admin/payments/:id/reject
// @Summary      Reject a payment request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body billingapp.ReviewPaymentRequest false "Request body"
// @Param        id path string true "Payment request ID"
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/{id}/reject [post]
func (h *AdminHandler) RejectPayment(c *gin.Context) {
	adminID, id, req, ok := h.reviewInput(c)
	if !ok {
		return
	}

	pr, err := h.paymentService.Reject(c.Request.Context(), adminID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Payment rejected", "payment_request": pr})
}

// reviewInput collects the reviewer, the request id and the optional notes
func (h *AdminHandler) reviewInput(c *gin.Context) (adminID, id uuid.UUID, req billingapp.ReviewPaymentRequest, ok bool) {
	if adminID, ok = h.currentUserID(c); !ok {
		return
	}
	if id, ok = h.pathID(c, "id", "Payment request"); !ok {
		return
	}
	if c.Request.ContentLength > 0 {
		ok = h.bindJSON(c, &req)
	}
	return
}

// CreatePlan handles POST /admin/plans
// @Summary      Create a subscription plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body billingapp.PlanRequest true "Request body"
// @Success      201 {object} billingapp.PlanResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/plans [post]
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req billingapp.PlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// UpdatePlan handles PUT /admin/plans/:id
// @Summary      Update a subscription plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body billingapp.PlanRequest true "Request body"
// @Param        id path string true "Plan ID"
// @Success      200 {object} billingapp.PlanResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/plans/{id} [put]
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id, ok := h.pathID(c, "id", "Plan")
	if !ok {
		return
	}
	var req billingapp.PlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, plan)
}
