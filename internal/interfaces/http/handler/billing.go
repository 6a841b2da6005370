package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
)

// BillingHandler handles the plan catalog and the caller's side of the
// manual payment workflow
type BillingHandler struct {
	BaseHandler
	planService         *billingapp.PlanService
	paymentService      *billingapp.PaymentService
	subscriptionService *billingapp.SubscriptionService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	planService *billingapp.PlanService,
	paymentService *billingapp.PaymentService,
	subscriptionService *billingapp.SubscriptionService,
) *BillingHandler {
	return &BillingHandler{
		planService:         planService,
		paymentService:      paymentService,
		subscriptionService: subscriptionService,
	}
}

// ListPlans returns the active plans. It is mounted without authentication.
// GET /billing/plans/
// @Summary      List active subscription plans
// @Tags         billing
// @Produce      json
// @Success      200 {object} object
// @Router       /billing/plans/ [get]
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"results": plans, "count": len(plans)})
}

// Subscription returns the caller's subscription, null when there never was one.
// GET /billing/subscription
// @Summary      Get the caller subscription
// @Tags         billing
// @Produce      json
// @Success      200 {object} billingapp.SubscriptionStatusResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/subscription [get]
func (h *BillingHandler) Subscription(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.Current(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// SubmitRequest records a payment claim for staff review.
// POST /billing/request
// @Summary      Submit a payment request
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body billingapp.SubmitPaymentRequest true "Request body"
// @Success      201 {object} object
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/request [post]
func (h *BillingHandler) SubmitRequest(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req billingapp.SubmitPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	pr, err := h.paymentService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"message":         "Payment request submitted successfully. It will be reviewed shortly.",
		"payment_request": pr,
	})
}

// ListRequests returns the caller's payment requests, newest first.
// GET /billing/requests
// @Summary      List the caller payment requests
// @Tags         billing
// @Produce      json
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/requests [get]
func (h *BillingHandler) ListRequests(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.paymentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"results": requests, "count": len(requests)})
}

// GetRequest returns one of the caller's payment requests.
// GET /billing/requests/:id
// @Summary      Get a payment request
// @Tags         billing
// @Produce      json
// @Param        id path string true "Payment request ID"
// @Success      200 {object} billingapp.PaymentRequestResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/requests/{id} [get]
func (h *BillingHandler) GetRequest(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Payment request")
	if !ok {
		return
	}

	pr, err := h.paymentService.GetMine(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, pr)
}

// Cancel switches the caller back to the free plan.
// POST /billing/cancel
// @Summary      Cancel the caller subscription
// @Tags         billing
// @Produce      json
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/cancel [post]
func (h *BillingHandler) Cancel(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Cancel(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{
		"message":      "Subscription cancelled",
		"subscription": sub,
	})
}

// History returns the caller's payment ledger.
// GET /billing/history
// @Summary      List the caller payment history
// @Tags         billing
// @Produce      json
// @Success      200 {object} object
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/history [get]
func (h *BillingHandler) History(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.paymentService.History(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"results": entries, "count": len(entries)})
}

// ProofUpload presigns an upload URL for a payment proof file.
// POST /billing/proof-upload
// @Summary      Presign a payment proof upload
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body billingapp.ProofUploadRequest true "Request body"
// @Success      200 {object} billingapp.ProofUploadResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /billing/proof-upload [post]
func (h *BillingHandler) ProofUpload(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req billingapp.ProofUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.ProofUploadURL(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
