package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// SubmitPaymentRequest is a user's claim of having paid for a plan
type SubmitPaymentRequest struct {
	PlanID        uuid.UUID `json:"plan_id" binding:"required"`
	BillingCycle  string    `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=bkash nagad rocket bank_transfer card other"`
	TransactionID string    `json:"transaction_id" binding:"max=100"`
	PaymentProof  string    `json:"payment_proof" binding:"max=500"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

// ReviewPaymentRequest carries the staff decision notes
type ReviewPaymentRequest struct {
	AdminNotes string `json:"admin_notes" binding:"max=2000"`
}

// PlanRequest creates or replaces a catalog plan
type PlanRequest struct {
	Name              string          `json:"name" binding:"required,max=50"`
	DisplayName       string          `json:"display_name" binding:"max=100"`
	Description       string          `json:"description"`
	PriceMonthly      decimal.Decimal `json:"price_monthly"`
	PriceYearly       decimal.Decimal `json:"price_yearly"`
	MaxEvents         int             `json:"max_events" binding:"min=0"`
	MaxGuestsPerEvent int             `json:"max_guests_per_event" binding:"min=0"`
	MaxVendors        int             `json:"max_vendors" binding:"min=0"`
	Features          []string        `json:"features"`
	IsActive          *bool           `json:"is_active"`
	SortOrder         int             `json:"sort_order"`
}

func (r PlanRequest) details() billing.PlanDetails {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return billing.PlanDetails{
		Name:              r.Name,
		DisplayName:       r.DisplayName,
		Description:       r.Description,
		PriceMonthly:      r.PriceMonthly,
		PriceYearly:       r.PriceYearly,
		MaxEvents:         r.MaxEvents,
		MaxGuestsPerEvent: r.MaxGuestsPerEvent,
		MaxVendors:        r.MaxVendors,
		Features:          r.Features,
		IsActive:          active,
		SortOrder:         r.SortOrder,
	}
}

// ProofUploadRequest asks for a presigned upload URL for a payment proof
type ProofUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp application/pdf"`
}

// PaymentRequestListFilter represents filter options for the staff payment list
type PaymentRequestListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending submitted verified approved rejected"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	DisplayName       string          `json:"display_name"`
	Description       string          `json:"description"`
	PriceMonthly      decimal.Decimal `json:"price_monthly"`
	PriceYearly       decimal.Decimal `json:"price_yearly"`
	MaxEvents         int             `json:"max_events"`
	MaxGuestsPerEvent int             `json:"max_guests_per_event"`
	MaxVendors        int             `json:"max_vendors"`
	Features          []string        `json:"features"`
	IsActive          bool            `json:"is_active"`
	SortOrder         int             `json:"sort_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToPlanResponse converts a plan to its response form
func ToPlanResponse(p *billing.Plan) PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:                p.ID,
		Name:              p.Name,
		DisplayName:       p.DisplayName,
		Description:       p.Description,
		PriceMonthly:      p.PriceMonthly,
		PriceYearly:       p.PriceYearly,
		MaxEvents:         p.MaxEvents,
		MaxGuestsPerEvent: p.MaxGuestsPerEvent,
		MaxVendors:        p.MaxVendors,
		Features:          features,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// PaymentRequestResponse represents a payment request in API responses
type PaymentRequestResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	PlanID        uuid.UUID       `json:"plan_id"`
	PlanName      string          `json:"plan_name"`
	BillingCycle  string          `json:"billing_cycle"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	PaymentProof  string          `json:"payment_proof"`
	Notes         string          `json:"notes"`
	AdminNotes    string          `json:"admin_notes"`
	Status        string          `json:"status"`
	SubmittedAt   *time.Time      `json:"submitted_at"`
	VerifiedAt    *time.Time      `json:"verified_at"`
	VerifiedBy    *uuid.UUID      `json:"verified_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToPaymentRequestResponse converts a payment request; planName may be empty
func ToPaymentRequestResponse(r *billing.PaymentRequest, planName string) PaymentRequestResponse {
	return PaymentRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		PlanID:        r.PlanID,
		PlanName:      planName,
		BillingCycle:  string(r.BillingCycle),
		Amount:        r.Amount,
		PaymentMethod: string(r.PaymentMethod),
		TransactionID: r.TransactionID,
		PaymentProof:  r.PaymentProof,
		Notes:         r.Notes,
		AdminNotes:    r.AdminNotes,
		Status:        string(r.Status),
		SubmittedAt:   r.SubmittedAt,
		VerifiedAt:    r.VerifiedAt,
		VerifiedBy:    r.VerifiedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// SubscriptionResponse represents a user subscription in API responses
type SubscriptionResponse struct {
	ID                 uuid.UUID     `json:"id"`
	Plan               *PlanResponse `json:"plan"`
	BillingCycle       string        `json:"billing_cycle"`
	Status             string        `json:"status"`
	CurrentPeriodStart time.Time     `json:"current_period_start"`
	CurrentPeriodEnd   time.Time     `json:"current_period_end"`
	CancelledAt        *time.Time    `json:"cancelled_at"`
	IsActive           bool          `json:"is_active"`
	DaysRemaining      int           `json:"days_remaining"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// ToSubscriptionResponse converts a subscription evaluated at now
func ToSubscriptionResponse(s *billing.UserSubscription, plan *billing.Plan, now time.Time) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:                 s.ID,
		BillingCycle:       string(s.BillingCycle),
		Status:             string(s.Status),
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		CancelledAt:        s.CancelledAt,
		IsActive:           s.IsActive(now),
		DaysRemaining:      s.DaysRemaining(now),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if plan != nil {
		p := ToPlanResponse(plan)
		resp.Plan = &p
	}
	return resp
}

// SubscriptionStatusResponse is the caller's subscription and plan tag
type SubscriptionStatusResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	PlanName     string                `json:"plan_name"`
}

// ApprovalResponse is the outcome of approving a payment request
type ApprovalResponse struct {
	PaymentRequest PaymentRequestResponse `json:"payment_request"`
	Subscription   SubscriptionResponse   `json:"subscription"`
}

// PaymentHistoryResponse represents a ledger entry in API responses
type PaymentHistoryResponse struct {
	ID               uuid.UUID       `json:"id"`
	PaymentRequestID uuid.UUID       `json:"payment_request_id"`
	SubscriptionID   uuid.UUID       `json:"subscription_id"`
	PlanID           uuid.UUID       `json:"plan_id"`
	PlanName         string          `json:"plan_name"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"payment_method"`
	TransactionID    string          `json:"transaction_id"`
	BillingCycle     string          `json:"billing_cycle"`
	Status           string          `json:"status"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToPaymentHistoryResponse converts a ledger entry
func ToPaymentHistoryResponse(h *billing.PaymentHistory, planName string) PaymentHistoryResponse {
	return PaymentHistoryResponse{
		ID:               h.ID,
		PaymentRequestID: h.PaymentRequestID,
		SubscriptionID:   h.SubscriptionID,
		PlanID:           h.PlanID,
		PlanName:         planName,
		Amount:           h.Amount,
		PaymentMethod:    string(h.PaymentMethod),
		TransactionID:    h.TransactionID,
		BillingCycle:     string(h.BillingCycle),
		Status:           string(h.Status),
		PeriodStart:      h.PeriodStart,
		PeriodEnd:        h.PeriodEnd,
		CreatedAt:        h.CreatedAt,
	}
}

// ProofUploadResponse tells the client where to PUT the proof file
type ProofUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	FileURL    string    `json:"file_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}
