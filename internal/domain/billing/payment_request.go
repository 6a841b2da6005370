package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentRequestStatus is the review state of a payment claim
type PaymentRequestStatus string

const (
	PaymentRequestPending   PaymentRequestStatus = "pending"
	PaymentRequestSubmitted PaymentRequestStatus = "submitted"
	PaymentRequestVerified  PaymentRequestStatus = "verified"
	PaymentRequestApproved  PaymentRequestStatus = "approved"
	PaymentRequestRejected  PaymentRequestStatus = "rejected"
)

// IsValid checks if the status is a known value
func (s PaymentRequestStatus) IsValid() bool {
	switch s {
	case PaymentRequestPending, PaymentRequestSubmitted, PaymentRequestVerified,
		PaymentRequestApproved, PaymentRequestRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s PaymentRequestStatus) IsTerminal() bool {
	return s == PaymentRequestApproved || s == PaymentRequestRejected
}

// IsReviewable reports whether staff may approve or reject
func (s PaymentRequestStatus) IsReviewable() bool {
	return s == PaymentRequestSubmitted || s == PaymentRequestVerified
}

// PaymentMethod is how the user says they paid
type PaymentMethod string

const (
	PaymentMethodBkash        PaymentMethod = "bkash"
	PaymentMethodNagad        PaymentMethod = "nagad"
	PaymentMethodRocket       PaymentMethod = "rocket"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBkash, PaymentMethodNagad, PaymentMethodRocket,
		PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// SubmitDetails is what a user provides when claiming a payment
type SubmitDetails struct {
	BillingCycle  BillingCycle
	PaymentMethod PaymentMethod
	TransactionID string
	PaymentProof  string
	Notes         string
}

// PaymentRequest is a user's claim of having paid for a plan
type PaymentRequest struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID
	PlanID        uuid.UUID
	BillingCycle  BillingCycle
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	TransactionID string
	PaymentProof  string
	Notes         string
	AdminNotes    string
	Status        PaymentRequestStatus
	SubmittedAt   *time.Time
	VerifiedAt    *time.Time
	VerifiedBy    *uuid.UUID
}

// NewPaymentRequest prices the claim from the plan and submits it
func NewPaymentRequest(userID uuid.UUID, plan *Plan, details SubmitDetails) (*PaymentRequest, error) {
	errs := shared.ValidationErrors{}
	if !details.BillingCycle.IsValid() {
		errs.Add("billing_cycle", fmt.Sprintf("\"%s\" is not a valid choice.", details.BillingCycle))
	}
	if !details.PaymentMethod.IsValid() {
		errs.Add("payment_method", fmt.Sprintf("\"%s\" is not a valid choice.", details.PaymentMethod))
	}
	if len(details.TransactionID) > 100 {
		errs.Add("transaction_id", "Ensure this field has no more than 100 characters.")
	}
	if len(details.PaymentProof) > 500 {
		errs.Add("payment_proof", "Ensure this field has no more than 500 characters.")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, shared.NewValidationError("plan_id", "This plan is not available.")
	}
	amount, err := plan.PriceFor(details.BillingCycle)
	if err != nil {
		return nil, err
	}

	req := &PaymentRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		PlanID:            plan.ID,
		BillingCycle:      details.BillingCycle,
		Amount:            amount,
		PaymentMethod:     details.PaymentMethod,
		TransactionID:     strings.TrimSpace(details.TransactionID),
		PaymentProof:      strings.TrimSpace(details.PaymentProof),
		Notes:             details.Notes,
		Status:            PaymentRequestPending,
	}
	req.submit(time.Now())
	return req, nil
}

func (r *PaymentRequest) submit(now time.Time) {
	r.Status = PaymentRequestSubmitted
	r.SubmittedAt = &now
	r.AddDomainEvent(NewPaymentRequestSubmittedEvent(r))
}

// Verify marks a submitted request as checked, ahead of the final decision
func (r *PaymentRequest) Verify(adminID uuid.UUID, notes string, now time.Time) error {
	if r.Status != PaymentRequestSubmitted {
		return r.invalidTransition("verify")
	}
	r.Status = PaymentRequestVerified
	r.recordReview(adminID, notes, now)
	return nil
}

// Approve accepts the payment. Subscription and history side effects are
// applied by the caller inside the same transaction.
func (r *PaymentRequest) Approve(adminID uuid.UUID, notes string, now time.Time) error {
	if !r.Status.IsReviewable() {
		return r.invalidTransition("approve")
	}
	r.Status = PaymentRequestApproved
	r.recordReview(adminID, notes, now)
	r.AddDomainEvent(NewPaymentRequestApprovedEvent(r))
	return nil
}

// Reject declines the payment
func (r *PaymentRequest) Reject(adminID uuid.UUID, notes string, now time.Time) error {
	if !r.Status.IsReviewable() {
		return r.invalidTransition("reject")
	}
	r.Status = PaymentRequestRejected
	r.recordReview(adminID, notes, now)
	r.AddDomainEvent(NewPaymentRequestRejectedEvent(r))
	return nil
}

func (r *PaymentRequest) recordReview(adminID uuid.UUID, notes string, now time.Time) {
	if notes != "" {
		r.AdminNotes = notes
	}
	r.VerifiedAt = &now
	r.VerifiedBy = &adminID
	r.UpdatedAt = now
	r.IncrementVersion()
}

func (r *PaymentRequest) invalidTransition(action string) error {
	return shared.NewDomainError(shared.ErrInvalidState.Code,
		fmt.Sprintf("Cannot %s a payment request that is %s", action, r.Status))
}
