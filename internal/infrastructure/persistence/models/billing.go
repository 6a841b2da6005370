package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// SubscriptionPlanModel is the persistence model for the Plan aggregate.
type SubscriptionPlanModel struct {
	AggregateModel
	Name              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	DisplayName       string          `gorm:"type:varchar(100);not null"`
	Description       string          `gorm:"type:text"`
	PriceMonthly      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceYearly       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MaxEvents         int             `gorm:"not null;default:0"`
	MaxGuestsPerEvent int             `gorm:"not null;default:0"`
	MaxVendors        int             `gorm:"not null;default:0"`
	Features          []string        `gorm:"type:jsonb;serializer:json"`
	IsActive          bool            `gorm:"not null"`
	SortOrder         int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SubscriptionPlanModel) TableName() string {
	return "subscription_plans"
}

// ToDomain converts the persistence model to a domain Plan.
func (m *SubscriptionPlanModel) ToDomain() *billing.Plan {
	features := m.Features
	if features == nil {
		features = []string{}
	}
	return &billing.Plan{
		BaseAggregateRoot: m.ToAggregateRoot(),
		PlanDetails: billing.PlanDetails{
			Name:              m.Name,
			DisplayName:       m.DisplayName,
			Description:       m.Description,
			PriceMonthly:      m.PriceMonthly,
			PriceYearly:       m.PriceYearly,
			MaxEvents:         m.MaxEvents,
			MaxGuestsPerEvent: m.MaxGuestsPerEvent,
			MaxVendors:        m.MaxVendors,
			Features:          features,
			IsActive:          m.IsActive,
			SortOrder:         m.SortOrder,
		},
	}
}

// FromDomain populates the persistence model from a domain Plan.
func (m *SubscriptionPlanModel) FromDomain(p *billing.Plan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.DisplayName = p.DisplayName
	m.Description = p.Description
	m.PriceMonthly = p.PriceMonthly
	m.PriceYearly = p.PriceYearly
	m.MaxEvents = p.MaxEvents
	m.MaxGuestsPerEvent = p.MaxGuestsPerEvent
	m.MaxVendors = p.MaxVendors
	m.Features = p.Features
	m.IsActive = p.IsActive
	m.SortOrder = p.SortOrder
}

// SubscriptionPlanModelFromDomain creates a new persistence model from a domain Plan.
func SubscriptionPlanModelFromDomain(p *billing.Plan) *SubscriptionPlanModel {
	m := &SubscriptionPlanModel{}
	m.FromDomain(p)
	return m
}

// PaymentRequestModel is the persistence model for the PaymentRequest aggregate.
type PaymentRequestModel struct {
	AggregateModel
	UserID        uuid.UUID                    `gorm:"type:uuid;not null;index"`
	PlanID        uuid.UUID                    `gorm:"type:uuid;not null;index"`
	BillingCycle  billing.BillingCycle         `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal              `gorm:"type:decimal(10,2);not null"`
	PaymentMethod billing.PaymentMethod        `gorm:"type:varchar(20);not null"`
	TransactionID string                       `gorm:"type:varchar(100)"`
	PaymentProof  string                       `gorm:"type:varchar(500)"`
	Notes         string                       `gorm:"type:text"`
	AdminNotes    string                       `gorm:"type:text"`
	Status        billing.PaymentRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	SubmittedAt   *time.Time
	VerifiedAt    *time.Time
	VerifiedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentRequestModel) TableName() string {
	return "payment_requests"
}

// ToDomain converts the persistence model to a domain PaymentRequest.
func (m *PaymentRequestModel) ToDomain() *billing.PaymentRequest {
	return &billing.PaymentRequest{
		BaseAggregateRoot: m.ToAggregateRoot(),
		UserID:            m.UserID,
		PlanID:            m.PlanID,
		BillingCycle:      m.BillingCycle,
		Amount:            m.Amount,
		PaymentMethod:     m.PaymentMethod,
		TransactionID:     m.TransactionID,
		PaymentProof:      m.PaymentProof,
		Notes:             m.Notes,
		AdminNotes:        m.AdminNotes,
		Status:            m.Status,
		SubmittedAt:       m.SubmittedAt,
		VerifiedAt:        m.VerifiedAt,
		VerifiedBy:        m.VerifiedBy,
	}
}

// FromDomain populates the persistence model from a domain PaymentRequest.
func (m *PaymentRequestModel) FromDomain(r *billing.PaymentRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.UserID = r.UserID
	m.PlanID = r.PlanID
	m.BillingCycle = r.BillingCycle
	m.Amount = r.Amount
	m.PaymentMethod = r.PaymentMethod
	m.TransactionID = r.TransactionID
	m.PaymentProof = r.PaymentProof
	m.Notes = r.Notes
	m.AdminNotes = r.AdminNotes
	m.Status = r.Status
	m.SubmittedAt = r.SubmittedAt
	m.VerifiedAt = r.VerifiedAt
	m.VerifiedBy = r.VerifiedBy
}

// PaymentRequestModelFromDomain creates a new persistence model from a domain PaymentRequest.
func PaymentRequestModelFromDomain(r *billing.PaymentRequest) *PaymentRequestModel {
	m := &PaymentRequestModel{}
	m.FromDomain(r)
	return m
}

// UserSubscriptionModel is the persistence model for the UserSubscription aggregate.
// The unique user_id index is what makes the subscription a per-user singleton.
type UserSubscriptionModel struct {
	AggregateModel
	UserID             uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex"`
	PlanID             uuid.UUID                  `gorm:"type:uuid;not null;index"`
	BillingCycle       billing.BillingCycle       `gorm:"type:varchar(10);not null"`
	Status             billing.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CurrentPeriodStart time.Time                  `gorm:"not null"`
	CurrentPeriodEnd   time.Time                  `gorm:"not null"`
	CancelledAt        *time.Time
}

// TableName returns the table name for GORM
func (UserSubscriptionModel) TableName() string {
	return "user_subscriptions"
}

// ToDomain converts the persistence model to a domain UserSubscription.
func (m *UserSubscriptionModel) ToDomain() *billing.UserSubscription {
	return &billing.UserSubscription{
		BaseAggregateRoot:  m.ToAggregateRoot(),
		UserID:             m.UserID,
		PlanID:             m.PlanID,
		BillingCycle:       m.BillingCycle,
		Status:             m.Status,
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		CancelledAt:        m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain UserSubscription.
func (m *UserSubscriptionModel) FromDomain(s *billing.UserSubscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.UserID = s.UserID
	m.PlanID = s.PlanID
	m.BillingCycle = s.BillingCycle
	m.Status = s.Status
	m.CurrentPeriodStart = s.CurrentPeriodStart
	m.CurrentPeriodEnd = s.CurrentPeriodEnd
	m.CancelledAt = s.CancelledAt
}

// UserSubscriptionModelFromDomain creates a new persistence model from a domain UserSubscription.
func UserSubscriptionModelFromDomain(s *billing.UserSubscription) *UserSubscriptionModel {
	m := &UserSubscriptionModel{}
	m.FromDomain(s)
	return m
}

// PaymentHistoryModel is the persistence model for the PaymentHistory ledger.
// One row per approved payment request, enforced by the unique index.
type PaymentHistoryModel struct {
	BaseModel
	UserID           uuid.UUID                    `gorm:"type:uuid;not null;index"`
	SubscriptionID   uuid.UUID                    `gorm:"type:uuid;not null;index"`
	PaymentRequestID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex"`
	PlanID           uuid.UUID                    `gorm:"type:uuid;not null"`
	Amount           decimal.Decimal              `gorm:"type:decimal(10,2);not null"`
	PaymentMethod    billing.PaymentMethod        `gorm:"type:varchar(20);not null"`
	TransactionID    string                       `gorm:"type:varchar(100)"`
	BillingCycle     billing.BillingCycle         `gorm:"type:varchar(10);not null"`
	Status           billing.PaymentHistoryStatus `gorm:"type:varchar(20);not null"`
	PeriodStart      time.Time                    `gorm:"not null"`
	PeriodEnd        time.Time                    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentHistoryModel) TableName() string {
	return "payment_history"
}

// ToDomain converts the persistence model to a domain PaymentHistory.
func (m *PaymentHistoryModel) ToDomain() *billing.PaymentHistory {
	return &billing.PaymentHistory{
		BaseEntity:       m.BaseModel.ToDomain(),
		UserID:           m.UserID,
		SubscriptionID:   m.SubscriptionID,
		PaymentRequestID: m.PaymentRequestID,
		PlanID:           m.PlanID,
		Amount:           m.Amount,
		PaymentMethod:    m.PaymentMethod,
		TransactionID:    m.TransactionID,
		BillingCycle:     m.BillingCycle,
		Status:           m.Status,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
	}
}

// PaymentHistoryModelFromDomain creates a new persistence model from a domain PaymentHistory.
func PaymentHistoryModelFromDomain(h *billing.PaymentHistory) *PaymentHistoryModel {
	m := &PaymentHistoryModel{
		UserID:           h.UserID,
		SubscriptionID:   h.SubscriptionID,
		PaymentRequestID: h.PaymentRequestID,
		PlanID:           h.PlanID,
		Amount:           h.Amount,
		PaymentMethod:    h.PaymentMethod,
		TransactionID:    h.TransactionID,
		BillingCycle:     h.BillingCycle,
		Status:           h.Status,
		PeriodStart:      h.PeriodStart,
		PeriodEnd:        h.PeriodEnd,
	}
	m.FromDomainBaseEntity(h.BaseEntity)
	return m
}
