package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/shopspring/decimal"
)

// EventModel is the persistence model for the Event aggregate.
type EventModel struct {
	OwnedAggregateModel
	Name                string                 `gorm:"type:varchar(200);not null"`
	Category            planning.EventCategory `gorm:"type:varchar(50);not null;index"`
	Description         string                 `gorm:"type:text"`
	Date                time.Time              `gorm:"type:date;not null"`
	Time                string                 `gorm:"type:varchar(8);not null"`
	Venue               string                 `gorm:"type:varchar(200);not null"`
	Address             string                 `gorm:"type:text"`
	Budget              decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	ExpectedGuests      int                    `gorm:"not null"`
	Status              planning.EventStatus   `gorm:"type:varchar(20);not null;default:'planning';index"`
	SpecialRequirements string                 `gorm:"type:text"`
	ContactPerson       string                 `gorm:"type:varchar(100)"`
	ContactPhone        string                 `gorm:"type:varchar(20)"`
	ContactEmail        string                 `gorm:"type:varchar(254)"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event.
func (m *EventModel) ToDomain() *planning.Event {
	return &planning.Event{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		EventDetails: planning.EventDetails{
			Name:                m.Name,
			Category:            m.Category,
			Description:         m.Description,
			Date:                planning.DateOnly(m.Date),
			Time:                m.Time,
			Venue:               m.Venue,
			Address:             m.Address,
			Budget:              m.Budget,
			ExpectedGuests:      m.ExpectedGuests,
			Status:              m.Status,
			SpecialRequirements: m.SpecialRequirements,
			ContactPerson:       m.ContactPerson,
			ContactPhone:        m.ContactPhone,
			ContactEmail:        m.ContactEmail,
		},
	}
}

// FromDomain populates the persistence model from a domain Event.
func (m *EventModel) FromDomain(e *planning.Event) {
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	m.Name = e.Name
	m.Category = e.Category
	m.Description = e.Description
	m.Date = e.Date
	m.Time = e.Time
	m.Venue = e.Venue
	m.Address = e.Address
	m.Budget = e.Budget
	m.ExpectedGuests = e.ExpectedGuests
	m.Status = e.Status
	m.SpecialRequirements = e.SpecialRequirements
	m.ContactPerson = e.ContactPerson
	m.ContactPhone = e.ContactPhone
	m.ContactEmail = e.ContactEmail
}

// EventModelFromDomain creates a new persistence model from a domain Event.
func EventModelFromDomain(e *planning.Event) *EventModel {
	m := &EventModel{}
	m.FromDomain(e)
	return m
}

// BudgetItemModel is the persistence model for the BudgetItem aggregate.
type BudgetItemModel struct {
	AggregateModel
	EventID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	VendorID      *uuid.UUID              `gorm:"type:uuid;index"`
	Category      planning.BudgetCategory `gorm:"type:varchar(50);not null"`
	ItemName      string                  `gorm:"type:varchar(200);not null"`
	EstimatedCost decimal.Decimal         `gorm:"type:decimal(10,2);not null"`
	ActualCost    decimal.Decimal         `gorm:"type:decimal(10,2);not null"`
	Status        planning.PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate       *time.Time              `gorm:"type:date"`
	Notes         string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BudgetItemModel) TableName() string {
	return "budget_items"
}

// ToDomain converts the persistence model to a domain BudgetItem.
func (m *BudgetItemModel) ToDomain() *planning.BudgetItem {
	var due *time.Time
	if m.DueDate != nil {
		d := planning.DateOnly(*m.DueDate)
		due = &d
	}
	return &planning.BudgetItem{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BudgetItemDetails: planning.BudgetItemDetails{
			EventID:       m.EventID,
			VendorID:      m.VendorID,
			Category:      m.Category,
			ItemName:      m.ItemName,
			EstimatedCost: m.EstimatedCost,
			ActualCost:    m.ActualCost,
			Status:        m.Status,
			DueDate:       due,
			Notes:         m.Notes,
		},
	}
}

// FromDomain populates the persistence model from a domain BudgetItem.
func (m *BudgetItemModel) FromDomain(b *planning.BudgetItem) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.EventID = b.EventID
	m.VendorID = b.VendorID
	m.Category = b.Category
	m.ItemName = b.ItemName
	m.EstimatedCost = b.EstimatedCost
	m.ActualCost = b.ActualCost
	m.Status = b.Status
	m.DueDate = b.DueDate
	m.Notes = b.Notes
}

// BudgetItemModelFromDomain creates a new persistence model from a domain BudgetItem.
func BudgetItemModelFromDomain(b *planning.BudgetItem) *BudgetItemModel {
	m := &BudgetItemModel{}
	m.FromDomain(b)
	return m
}

// GuestModel is the persistence model for the Guest aggregate.
type GuestModel struct {
	AggregateModel
	EventID             uuid.UUID              `gorm:"type:uuid;not null;index"`
	Name                string                 `gorm:"type:varchar(200);not null"`
	Email               string                 `gorm:"type:varchar(254)"`
	Phone               string                 `gorm:"type:varchar(20)"`
	WhatsAppNumber      string                 `gorm:"column:whatsapp_number;type:varchar(20)"`
	Category            planning.GuestCategory `gorm:"type:varchar(50);not null"`
	RSVPStatus          planning.RSVPStatus    `gorm:"column:rsvp_status;type:varchar(20);not null;default:'pending'"`
	PlusOnes            int                    `gorm:"not null;default:0"`
	DietaryRestrictions string                 `gorm:"type:text"`
	Notes               string                 `gorm:"type:text"`
	InvitationSent      bool                   `gorm:"not null;default:false"`
	InvitationSentDate  *time.Time
	CheckedIn           bool `gorm:"not null;default:false"`
	CheckInTime         *time.Time
}

// TableName returns the table name for GORM
func (GuestModel) TableName() string {
	return "guests"
}

// ToDomain converts the persistence model to a domain Guest.
func (m *GuestModel) ToDomain() *planning.Guest {
	return &planning.Guest{
		BaseAggregateRoot: m.ToAggregateRoot(),
		GuestDetails: planning.GuestDetails{
			EventID:             m.EventID,
			Name:                m.Name,
			Email:               m.Email,
			Phone:               m.Phone,
			WhatsAppNumber:      m.WhatsAppNumber,
			Category:            m.Category,
			RSVPStatus:          m.RSVPStatus,
			PlusOnes:            m.PlusOnes,
			DietaryRestrictions: m.DietaryRestrictions,
			Notes:               m.Notes,
			InvitationSent:      m.InvitationSent,
			InvitationSentDate:  m.InvitationSentDate,
			CheckedIn:           m.CheckedIn,
			CheckInTime:         m.CheckInTime,
		},
	}
}

// FromDomain populates the persistence model from a domain Guest.
func (m *GuestModel) FromDomain(g *planning.Guest) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.EventID = g.EventID
	m.Name = g.Name
	m.Email = g.Email
	m.Phone = g.Phone
	m.WhatsAppNumber = g.WhatsAppNumber
	m.Category = g.Category
	m.RSVPStatus = g.RSVPStatus
	m.PlusOnes = g.PlusOnes
	m.DietaryRestrictions = g.DietaryRestrictions
	m.Notes = g.Notes
	m.InvitationSent = g.InvitationSent
	m.InvitationSentDate = g.InvitationSentDate
	m.CheckedIn = g.CheckedIn
	m.CheckInTime = g.CheckInTime
}

// GuestModelFromDomain creates a new persistence model from a domain Guest.
func GuestModelFromDomain(g *planning.Guest) *GuestModel {
	m := &GuestModel{}
	m.FromDomain(g)
	return m
}

// VendorModel is the persistence model for the Vendor aggregate.
type VendorModel struct {
	OwnedAggregateModel
	Name           string                  `gorm:"type:varchar(200);not null"`
	Category       planning.VendorCategory `gorm:"type:varchar(50);not null"`
	Email          string                  `gorm:"type:varchar(254)"`
	Phone          string                  `gorm:"type:varchar(20);not null"`
	WhatsAppNumber string                  `gorm:"column:whatsapp_number;type:varchar(20)"`
	Address        string                  `gorm:"type:text;not null"`
	Website        string                  `gorm:"type:varchar(200)"`
	Rating         decimal.Decimal         `gorm:"type:decimal(3,2);not null"`
	PriceRange     planning.PriceRange     `gorm:"type:varchar(20);not null"`
	Services       string                  `gorm:"type:text;not null"`
	Notes          string                  `gorm:"type:text"`
	IsPreferred    bool                    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor.
func (m *VendorModel) ToDomain() *planning.Vendor {
	return &planning.Vendor{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		VendorDetails: planning.VendorDetails{
			Name:           m.Name,
			Category:       m.Category,
			Email:          m.Email,
			Phone:          m.Phone,
			WhatsAppNumber: m.WhatsAppNumber,
			Address:        m.Address,
			Website:        m.Website,
			Rating:         m.Rating,
			PriceRange:     m.PriceRange,
			Services:       m.Services,
			Notes:          m.Notes,
			IsPreferred:    m.IsPreferred,
		},
	}
}

// FromDomain populates the persistence model from a domain Vendor.
func (m *VendorModel) FromDomain(v *planning.Vendor) {
	m.FromDomainOwnedAggregateRoot(v.OwnedAggregateRoot)
	m.Name = v.Name
	m.Category = v.Category
	m.Email = v.Email
	m.Phone = v.Phone
	m.WhatsAppNumber = v.WhatsAppNumber
	m.Address = v.Address
	m.Website = v.Website
	m.Rating = v.Rating
	m.PriceRange = v.PriceRange
	m.Services = v.Services
	m.Notes = v.Notes
	m.IsPreferred = v.IsPreferred
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(v *planning.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}

