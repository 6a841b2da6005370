package models

import (
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email               string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Username            string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash        string `gorm:"type:varchar(255);not null"`
	FirstName           string `gorm:"type:varchar(150)"`
	LastName            string `gorm:"type:varchar(150)"`
	Phone               string `gorm:"type:varchar(20)"`
	WhatsAppNumber      string `gorm:"column:whatsapp_number;type:varchar(20)"`
	BusinessName        string `gorm:"type:varchar(200)"`
	BusinessType        string `gorm:"type:varchar(50)"`
	Country             string `gorm:"type:varchar(100);not null;default:'Bangladesh'"`
	City                string `gorm:"type:varchar(100)"`
	SubscriptionPlan    string `gorm:"type:varchar(50);not null;default:'free'"`
	IsVerified          bool   `gorm:"not null;default:false"`
	IsActive            bool   `gorm:"not null"`
	IsStaff             bool   `gorm:"not null;default:false"`
	SubscribeNewsletter bool   `gorm:"not null;default:false"`
	LastLoginAt         *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot:   m.ToAggregateRoot(),
		Email:               m.Email,
		Username:            m.Username,
		PasswordHash:        m.PasswordHash,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Phone:               m.Phone,
		WhatsAppNumber:      m.WhatsAppNumber,
		BusinessName:        m.BusinessName,
		BusinessType:        m.BusinessType,
		Country:             m.Country,
		City:                m.City,
		SubscriptionPlan:    m.SubscriptionPlan,
		IsVerified:          m.IsVerified,
		IsActive:            m.IsActive,
		IsStaff:             m.IsStaff,
		SubscribeNewsletter: m.SubscribeNewsletter,
		LastLoginAt:         m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.WhatsAppNumber = u.WhatsAppNumber
	m.BusinessName = u.BusinessName
	m.BusinessType = u.BusinessType
	m.Country = u.Country
	m.City = u.City
	m.SubscriptionPlan = u.SubscriptionPlan
	m.IsVerified = u.IsVerified
	m.IsActive = u.IsActive
	m.IsStaff = u.IsStaff
	m.SubscribeNewsletter = u.SubscribeNewsletter
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
