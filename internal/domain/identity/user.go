package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

const (
	// FreePlanName is the subscription tag every user falls back to
	FreePlanName   = "free"
	DefaultCountry = "Bangladesh"
)

// BusinessTypes lists the accepted business type labels
var BusinessTypes = []string{
	"Wedding Planner",
	"Event Management Company",
	"Community Organization",
	"Corporate Event Planner",
	"Individual Planner",
	"Other",
}

// IsValidBusinessType checks a business type against BusinessTypes
func IsValidBusinessType(businessType string) bool {
	for _, bt := range BusinessTypes {
		if bt == businessType {
			return true
		}
	}
	return false
}

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRegex = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
)

// User is the account holder. Events, vendors, settings and the
// subscription all hang off a user.
type User struct {
	shared.BaseAggregateRoot
	Email               string
	Username            string
	PasswordHash        string
	FirstName           string
	LastName            string
	Phone               string
	WhatsAppNumber      string
	BusinessName        string
	BusinessType        string
	Country             string
	City                string
	SubscriptionPlan    string // cache of the active plan name, written only by billing
	IsVerified          bool
	IsActive            bool
	IsStaff             bool
	SubscribeNewsletter bool
	LastLoginAt         *time.Time
}

// Profile holds the user-editable profile fields
type Profile struct {
	FirstName           string
	LastName            string
	Phone               string
	WhatsAppNumber      string
	BusinessName        string
	BusinessType        string
	Country             string
	City                string
	SubscribeNewsletter bool
}

// ProfileUpdate is a partial profile change; nil fields are left untouched
type ProfileUpdate struct {
	FirstName           *string
	LastName            *string
	Phone               *string
	WhatsAppNumber      *string
	BusinessName        *string
	BusinessType        *string
	Country             *string
	City                *string
	SubscribeNewsletter *bool
}

// NewUser creates an active user on the free plan
func NewUser(email, password string, profile Profile) (*User, error) {
	errs := shared.ValidationErrors{}
	email = NormalizeEmail(email)
	if msg := validateEmail(email); msg != "" {
		errs.Add("email", msg)
	}
	if msg := validatePassword(password); msg != "" {
		errs.Add("password", msg)
	}
	validateProfile(errs, profile)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	country := strings.TrimSpace(profile.Country)
	if country == "" {
		country = DefaultCountry
	}

	user := &User{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Email:               email,
		Username:            email,
		PasswordHash:        passwordHash,
		FirstName:           strings.TrimSpace(profile.FirstName),
		LastName:            strings.TrimSpace(profile.LastName),
		Phone:               strings.TrimSpace(profile.Phone),
		WhatsAppNumber:      strings.TrimSpace(profile.WhatsAppNumber),
		BusinessName:        strings.TrimSpace(profile.BusinessName),
		BusinessType:        strings.TrimSpace(profile.BusinessType),
		Country:             country,
		City:                strings.TrimSpace(profile.City),
		SubscriptionPlan:    FreePlanName,
		IsActive:            true,
		SubscribeNewsletter: profile.SubscribeNewsletter,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// UpdateProfile applies a partial profile change
func (u *User) UpdateProfile(update ProfileUpdate) error {
	next := Profile{
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Phone:               u.Phone,
		WhatsAppNumber:      u.WhatsAppNumber,
		BusinessName:        u.BusinessName,
		BusinessType:        u.BusinessType,
		Country:             u.Country,
		City:                u.City,
		SubscribeNewsletter: u.SubscribeNewsletter,
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&next.FirstName, update.FirstName)
	apply(&next.LastName, update.LastName)
	apply(&next.Phone, update.Phone)
	apply(&next.WhatsAppNumber, update.WhatsAppNumber)
	apply(&next.BusinessName, update.BusinessName)
	apply(&next.BusinessType, update.BusinessType)
	apply(&next.Country, update.Country)
	apply(&next.City, update.City)
	if update.SubscribeNewsletter != nil {
		next.SubscribeNewsletter = *update.SubscribeNewsletter
	}

	errs := shared.ValidationErrors{}
	validateProfile(errs, next)
	if err := errs.Err(); err != nil {
		return err
	}
	if next.Country == "" {
		next.Country = DefaultCountry
	}

	u.FirstName = next.FirstName
	u.LastName = next.LastName
	u.Phone = next.Phone
	u.WhatsAppNumber = next.WhatsAppNumber
	u.BusinessName = next.BusinessName
	u.BusinessType = next.BusinessType
	u.Country = next.Country
	u.City = next.City
	u.SubscribeNewsletter = next.SubscribeNewsletter
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(newPassword string) error {
	if msg := validatePassword(newPassword); msg != "" {
		return shared.NewValidationError("password", msg)
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// CanLogin reports whether the account may sign in
func (u *User) CanLogin() bool {
	return u.IsActive
}

// FullName joins first and last name, falling back to the email
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// HasPaidPlan reports whether the cached plan tag is above the free tier
func (u *User) HasPaidPlan() bool {
	return u.SubscriptionPlan != "" && u.SubscriptionPlan != FreePlanName
}

// NormalizeEmail lowercases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfile(errs shared.ValidationErrors, p Profile) {
	if strings.TrimSpace(p.BusinessName) == "" {
		errs.Add("business_name", "This field is required.")
	}
	if bt := strings.TrimSpace(p.BusinessType); bt == "" {
		errs.Add("business_type", "This field is required.")
	} else if !IsValidBusinessType(bt) {
		errs.Add("business_type", fmt.Sprintf("\"%s\" is not a valid choice.", bt))
	}
	if strings.TrimSpace(p.City) == "" {
		errs.Add("city", "This field is required.")
	}
	maxLen := func(field, value string, n int) {
		if len(value) > n {
			errs.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", n))
		}
	}
	maxLen("first_name", p.FirstName, 150)
	maxLen("last_name", p.LastName, 150)
	maxLen("phone", p.Phone, 20)
	maxLen("whatsapp_number", p.WhatsAppNumber, 20)
	maxLen("business_name", p.BusinessName, 200)
	maxLen("business_type", p.BusinessType, 100)
	maxLen("country", p.Country, 100)
	maxLen("city", p.City, 100)
}

func validatePassword(password string) string {
	switch {
	case password == "":
		return "This field is required."
	case len(password) < 8:
		return "Password must be at least 8 characters"
	case len(password) > 128:
		return "Password cannot exceed 128 characters"
	case !letterRegex.MatchString(password) || !digitRegex.MatchString(password):
		return "Password must contain at least one letter and one number"
	}
	return ""
}

func validateEmail(email string) string {
	switch {
	case email == "":
		return "This field is required."
	case len(email) > 254:
		return "Email cannot exceed 254 characters"
	case !emailRegex.MatchString(email):
		return "Enter a valid email address."
	}
	return ""
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
