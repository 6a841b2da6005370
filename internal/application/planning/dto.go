package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/analytics"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ListQuery holds the paging, ordering and search parameters shared by every listing
type ListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (q ListQuery) filter() shared.Filter {
	return shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
		Filters:  make(map[string]any),
	}.Normalize()
}

// EventListFilter represents filter options for the event list
type EventListFilter struct {
	ListQuery
	Status   string `form:"status"`
	Category string `form:"category"`
}

func (f EventListFilter) domain() planning.EventFilter {
	filter := f.filter()
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	return planning.EventFilter{Filter: filter}
}

// EventRequest creates or replaces an event
type EventRequest struct {
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Description         string          `json:"description"`
	Date                string          `json:"date"`
	Time                string          `json:"time"`
	Venue               string          `json:"venue"`
	Address             string          `json:"address"`
	Budget              decimal.Decimal `json:"budget"`
	ExpectedGuests      int             `json:"expected_guests"`
	Status              string          `json:"status"`
	SpecialRequirements string          `json:"special_requirements"`
	ContactPerson       string          `json:"contact_person"`
	ContactPhone        string          `json:"contact_phone"`
	ContactEmail        string          `json:"contact_email"`
}

func (r EventRequest) details() (planning.EventDetails, error) {
	details := planning.EventDetails{
		Name:                r.Name,
		Category:            planning.EventCategory(r.Category),
		Description:         r.Description,
		Time:                r.Time,
		Venue:               r.Venue,
		Address:             r.Address,
		Budget:              r.Budget,
		ExpectedGuests:      r.ExpectedGuests,
		Status:              planning.EventStatus(r.Status),
		SpecialRequirements: r.SpecialRequirements,
		ContactPerson:       r.ContactPerson,
		ContactPhone:        r.ContactPhone,
		ContactEmail:        r.ContactEmail,
	}
	if r.Date != "" {
		date, err := planning.ParseDate(r.Date)
		if err != nil {
			return details, shared.NewValidationError("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		details.Date = date
	}
	return details, nil
}

// EventResponse is an event with its child rollups
type EventResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Description         string          `json:"description"`
	Date                string          `json:"date"`
	Time                string          `json:"time"`
	Venue               string          `json:"venue"`
	Address             string          `json:"address"`
	Budget              decimal.Decimal `json:"budget"`
	ExpectedGuests      int             `json:"expected_guests"`
	Status              string          `json:"status"`
	SpecialRequirements string          `json:"special_requirements"`
	ContactPerson       string          `json:"contact_person"`
	ContactPhone        string          `json:"contact_phone"`
	ContactEmail        string          `json:"contact_email"`
	BudgetItemsCount    int64           `json:"budget_items_count"`
	GuestsCount         int64           `json:"guests_count"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToEventResponse converts an event summary
func ToEventResponse(s planning.EventSummary) EventResponse {
	e := s.Event
	return EventResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Category:            string(e.Category),
		Description:         e.Description,
		Date:                e.Date.Format(dateLayout),
		Time:                e.Time,
		Venue:               e.Venue,
		Address:             e.Address,
		Budget:              e.Budget,
		ExpectedGuests:      e.ExpectedGuests,
		Status:              string(e.Status),
		SpecialRequirements: e.SpecialRequirements,
		ContactPerson:       e.ContactPerson,
		ContactPhone:        e.ContactPhone,
		ContactEmail:        e.ContactEmail,
		BudgetItemsCount:    s.BudgetItemsCount,
		GuestsCount:         s.GuestsCount,
		TotalSpent:          s.TotalSpent,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// BudgetItemListFilter represents filter options for the budget list
type BudgetItemListFilter struct {
	ListQuery
	EventID  string `form:"event_id" binding:"omitempty,uuid"`
	Category string `form:"category"`
	Status   string `form:"status"`
}

func (f BudgetItemListFilter) domain() planning.BudgetItemFilter {
	filter := f.filter()
	if id, err := uuid.Parse(f.EventID); err == nil {
		filter.Filters["event_id"] = id
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return planning.BudgetItemFilter{Filter: filter}
}

// BudgetItemRequest creates or replaces a budget item
type BudgetItemRequest struct {
	EventID       uuid.UUID       `json:"event_id"`
	VendorID      *uuid.UUID      `json:"vendor_id"`
	Category      string          `json:"category"`
	ItemName      string          `json:"item_name"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	ActualCost    decimal.Decimal `json:"actual_cost"`
	Status        string          `json:"status"`
	DueDate       *string         `json:"due_date"`
	Notes         string          `json:"notes"`
}

func (r BudgetItemRequest) details() (planning.BudgetItemDetails, error) {
	details := planning.BudgetItemDetails{
		EventID:       r.EventID,
		VendorID:      r.VendorID,
		Category:      planning.BudgetCategory(r.Category),
		ItemName:      r.ItemName,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		Status:        planning.PaymentStatus(r.Status),
		Notes:         r.Notes,
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := planning.ParseDate(*r.DueDate)
		if err != nil {
			return details, shared.NewValidationError("due_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		details.DueDate = &due
	}
	return details, nil
}

// BudgetItemResponse is a budget item with the names it refers to
type BudgetItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	EventID       uuid.UUID       `json:"event_id"`
	EventName     string          `json:"event_name"`
	VendorID      *uuid.UUID      `json:"vendor_id"`
	VendorName    *string         `json:"vendor_name"`
	Category      string          `json:"category"`
	ItemName      string          `json:"item_name"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	ActualCost    decimal.Decimal `json:"actual_cost"`
	Variance      decimal.Decimal `json:"variance"`
	Status        string          `json:"status"`
	DueDate       *string         `json:"due_date"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToBudgetItemResponse converts a budget item view
func ToBudgetItemResponse(v *planning.BudgetItemView) BudgetItemResponse {
	b := v.BudgetItem
	resp := BudgetItemResponse{
		ID:            b.ID,
		EventID:       b.EventID,
		EventName:     v.EventName,
		VendorID:      b.VendorID,
		Category:      string(b.Category),
		ItemName:      b.ItemName,
		EstimatedCost: b.EstimatedCost,
		ActualCost:    b.ActualCost,
		Variance:      b.Variance(),
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.VendorID != nil {
		name := v.VendorName
		resp.VendorName = &name
	}
	if b.DueDate != nil {
		due := b.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	return resp
}

// GuestListFilter represents filter options for the guest list
type GuestListFilter struct {
	ListQuery
	EventID    string `form:"event_id" binding:"omitempty,uuid"`
	Category   string `form:"category"`
	RSVPStatus string `form:"rsvp_status"`
	CheckedIn  *bool  `form:"checked_in"`
}

func (f GuestListFilter) domain() planning.GuestFilter {
	filter := f.filter()
	if id, err := uuid.Parse(f.EventID); err == nil {
		filter.Filters["event_id"] = id
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.RSVPStatus != "" {
		filter.Filters["rsvp_status"] = f.RSVPStatus
	}
	if f.CheckedIn != nil {
		filter.Filters["checked_in"] = *f.CheckedIn
	}
	return planning.GuestFilter{Filter: filter}
}

// GuestRequest creates or replaces a guest
type GuestRequest struct {
	EventID             uuid.UUID  `json:"event_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	WhatsAppNumber      string     `json:"whatsapp_number"`
	Category            string     `json:"category"`
	RSVPStatus          string     `json:"rsvp_status"`
	PlusOnes            int        `json:"plus_ones"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`
	InvitationSent      bool       `json:"invitation_sent"`
	InvitationSentDate  *time.Time `json:"invitation_sent_date"`
	CheckedIn           bool       `json:"checked_in"`
	CheckInTime         *time.Time `json:"check_in_time"`
}

func (r GuestRequest) details() planning.GuestDetails {
	return planning.GuestDetails{
		EventID:             r.EventID,
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		WhatsAppNumber:      r.WhatsAppNumber,
		Category:            planning.GuestCategory(r.Category),
		RSVPStatus:          planning.RSVPStatus(r.RSVPStatus),
		PlusOnes:            r.PlusOnes,
		DietaryRestrictions: r.DietaryRestrictions,
		Notes:               r.Notes,
		InvitationSent:      r.InvitationSent,
		InvitationSentDate:  r.InvitationSentDate,
		CheckedIn:           r.CheckedIn,
		CheckInTime:         r.CheckInTime,
	}
}

// GuestResponse is a guest with the attendee count
type GuestResponse struct {
	ID                  uuid.UUID  `json:"id"`
	EventID             uuid.UUID  `json:"event_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	WhatsAppNumber      string     `json:"whatsapp_number"`
	Category            string     `json:"category"`
	RSVPStatus          string     `json:"rsvp_status"`
	PlusOnes            int        `json:"plus_ones"`
	TotalAttendees      int        `json:"total_attendees"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`
	InvitationSent      bool       `json:"invitation_sent"`
	InvitationSentDate  *time.Time `json:"invitation_sent_date"`
	CheckedIn           bool       `json:"checked_in"`
	CheckInTime         *time.Time `json:"check_in_time"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToGuestResponse converts a domain guest
func ToGuestResponse(g *planning.Guest) GuestResponse {
	return GuestResponse{
		ID:                  g.ID,
		EventID:             g.EventID,
		Name:                g.Name,
		Email:               g.Email,
		Phone:               g.Phone,
		WhatsAppNumber:      g.WhatsAppNumber,
		Category:            string(g.Category),
		RSVPStatus:          string(g.RSVPStatus),
		PlusOnes:            g.PlusOnes,
		TotalAttendees:      g.TotalAttendees(),
		DietaryRestrictions: g.DietaryRestrictions,
		Notes:               g.Notes,
		InvitationSent:      g.InvitationSent,
		InvitationSentDate:  g.InvitationSentDate,
		CheckedIn:           g.CheckedIn,
		CheckInTime:         g.CheckInTime,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

// GuestListResponse is a page of guests plus stats over every matching guest
type GuestListResponse struct {
	shared.Paginated[GuestResponse]
	Stats analytics.GuestStats `json:"stats"`
}

// VendorListFilter represents filter options for the vendor list
type VendorListFilter struct {
	ListQuery
	Category    string `form:"category"`
	PriceRange  string `form:"price_range"`
	IsPreferred *bool  `form:"is_preferred"`
}

func (f VendorListFilter) domain() planning.VendorFilter {
	filter := f.filter()
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.PriceRange != "" {
		filter.Filters["price_range"] = f.PriceRange
	}
	if f.IsPreferred != nil {
		filter.Filters["is_preferred"] = *f.IsPreferred
	}
	return planning.VendorFilter{Filter: filter}
}

// VendorRequest creates or replaces a vendor
type VendorRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	WhatsAppNumber string          `json:"whatsapp_number"`
	Address        string          `json:"address"`
	Website        string          `json:"website"`
	Rating         decimal.Decimal `json:"rating"`
	PriceRange     string          `json:"price_range"`
	Services       string          `json:"services"`
	Notes          string          `json:"notes"`
	IsPreferred    bool            `json:"is_preferred"`
}

func (r VendorRequest) details() planning.VendorDetails {
	return planning.VendorDetails{
		Name:           r.Name,
		Category:       planning.VendorCategory(r.Category),
		Email:          r.Email,
		Phone:          r.Phone,
		WhatsAppNumber: r.WhatsAppNumber,
		Address:        r.Address,
		Website:        r.Website,
		Rating:         r.Rating,
		PriceRange:     planning.PriceRange(r.PriceRange),
		Services:       r.Services,
		Notes:          r.Notes,
		IsPreferred:    r.IsPreferred,
	}
}

// VendorResponse is a vendor address book entry
type VendorResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	WhatsAppNumber string          `json:"whatsapp_number"`
	Address        string          `json:"address"`
	Website        string          `json:"website"`
	Rating         decimal.Decimal `json:"rating"`
	PriceRange     string          `json:"price_range"`
	Services       string          `json:"services"`
	Notes          string          `json:"notes"`
	IsPreferred    bool            `json:"is_preferred"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor
func ToVendorResponse(v *planning.Vendor) VendorResponse {
	return VendorResponse{
		ID:             v.ID,
		Name:           v.Name,
		Category:       string(v.Category),
		Email:          v.Email,
		Phone:          v.Phone,
		WhatsAppNumber: v.WhatsAppNumber,
		Address:        v.Address,
		Website:        v.Website,
		Rating:         v.Rating,
		PriceRange:     string(v.PriceRange),
		Services:       v.Services,
		Notes:          v.Notes,
		IsPreferred:    v.IsPreferred,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
