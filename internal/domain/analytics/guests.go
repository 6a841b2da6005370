package analytics

import (
	"sort"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
)

// GuestStats counts guests and attendees. It backs both event analytics
// and the stats block of the guest listing.
type GuestStats struct {
	TotalGuests        int `json:"total_guests"`
	TotalAttendees     int `json:"total_attendees"`
	ConfirmedGuests    int `json:"confirmed_guests"`
	ConfirmedAttendees int `json:"confirmed_attendees"`
	PendingGuests      int `json:"pending_guests"`
	DeclinedGuests     int `json:"declined_guests"`
	MaybeGuests        int `json:"maybe_guests"`
	CheckedInGuests    int `json:"checked_in_guests"`
	CheckedInAttendees int `json:"checked_in_attendees"`
	InvitationsSent    int `json:"invitations_sent"`
}

// GuestCategoryRollup counts one guest category
type GuestCategoryRollup struct {
	Category  planning.GuestCategory `json:"category"`
	Count     int                    `json:"count"`
	Attendees int                    `json:"attendees"`
	Confirmed int                    `json:"confirmed"`
}

// GuestRSVPRollup counts one RSVP status
type GuestRSVPRollup struct {
	RSVPStatus planning.RSVPStatus `json:"rsvp_status"`
	Count      int                 `json:"count"`
	Attendees  int                 `json:"attendees"`
}

// GuestMonth counts guests registered in a month
type GuestMonth struct {
	Month     string `json:"month"`
	Count     int    `json:"count"`
	Attendees int    `json:"attendees"`
}

// GuestReport is the guest section of event analytics
type GuestReport struct {
	Stats          GuestStats            `json:"stats"`
	ByCategory     []GuestCategoryRollup `json:"by_category"`
	ByRSVPStatus   []GuestRSVPRollup     `json:"by_rsvp_status"`
	Timeline       []GuestMonth          `json:"timeline"`
	RSVPRate       float64               `json:"rsvp_rate"`
	AttendanceRate float64               `json:"attendance_rate"`
}

// SummarizeGuests counts guests by RSVP and check-in state
func SummarizeGuests(guests []*planning.Guest) GuestStats {
	var s GuestStats
	for _, g := range guests {
		attendees := g.TotalAttendees()
		s.TotalGuests++
		s.TotalAttendees += attendees
		switch g.RSVPStatus {
		case planning.RSVPConfirmed:
			s.ConfirmedGuests++
			s.ConfirmedAttendees += attendees
		case planning.RSVPPending:
			s.PendingGuests++
		case planning.RSVPDeclined:
			s.DeclinedGuests++
		case planning.RSVPMaybe:
			s.MaybeGuests++
		}
		if g.CheckedIn {
			s.CheckedInGuests++
			s.CheckedInAttendees += attendees
		}
		if g.InvitationSent {
			s.InvitationsSent++
		}
	}
	return s
}

// RSVPRate is the confirmed share of these stats
func (s GuestStats) RSVPRate() float64 {
	return RSVPRate(s.ConfirmedGuests, s.TotalGuests)
}

// AttendanceRate is the checked-in share of confirmed guests
func (s GuestStats) AttendanceRate() float64 {
	return AttendanceRate(s.CheckedInGuests, s.ConfirmedGuests)
}

// BuildGuestReport produces the guest section of event analytics
func BuildGuestReport(guests []*planning.Guest) GuestReport {
	stats := SummarizeGuests(guests)
	return GuestReport{
		Stats:          stats,
		ByCategory:     guestsByCategory(guests),
		ByRSVPStatus:   guestsByRSVP(guests),
		Timeline:       guestTimeline(guests),
		RSVPRate:       stats.RSVPRate(),
		AttendanceRate: stats.AttendanceRate(),
	}
}

func guestsByCategory(guests []*planning.Guest) []GuestCategoryRollup {
	index := make(map[planning.GuestCategory]*GuestCategoryRollup)
	for _, g := range guests {
		r, ok := index[g.Category]
		if !ok {
			r = &GuestCategoryRollup{Category: g.Category}
			index[g.Category] = r
		}
		r.Count++
		r.Attendees += g.TotalAttendees()
		if g.RSVPStatus == planning.RSVPConfirmed {
			r.Confirmed++
		}
	}
	out := make([]GuestCategoryRollup, 0, len(index))
	for _, r := range index {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func guestsByRSVP(guests []*planning.Guest) []GuestRSVPRollup {
	counts := make(map[planning.RSVPStatus]*GuestRSVPRollup)
	for _, g := range guests {
		r, ok := counts[g.RSVPStatus]
		if !ok {
			r = &GuestRSVPRollup{RSVPStatus: g.RSVPStatus}
			counts[g.RSVPStatus] = r
		}
		r.Count++
		r.Attendees += g.TotalAttendees()
	}
	out := make([]GuestRSVPRollup, 0, len(counts))
	for _, status := range planning.RSVPStatuses {
		if r, ok := counts[status]; ok {
			out = append(out, *r)
		}
	}
	return out
}

func guestTimeline(guests []*planning.Guest) []GuestMonth {
	index := make(map[string]*GuestMonth)
	for _, g := range guests {
		key := MonthKey(g.CreatedAt)
		m, ok := index[key]
		if !ok {
			m = &GuestMonth{Month: key}
			index[key] = m
		}
		m.Count++
		m.Attendees += g.TotalAttendees()
	}
	out := make([]GuestMonth, 0, len(index))
	for _, m := range index {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
