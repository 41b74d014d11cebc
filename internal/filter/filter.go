// Package filter narrows a ticket snapshot with an immutable State. The UI
// owns and edits the State; Apply is the only place it is interpreted.
package filter

import (
	"strings"
	"time"

	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"
)

// Facet values accepted by State.
const (
	ResidencyLocal   = "local"
	ResidencyForeign = "foreign"

	SexMale           = "male"
	SexFemale         = "female"
	SexPreferNotToSay = "prefer_not_to_say"

	AgeKids    = "kids"
	AgeTeens   = "teens"
	AgeAdults  = "adults"
	AgeSeniors = "seniors"
)

type State struct {
	From       time.Time      `json:"from"`
	To         time.Time      `json:"to"`
	Search     string         `json:"search"`
	Statuses   []status.Label `json:"statuses"`
	CompanyID  string         `json:"company_id"`
	ProviderID string         `json:"provider_id"`
	Residency  string         `json:"residency"`
	Sex        string         `json:"sex"`
	Age        string         `json:"age"`
}

// WithCompany returns a copy of s scoped to companyID.
func (s State) WithCompany(companyID string) State {
	s.CompanyID = companyID
	return s
}

// Apply returns the tickets matching every set field of s. The input is
// never modified. From is inclusive, To exclusive, both on the ticket start;
// tickets without a valid start fail any date bound.
func Apply(list []tickets.Ticket, s State, now time.Time) []tickets.Ticket {
	statuses := make(map[status.Label]bool, len(s.Statuses))
	for _, l := range s.Statuses {
		statuses[l] = true
	}
	needle := strings.ToLower(strings.TrimSpace(s.Search))

	out := make([]tickets.Ticket, 0, len(list))
	for _, t := range list {
		if !inRange(t, s.From, s.To) {
			continue
		}
		if s.CompanyID != "" && t.CompanyID != s.CompanyID {
			continue
		}
		if s.ProviderID != "" && !hasProvider(t, s.ProviderID) {
			continue
		}
		if s.Residency != "" && !anyAddress(t, residencyCount(s.Residency)) {
			continue
		}
		if s.Sex != "" && !anyAddress(t, sexCount(s.Sex)) {
			continue
		}
		if s.Age != "" && !anyAddress(t, ageCount(s.Age)) {
			continue
		}
		if needle != "" && !matches(t, needle) {
			continue
		}
		if len(statuses) > 0 && !statuses[status.Compute(t, now)] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func inRange(t tickets.Ticket, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if !t.StartDateTime.Valid {
		return false
	}
	start := t.StartDateTime.Time
	if !from.IsZero() && start.Before(from) {
		return false
	}
	if !to.IsZero() && !start.Before(to) {
		return false
	}
	return true
}

func hasProvider(t tickets.Ticket, id string) bool {
	for _, sel := range t.Activities {
		for _, p := range sel.ActivitySelectedProviders {
			if p == id {
				return true
			}
		}
	}
	return false
}

type counter func(tickets.Address) int64

func anyAddress(t tickets.Ticket, c counter) bool {
	if c == nil {
		return false
	}
	for _, a := range t.Address {
		if c(a) > 0 {
			return true
		}
	}
	return false
}

func residencyCount(v string) counter {
	switch v {
	case ResidencyLocal:
		return func(a tickets.Address) int64 { return int64(a.Locals) }
	case ResidencyForeign:
		return func(a tickets.Address) int64 { return int64(a.Foreigns) }
	}
	return nil
}

func sexCount(v string) counter {
	switch v {
	case SexMale:
		return func(a tickets.Address) int64 { return int64(a.Males) }
	case SexFemale:
		return func(a tickets.Address) int64 { return int64(a.Females) }
	case SexPreferNotToSay:
		return func(a tickets.Address) int64 { return int64(a.PreferNotToSay) }
	}
	return nil
}

func ageCount(v string) counter {
	switch v {
	case AgeKids:
		return func(a tickets.Address) int64 { return int64(a.Kids) }
	case AgeTeens:
		return func(a tickets.Address) int64 { return int64(a.Teens) }
	case AgeAdults:
		return func(a tickets.Address) int64 { return int64(a.Adults) }
	case AgeSeniors:
		return func(a tickets.Address) int64 { return int64(a.Seniors) }
	}
	return nil
}

func matches(t tickets.Ticket, needle string) bool {
	fields := []string{t.ID, t.EmployeeID, t.CompanyID}
	for _, a := range t.Address {
		fields = append(fields, a.Country, a.Town)
	}
	fields = append(fields, t.ActivityIDs()...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
