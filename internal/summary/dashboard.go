// Package summary reduces a filtered ticket set into the dashboard's
// status counts, summary tiles, chart breakdowns and leaderboards. Every
// function is pure over (tickets, now, lookups).
package summary

import (
	"slices"
	"strings"
	"time"

	"tourdash/internal/domain/activities"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"

	"github.com/shopspring/decimal"
)

// Lookups resolve ids to display names. Missing entries fall back to the id.
type Lookups struct {
	Activities map[string]activities.Activity
	Employees  map[string]employees.Employee
}

func (l Lookups) ActivityName(id string) string {
	if a, ok := l.Activities[id]; ok && a.Name != "" {
		return a.Name
	}
	return id
}

func (l Lookups) EmployeeName(id string) string {
	if e, ok := l.Employees[id]; ok && e.FullName() != "" {
		return e.FullName()
	}
	return id
}

func (l Lookups) basePrice(activityID string) decimal.Decimal {
	if a, ok := l.Activities[activityID]; ok {
		return a.BasePrice.Decimal
	}
	return decimal.Zero
}

type Options struct {
	Limit           int
	DomesticCountry string
}

func (o Options) limit() int {
	if o.Limit == 0 {
		return DefaultLimit
	}
	return o.Limit
}

type Rankings struct {
	Countries          []Entry `json:"countries"`
	Towns              []Entry `json:"towns"`
	ActivitiesByPax    []Entry `json:"activities_by_pax"`
	ActivitiesBySale   []Entry `json:"activities_by_sale"`
	EmployeesByTickets []Entry `json:"employees_by_tickets"`
	EmployeesByPax     []Entry `json:"employees_by_pax"`
	EmployeesBySale    []Entry `json:"employees_by_sale"`
	CountriesBySale    []Entry `json:"countries_by_sale"`
	TownsBySale        []Entry `json:"towns_by_sale"`
}

type Dashboard struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Statuses    map[status.Label]int `json:"statuses"`
	Totals      Totals               `json:"totals"`
	Residency   []Slice              `json:"residency"`
	Sex         []Slice              `json:"sex"`
	Age         []Slice              `json:"age"`
	Rankings    Rankings             `json:"rankings"`
}

// Build runs the whole pipeline over one snapshot of tickets.
func Build(list []tickets.Ticket, now time.Time, l Lookups, o Options) Dashboard {
	totals := Summarize(list)
	return Dashboard{
		GeneratedAt: now,
		Statuses:    CountStatuses(list, now),
		Totals:      totals,
		Residency:   Residency(totals),
		Sex:         Sex(totals),
		Age:         Age(totals),
		Rankings:    Rank(list, l, o),
	}
}

func Rank(list []tickets.Ticket, l Lookups, o Options) Rankings {
	n := o.limit()
	return Rankings{
		Countries:          TopCountries(list, n),
		Towns:              TopTowns(list, o.DomesticCountry, n),
		ActivitiesByPax:    TopActivitiesByPax(list, l, n),
		ActivitiesBySale:   TopActivitiesBySale(list, l, n),
		EmployeesByTickets: TopEmployeesByTickets(list, l, n),
		EmployeesByPax:     TopEmployeesByPax(list, l, n),
		EmployeesBySale:    TopEmployeesBySale(list, l, n),
		CountriesBySale:    TopCountriesBySale(list, n),
		TownsBySale:        TopTownsBySale(list, o.DomesticCountry, n),
	}
}

// TopCountries ranks countries by the headcount of their address entries.
func TopCountries(list []tickets.Ticket, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		for _, a := range t.Address {
			cs = append(cs, contribution{key: strings.TrimSpace(a.Country), value: decimal.NewFromInt(a.Headcount())})
		}
	}
	return rankContributions(cs, limit)
}

// TopTowns ranks towns of the domestic country by headcount.
func TopTowns(list []tickets.Ticket, country string, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		for _, a := range t.Address {
			if !sameCountry(a.Country, country) {
				continue
			}
			cs = append(cs, contribution{key: strings.TrimSpace(a.Town), value: decimal.NewFromInt(a.Headcount())})
		}
	}
	return rankContributions(cs, limit)
}

// TopActivitiesByPax ranks activities by the pax of the selections that
// availed them.
func TopActivitiesByPax(list []tickets.Ticket, l Lookups, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		for _, sel := range t.Activities {
			pax := decimal.NewFromInt(int64(sel.ActivityNumPax))
			for _, id := range sel.ActivitiesAvailed {
				cs = append(cs, contribution{key: id, value: pax})
			}
		}
	}
	return renamed(rankContributions(cs, limit), l.ActivityName)
}

// TopActivitiesBySale ranks activities by ticket payment minus base price
// times selection pax. The ticket payment is counted again for every
// activity on the ticket, so this is a rough profit proxy.
func TopActivitiesBySale(list []tickets.Ticket, l Lookups, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		for _, sel := range t.Activities {
			pax := decimal.NewFromInt(int64(sel.ActivityNumPax))
			for _, id := range sel.ActivitiesAvailed {
				sale := t.TotalPayment.Sub(l.basePrice(id).Mul(pax))
				cs = append(cs, contribution{key: id, value: sale})
			}
		}
	}
	return renamed(rankContributions(cs, limit), l.ActivityName)
}

func TopEmployeesByTickets(list []tickets.Ticket, l Lookups, limit int) []Entry {
	one := decimal.NewFromInt(1)
	return renamed(RankBy(list, employeeKey, func(tickets.Ticket) decimal.Decimal { return one }, limit), l.EmployeeName)
}

func TopEmployeesByPax(list []tickets.Ticket, l Lookups, limit int) []Entry {
	return renamed(RankBy(list, employeeKey, func(t tickets.Ticket) decimal.Decimal {
		return decimal.NewFromInt(int64(t.TotalPax))
	}, limit), l.EmployeeName)
}

func TopEmployeesBySale(list []tickets.Ticket, l Lookups, limit int) []Entry {
	return renamed(RankBy(list, employeeKey, expectedSale, limit), l.EmployeeName)
}

// TopCountriesBySale credits each ticket's expected sale once to every
// distinct country in its party.
func TopCountriesBySale(list []tickets.Ticket, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		for _, c := range distinct(t.Address, func(a tickets.Address) string { return a.Country }) {
			cs = append(cs, contribution{key: c, value: t.TotalExpectedSale.Decimal})
		}
	}
	return rankContributions(cs, limit)
}

// TopTownsBySale credits each ticket's expected sale once to every distinct
// domestic town in its party.
func TopTownsBySale(list []tickets.Ticket, country string, limit int) []Entry {
	var cs []contribution
	for _, t := range list {
		towns := distinct(t.Address, func(a tickets.Address) string {
			if !sameCountry(a.Country, country) {
				return ""
			}
			return a.Town
		})
		for _, town := range towns {
			cs = append(cs, contribution{key: town, value: t.TotalExpectedSale.Decimal})
		}
	}
	return rankContributions(cs, limit)
}

func employeeKey(t tickets.Ticket) string { return t.EmployeeID }

func expectedSale(t tickets.Ticket) decimal.Decimal { return t.TotalExpectedSale.Decimal }

func sameCountry(a, b string) bool {
	return b != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func distinct(addrs []tickets.Address, key func(tickets.Address) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range addrs {
		k := strings.TrimSpace(key(a))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func sortPoints(points []Point) {
	slices.SortFunc(points, func(a, b Point) int {
		return strings.Compare(a.Day, b.Day)
	})
}
