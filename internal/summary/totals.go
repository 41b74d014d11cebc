package summary

import (
	"time"

	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"

	"github.com/shopspring/decimal"
)

// Totals are the summary tile figures for a ticket set. Money is summed in
// decimal so the result does not depend on ticket order.
type Totals struct {
	Tickets int `json:"tickets"`

	Locals         int64 `json:"locals"`
	Foreigns       int64 `json:"foreigns"`
	Males          int64 `json:"males"`
	Females        int64 `json:"females"`
	PreferNotToSay int64 `json:"prefer_not_to_say"`
	Kids           int64 `json:"kids"`
	Teens          int64 `json:"teens"`
	Adults         int64 `json:"adults"`
	Seniors        int64 `json:"seniors"`

	TotalPax        int64           `json:"total_pax"`
	ExpectedPayment decimal.Decimal `json:"total_expected_payment"`
	Payment         decimal.Decimal `json:"total_payment"`
	ExpectedSale    decimal.Decimal `json:"total_expected_sale"`
	Markup          decimal.Decimal `json:"total_markup"`

	AvgPax          decimal.Decimal `json:"avg_pax"`
	AvgPayment      decimal.Decimal `json:"avg_payment"`
	AvgExpectedSale decimal.Decimal `json:"avg_expected_sale"`
	AvgMarkup       decimal.Decimal `json:"avg_markup"`
}

// CountStatuses tallies the live label of every ticket at now.
func CountStatuses(list []tickets.Ticket, now time.Time) map[status.Label]int {
	counts := make(map[status.Label]int)
	for _, t := range list {
		counts[status.Compute(t, now)]++
	}
	return counts
}

// Summarize sums demographics over every address entry and money over the
// ticket-level fields. Averages are derived once at the end.
func Summarize(list []tickets.Ticket) Totals {
	s := Totals{
		Tickets:         len(list),
		ExpectedPayment: decimal.Zero,
		Payment:         decimal.Zero,
		ExpectedSale:    decimal.Zero,
		Markup:          decimal.Zero,
	}

	for _, t := range list {
		for _, a := range t.Address {
			s.Locals += int64(a.Locals)
			s.Foreigns += int64(a.Foreigns)
			s.Males += int64(a.Males)
			s.Females += int64(a.Females)
			s.PreferNotToSay += int64(a.PreferNotToSay)
			s.Kids += int64(a.Kids)
			s.Teens += int64(a.Teens)
			s.Adults += int64(a.Adults)
			s.Seniors += int64(a.Seniors)
		}
		s.TotalPax += int64(t.TotalPax)
		s.ExpectedPayment = s.ExpectedPayment.Add(t.TotalExpectedPayment.Decimal)
		s.Payment = s.Payment.Add(t.TotalPayment.Decimal)
		s.ExpectedSale = s.ExpectedSale.Add(t.TotalExpectedSale.Decimal)
		s.Markup = s.Markup.Add(t.TotalMarkup.Decimal)
	}

	s.AvgPax = average(decimal.NewFromInt(s.TotalPax), s.Tickets)
	s.AvgPayment = average(s.Payment, s.Tickets)
	s.AvgExpectedSale = average(s.ExpectedSale, s.Tickets)
	s.AvgMarkup = average(s.Markup, s.Tickets)
	return s
}

func average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

func Residency(t Totals) []Slice {
	return []Slice{
		{Label: "Locals", Value: t.Locals},
		{Label: "Foreigns", Value: t.Foreigns},
	}
}

func Sex(t Totals) []Slice {
	return []Slice{
		{Label: "Male", Value: t.Males},
		{Label: "Female", Value: t.Females},
		{Label: "Prefer not to say", Value: t.PreferNotToSay},
	}
}

func Age(t Totals) []Slice {
	return []Slice{
		{Label: "Kids", Value: t.Kids},
		{Label: "Teens", Value: t.Teens},
		{Label: "Adults", Value: t.Adults},
		{Label: "Seniors", Value: t.Seniors},
	}
}

// Point is one day of the line chart.
type Point struct {
	Day          string          `json:"day"`
	Tickets      int             `json:"tickets"`
	Pax          int64           `json:"pax"`
	ExpectedSale decimal.Decimal `json:"expected_sale"`
}

// Daily buckets tickets by the local calendar day of their start. Tickets
// without a valid start are left out.
func Daily(list []tickets.Ticket, loc *time.Location) []Point {
	if loc == nil {
		loc = time.UTC
	}
	index := make(map[string]int)
	points := []Point{}
	for _, t := range list {
		if !t.StartDateTime.Valid {
			continue
		}
		day := t.StartDateTime.Time.In(loc).Format(time.DateOnly)
		i, ok := index[day]
		if !ok {
			i = len(points)
			index[day] = i
			points = append(points, Point{Day: day, ExpectedSale: decimal.Zero})
		}
		points[i].Tickets++
		points[i].Pax += int64(t.TotalPax)
		points[i].ExpectedSale = points[i].ExpectedSale.Add(t.TotalExpectedSale.Decimal)
	}
	sortPoints(points)
	return points
}
