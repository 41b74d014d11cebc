package summary

import (
	"math/rand"
	"testing"
	"time"

	"tourdash/internal/docfield"
	"tourdash/internal/domain/activities"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"

	"github.com/shopspring/decimal"
)

var now = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

func money(s string) docfield.Number {
	return docfield.NumberOf(decimal.RequireFromString(s))
}

func sample() []tickets.Ticket {
	start := docfield.At(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	end := docfield.At(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return []tickets.Ticket{
		{
			ID: "t1", Status: tickets.TagCreated, StartDateTime: start, EndDateTime: end,
			Address: []tickets.Address{
				{Locals: 2, Males: 1, Females: 1, Adults: 2, Country: "Philippines", Town: "El Nido"},
				{Foreigns: 1, PreferNotToSay: 1, Seniors: 1, Country: "Japan"},
			},
			TotalPax: 3, TotalExpectedPayment: money("900"), TotalPayment: money("1000.10"),
			TotalExpectedSale: money("300.05"), TotalMarkup: money("10"),
			Activities: []tickets.ActivitySelection{{ActivitiesAvailed: []string{"a1", "a2"}, ActivityNumPax: 3}},
			EmployeeID: "e1",
		},
		{
			ID: "t2", Status: tickets.TagCanceled, StartDateTime: start, EndDateTime: end,
			Address: []tickets.Address{
				{Locals: 4, Males: 2, Females: 2, Kids: 1, Teens: 1, Adults: 2, Country: "Philippines", Town: "Coron"},
				{Locals: 1, Males: 1, Adults: 1, Country: "Philippines", Town: "Coron"},
			},
			TotalPax: 5, TotalExpectedPayment: money("1500"), TotalPayment: money("1200"),
			TotalExpectedSale: money("500"), TotalMarkup: money("20"),
			Activities: []tickets.ActivitySelection{{ActivitiesAvailed: []string{"a1"}, ActivityNumPax: 5}},
			EmployeeID: "e2",
		},
		{
			ID: "t3", Status: tickets.TagEmergency,
			TotalPax: 1, TotalPayment: money("0.20"),
			Address: []tickets.Address{{Foreigns: 1, Females: 1, Adults: 1, Country: "Japan"}},
			EmployeeID: "e2",
		},
	}
}

func lookups() Lookups {
	return Lookups{
		Activities: map[string]activities.Activity{
			"a1": {ID: "a1", Name: "Island Hopping", BasePrice: money("100")},
			"a2": {ID: "a2", Name: "Kayaking", BasePrice: money("50")},
		},
		Employees: map[string]employees.Employee{
			"e1": {ID: "e1", Firstname: "Ana", Surname: "Reyes"},
			"e2": {ID: "e2", Firstname: "Ben", Surname: "Cruz"},
		},
	}
}

func TestEmptyInput(t *testing.T) {
	d := Build(nil, now, Lookups{}, Options{DomesticCountry: "Philippines"})

	if len(d.Statuses) != 0 {
		t.Fatalf("expected empty status map, got %v", d.Statuses)
	}
	if d.Totals.Tickets != 0 || d.Totals.TotalPax != 0 || !d.Totals.Payment.IsZero() || !d.Totals.AvgPax.IsZero() {
		t.Fatalf("expected zero totals, got %+v", d.Totals)
	}
	r := d.Rankings
	for name, list := range map[string][]Entry{
		"countries": r.Countries, "towns": r.Towns, "activities": r.ActivitiesByPax,
		"activity sale": r.ActivitiesBySale, "employee tickets": r.EmployeesByTickets,
		"employee pax": r.EmployeesByPax, "employee sale": r.EmployeesBySale,
		"country sale": r.CountriesBySale, "town sale": r.TownsBySale,
	} {
		if list == nil || len(list) != 0 {
			t.Fatalf("%s: expected empty non-nil ranking, got %v", name, list)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())

	if s.Tickets != 3 || s.TotalPax != 9 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.Locals != 7 || s.Foreigns != 2 {
		t.Fatalf("expected 7 locals and 2 foreigns, got %d/%d", s.Locals, s.Foreigns)
	}
	if s.Males != 4 || s.Females != 4 || s.PreferNotToSay != 1 {
		t.Fatalf("unexpected sex split %d/%d/%d", s.Males, s.Females, s.PreferNotToSay)
	}
	if s.Kids != 1 || s.Teens != 1 || s.Adults != 6 || s.Seniors != 1 {
		t.Fatalf("unexpected ages %+v", s)
	}
	if !s.Payment.Equal(decimal.RequireFromString("2200.30")) {
		t.Fatalf("expected payment 2200.30, got %s", s.Payment)
	}
	if !s.ExpectedSale.Equal(decimal.RequireFromString("800.05")) {
		t.Fatalf("expected sale 800.05, got %s", s.ExpectedSale)
	}
	if !s.AvgPax.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected avg pax 3, got %s", s.AvgPax)
	}
	if !s.AvgMarkup.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected avg markup 10, got %s", s.AvgMarkup)
	}
}

func TestSummarizeIsOrderIndependent(t *testing.T) {
	list := sample()
	want := Summarize(list)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]tickets.Ticket(nil), list...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Summarize(shuffled)
		if !got.Payment.Equal(want.Payment) || !got.ExpectedSale.Equal(want.ExpectedSale) || got.Locals != want.Locals {
			t.Fatalf("order changed the result: %+v vs %+v", got, want)
		}
	}
}

func TestCountStatuses(t *testing.T) {
	counts := CountStatuses(sample(), now)
	if counts[status.Queued] != 1 || counts[status.Canceled] != 1 || counts[status.OnEmergency] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestTopCountryCountsPax(t *testing.T) {
	const n = 25
	list := make([]tickets.Ticket, n)
	for i := range list {
		list[i] = tickets.Ticket{ID: "t", Address: []tickets.Address{{Locals: 1, Country: "PH"}}}
	}
	got := TopCountries(list, DefaultLimit)
	if len(got) != 1 || got[0].Name != "PH" || !got[0].Value.Equal(decimal.NewFromInt(n)) {
		t.Fatalf("expected {PH %d}, got %v", n, got)
	}
}

func TestRankByStableTiesAndLimit(t *testing.T) {
	type row struct {
		k string
		v int64
	}
	rows := []row{{"b", 1}, {"a", 1}, {"c", 5}, {"", 100}, {"d", 1}, {"a", 0}}
	got := RankBy(rows, func(r row) string { return r.k }, func(r row) decimal.Decimal { return decimal.NewFromInt(r.v) }, 3)

	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s (%v)", i, name, got[i].Name, got)
		}
	}

	all := RankBy(rows, func(r row) string { return r.k }, func(r row) decimal.Decimal { return decimal.NewFromInt(r.v) }, 0)
	if len(all) != 4 {
		t.Fatalf("expected no truncation with limit 0, got %v", all)
	}
}

func TestRankings(t *testing.T) {
	r := Rank(sample(), lookups(), Options{DomesticCountry: "philippines"})

	if r.Countries[0].Name != "Philippines" || !r.Countries[0].Value.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected countries %v", r.Countries)
	}
	if len(r.Towns) != 2 || r.Towns[0].Name != "Coron" || !r.Towns[0].Value.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected towns %v", r.Towns)
	}
	if r.ActivitiesByPax[0].Name != "Island Hopping" || !r.ActivitiesByPax[0].Value.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("unexpected activity pax %v", r.ActivitiesByPax)
	}

	// Island Hopping: (1000.10 - 100*3) + (1200 - 100*5) = 1400.10; Kayaking: 1000.10 - 50*3 = 850.10
	if r.ActivitiesBySale[0].Name != "Island Hopping" || !r.ActivitiesBySale[0].Value.Equal(decimal.RequireFromString("1400.10")) {
		t.Fatalf("unexpected activity sale %v", r.ActivitiesBySale)
	}
	if !r.ActivitiesBySale[1].Value.Equal(decimal.RequireFromString("850.10")) {
		t.Fatalf("unexpected kayaking sale %v", r.ActivitiesBySale)
	}

	if r.EmployeesByTickets[0].Name != "Ben Cruz" || !r.EmployeesByTickets[0].Value.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected employee tickets %v", r.EmployeesByTickets)
	}
	if r.EmployeesByPax[0].Name != "Ben Cruz" || !r.EmployeesByPax[0].Value.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("unexpected employee pax %v", r.EmployeesByPax)
	}
	if r.EmployeesBySale[0].Name != "Ben Cruz" || r.EmployeesBySale[1].Name != "Ana Reyes" {
		t.Fatalf("unexpected employee sale %v", r.EmployeesBySale)
	}

	// t2 has two Coron entries but credits its sale once.
	if r.TownsBySale[0].Name != "Coron" || !r.TownsBySale[0].Value.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected town sale %v", r.TownsBySale)
	}
	if r.CountriesBySale[0].Name != "Philippines" || !r.CountriesBySale[0].Value.Equal(decimal.RequireFromString("800.05")) {
		t.Fatalf("unexpected country sale %v", r.CountriesBySale)
	}
}

func TestUnknownLookupsFallBackToIDs(t *testing.T) {
	r := Rank(sample(), Lookups{}, Options{})
	if r.EmployeesByTickets[0].Name != "e2" {
		t.Fatalf("expected raw employee id, got %v", r.EmployeesByTickets)
	}
	if r.ActivitiesByPax[0].Name != "a1" {
		t.Fatalf("expected raw activity id, got %v", r.ActivitiesByPax)
	}
	if len(r.Towns) != 0 {
		t.Fatalf("towns need a domestic country, got %v", r.Towns)
	}
}

func TestBreakdowns(t *testing.T) {
	s := Summarize(sample())
	res := Residency(s)
	if res[0].Value != 7 || res[1].Value != 2 {
		t.Fatalf("unexpected residency %v", res)
	}
	if sex := Sex(s); len(sex) != 3 || sex[2].Value != 1 {
		t.Fatalf("unexpected sex %v", sex)
	}
	if age := Age(s); len(age) != 4 || age[2].Label != "Adults" || age[2].Value != 6 {
		t.Fatalf("unexpected age %v", age)
	}
}

func TestDaily(t *testing.T) {
	list := sample()
	list = append(list, tickets.Ticket{
		ID: "t4", StartDateTime: docfield.At(time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)), TotalPax: 2,
	})
	points := Daily(list, time.UTC)
	if len(points) != 2 {
		t.Fatalf("expected 2 days, got %v", points)
	}
	if points[0].Day != "2023-12-31" || points[1].Day != "2024-01-01" {
		t.Fatalf("expected ascending days, got %v", points)
	}
	if points[1].Tickets != 2 || points[1].Pax != 8 {
		t.Fatalf("unexpected day totals %+v", points[1])
	}

	// 20:00 UTC is already the next day at UTC+8.
	local := Daily(list[3:], time.FixedZone("PHT", 8*3600))
	if local[0].Day != "2024-01-01" {
		t.Fatalf("expected local day, got %v", local)
	}
}
