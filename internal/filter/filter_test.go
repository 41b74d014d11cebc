package filter

import (
	"net/url"
	"testing"
	"time"

	"tourdash/internal/docfield"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"
)

var now = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

func fixture() []tickets.Ticket {
	day := func(d int) docfield.Instant {
		return docfield.At(time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC))
	}
	return []tickets.Ticket{
		{
			ID: "TK-001", Status: tickets.TagCreated, StartDateTime: day(1), EndDateTime: day(1),
			CompanyID: "c1", EmployeeID: "e1",
			Address: []tickets.Address{{Locals: 2, Males: 2, Adults: 2, Country: "Philippines", Town: "El Nido"}},
			Activities: []tickets.ActivitySelection{{ActivitiesAvailed: []string{"island-hop"}, ActivitySelectedProviders: []string{"p1"}}},
		},
		{
			ID: "TK-002", Status: tickets.TagCanceled, StartDateTime: day(5), EndDateTime: day(5),
			CompanyID: "c2", EmployeeID: "e2",
			Address: []tickets.Address{{Foreigns: 1, Females: 1, Seniors: 1, Country: "Japan"}},
		},
		{
			ID: "TK-003", Status: tickets.TagEmergency, CompanyID: "c1",
			Address: []tickets.Address{{Locals: 1, Kids: 1, PreferNotToSay: 1, Country: "Philippines", Town: "Coron"}},
		},
	}
}

func ids(list []tickets.Ticket) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  []string
	}{
		{"empty state keeps all", State{}, []string{"TK-001", "TK-002", "TK-003"}},
		{"company", State{CompanyID: "c1"}, []string{"TK-001", "TK-003"}},
		{"provider", State{ProviderID: "p1"}, []string{"TK-001"}},
		{"foreign residency", State{Residency: ResidencyForeign}, []string{"TK-002"}},
		{"sex", State{Sex: SexPreferNotToSay}, []string{"TK-003"}},
		{"age", State{Age: AgeSeniors}, []string{"TK-002"}},
		{"search town", State{Search: "coron"}, []string{"TK-003"}},
		{"search activity", State{Search: "ISLAND"}, []string{"TK-001"}},
		{"statuses", State{Statuses: []status.Label{status.Canceled, status.OnEmergency}}, []string{"TK-002", "TK-003"}},
		{
			"date range excludes undated",
			State{From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
			[]string{"TK-001"},
		},
		{"unknown facet value matches nothing", State{Age: "toddlers"}, []string{}},
	}
	for _, tc := range cases {
		got := ids(Apply(fixture(), tc.state, now))
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	list := fixture()
	_ = Apply(list, State{CompanyID: "c2"}, now)
	if len(list) != 3 || list[0].ID != "TK-001" {
		t.Fatalf("input was modified: %v", ids(list))
	}
}

func TestWithCompanyCopies(t *testing.T) {
	base := State{Search: "x"}
	scoped := base.WithCompany("c1")
	if base.CompanyID != "" || scoped.CompanyID != "c1" || scoped.Search != "x" {
		t.Fatalf("unexpected states %+v %+v", base, scoped)
	}
}

func TestFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("from", "2024-01-01")
	q.Set("to", "2024-01-05")
	q.Add("status", "On Time,Done")
	q.Add("status", "Canceled")
	q.Set("residency", "local")
	q.Set("q", "  coron ")

	s, err := FromQuery(q, time.UTC)
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	if !s.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", s.From)
	}
	if !s.To.Equal(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only to should include the whole day, got %v", s.To)
	}
	if len(s.Statuses) != 3 || s.Statuses[0] != status.OnTime {
		t.Fatalf("unexpected statuses %v", s.Statuses)
	}
	if s.Search != "coron" || s.Residency != ResidencyLocal {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestFromQueryRejectsBadInput(t *testing.T) {
	bad := []url.Values{
		{"residency": {"martian"}},
		{"status": {"Lost"}},
		{"from": {"01/02/2024"}},
		{"from": {"2024-02-01"}, "to": {"2024-01-01"}},
	}
	for _, q := range bad {
		if _, err := FromQuery(q, time.UTC); err == nil {
			t.Fatalf("expected error for %v", q)
		}
	}

	if _, err := FromQuery(url.Values{"from": {"2024-01-01T08:00:00+08:00"}}, time.UTC); err != nil {
		t.Fatalf("RFC3339 bound should be accepted: %v", err)
	}
}
