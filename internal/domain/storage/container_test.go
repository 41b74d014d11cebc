package storage

import (
	"context"
	"errors"
	"testing"

	"tourdash/internal/domain/activities"
	"tourdash/internal/domain/companies"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/tickets"
)

type fakeActivities struct{ got []string }

func (f *fakeActivities) Resolve(_ context.Context, ids []string) ([]activities.Activity, error) {
	f.got = ids
	return []activities.Activity{{ID: "a1", Name: "Kayak"}}, nil
}

type fakeEmployees struct{}

func (fakeEmployees) All(context.Context) (map[string]employees.Employee, error) {
	return map[string]employees.Employee{"e1": {ID: "e1", Firstname: "Lea"}}, nil
}

type brokenCompanies struct{}

func (brokenCompanies) All(context.Context) (map[string]companies.Company, error) {
	return nil, errors.New("connection reset")
}

func TestLoadLookupsKeepsPartialResults(t *testing.T) {
	acts := &fakeActivities{}
	c := &Container{Activities: acts, Employees: fakeEmployees{}, Companies: brokenCompanies{}}

	list := []tickets.Ticket{{
		Activities: []tickets.ActivitySelection{{ActivitiesAvailed: []string{"a1", "a2"}}},
	}}
	l, err := c.LoadLookups(context.Background(), list)
	if err == nil {
		t.Fatalf("expected companies error")
	}
	if len(acts.got) != 2 {
		t.Fatalf("expected activity ids to be resolved, got %v", acts.got)
	}
	if l.ActivityName("a1") != "Kayak" || l.EmployeeName("e1") != "Lea" {
		t.Fatalf("expected loaded tables to survive the error")
	}
	if l.ActivityName("a2") != "a2" {
		t.Fatalf("expected id fallback")
	}
}
