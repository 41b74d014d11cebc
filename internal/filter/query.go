package filter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"tourdash/internal/status"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout     = time.DateOnly
	dateTimeLayout = time.RFC3339
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("statuslabel", func(fl validator.FieldLevel) bool {
		v := status.Label(fl.Field().String())
		for _, l := range status.Labels() {
			if l == v {
				return true
			}
		}
		return v == status.Scanned
	})
}

// Query is the raw query-string form of a State.
type Query struct {
	From       string   `validate:"omitempty,datetime=2006-01-02|datetime=2006-01-02T15:04:05Z07:00"`
	To         string   `validate:"omitempty,datetime=2006-01-02|datetime=2006-01-02T15:04:05Z07:00"`
	Search     string   `validate:"max=100"`
	Statuses   []string `validate:"dive,statuslabel"`
	CompanyID  string   `validate:"max=64"`
	ProviderID string   `validate:"max=64"`
	Residency  string   `validate:"omitempty,oneof=local foreign"`
	Sex        string   `validate:"omitempty,oneof=male female prefer_not_to_say"`
	Age        string   `validate:"omitempty,oneof=kids teens adults seniors"`
}

// FromQuery parses and validates ?from=&to=&q=&status=&company=&provider=
// &residency=&sex=&age=. Date-only bounds are read in loc; a date-only "to"
// includes that whole day.
func FromQuery(q url.Values, loc *time.Location) (State, error) {
	if loc == nil {
		loc = time.UTC
	}

	raw := Query{
		From:       strings.TrimSpace(q.Get("from")),
		To:         strings.TrimSpace(q.Get("to")),
		Search:     strings.TrimSpace(q.Get("q")),
		Statuses:   splitList(q["status"]),
		CompanyID:  strings.TrimSpace(q.Get("company")),
		ProviderID: strings.TrimSpace(q.Get("provider")),
		Residency:  strings.TrimSpace(q.Get("residency")),
		Sex:        strings.TrimSpace(q.Get("sex")),
		Age:        strings.TrimSpace(q.Get("age")),
	}
	if err := validate.Struct(raw); err != nil {
		return State{}, fmt.Errorf("invalid filter: %w", err)
	}

	s := State{
		Search:     raw.Search,
		CompanyID:  raw.CompanyID,
		ProviderID: raw.ProviderID,
		Residency:  raw.Residency,
		Sex:        raw.Sex,
		Age:        raw.Age,
	}
	for _, v := range raw.Statuses {
		s.Statuses = append(s.Statuses, status.Label(v))
	}

	var err error
	if s.From, err = parseBound(raw.From, loc, false); err != nil {
		return State{}, err
	}
	if s.To, err = parseBound(raw.To, loc, true); err != nil {
		return State{}, err
	}
	if !s.From.IsZero() && !s.To.IsZero() && s.To.Before(s.From) {
		return State{}, fmt.Errorf("invalid filter: to is before from")
	}
	return s, nil
}

func parseBound(v string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dateLayout, v, loc); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1)
		}
		return t, nil
	}
	t, err := time.Parse(dateTimeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid filter date %q: %w", v, err)
	}
	return t, nil
}

// splitList accepts repeated and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
