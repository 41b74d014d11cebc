package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tourdash/internal/domain/storage"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/filter"
)

const snapshotTimeout = 15 * time.Second

// snapshot is one filtered read of the ticket set, classified at now.
type snapshot struct {
	now     time.Time
	state   filter.State
	tickets []tickets.Ticket
	lookups storage.Lookups
	// partial is set when some reads failed but data is still shown.
	partial error
}

// Partial is the degraded-data marker embedded in dashboard responses.
type Partial struct {
	Partial bool   `json:"partial"`
	Error   string `json:"error,omitempty"`
}

func (s *snapshot) marker() Partial {
	if s.partial == nil {
		return Partial{}
	}
	return Partial{Partial: true, Error: s.partial.Error()}
}

// loadSnapshot parses the filters, reads the tickets visible to the caller
// and resolves their lookups. It writes the error response itself and
// returns nil when the request cannot continue.
func (app *application) loadSnapshot(w http.ResponseWriter, r *http.Request) *snapshot {
	state, err := filter.FromQuery(r.URL.Query(), app.config.location)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil
	}
	if company := companyScope(r); company != "" {
		state = state.WithCompany(company)
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	s := &snapshot{now: app.clock(), state: state}

	all, err := app.fetchVisible(ctx, r)
	if err != nil {
		if len(all) == 0 {
			app.internalServerError(w, r, err)
			return nil
		}
		app.logger.Warnw("ticket fetch incomplete", "path", r.URL.Path, "error", err.Error())
		s.partial = err
	}
	s.tickets = filter.Apply(all, state, s.now)

	s.lookups, err = app.store.LoadLookups(ctx, s.tickets)
	if err != nil {
		app.logger.Warnw("lookups incomplete", "path", r.URL.Path, "error", err.Error())
		s.partial = errors.Join(s.partial, err)
	}
	return s
}

func (app *application) fetchVisible(ctx context.Context, r *http.Request) ([]tickets.Ticket, error) {
	if company := companyScope(r); company != "" {
		return app.store.Tickets.FetchByCompany(ctx, company)
	}
	return app.store.Tickets.FetchAll(ctx)
}
