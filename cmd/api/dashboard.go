package main

import (
	"net/http"
	"strconv"

	"tourdash/internal/status"
	"tourdash/internal/summary"
)

type DashboardResponse struct {
	Partial
	summary.Dashboard
}

// DashboardSummary godoc
//
//	@Summary		Dashboard summary
//	@Description	Status counts, summary tiles, demographic breakdowns and leaderboards for the filtered tickets
//	@Tags			Dashboard
//	@Produce		json
//	@Param			from	query		string	false	"Start date"
//	@Param			to		query		string	false	"End date"
//	@Param			top		query		int		false	"Leaderboard size, default 10"
//	@Success		200		{object}	DashboardResponse
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/dashboard/summary [get]
func (app *application) dashboardSummaryHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}

	opts := summary.Options{DomesticCountry: app.config.domesticCountry}
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			app.badRequestResponse(w, r, errInvalidTop)
			return
		}
		opts.Limit = n
	}

	resp := DashboardResponse{
		Partial:   s.marker(),
		Dashboard: summary.Build(s.tickets, s.now, s.lookups.Lookups, opts),
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type StatusCount struct {
	Label    status.Label `json:"label"`
	Count    int          `json:"count"`
	Severity string       `json:"severity"`
}

type StatusesResponse struct {
	Partial
	Statuses []StatusCount `json:"statuses"`
}

// DashboardStatuses godoc
//
//	@Summary		Status counts
//	@Description	Count of tickets per live status, in display order, with the badge severity of each label
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	StatusesResponse
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/dashboard/statuses [get]
func (app *application) dashboardStatusesHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}

	counts := summary.CountStatuses(s.tickets, s.now)
	resp := StatusesResponse{Partial: s.marker()}
	for _, l := range status.Labels() {
		resp.Statuses = append(resp.Statuses, StatusCount{Label: l, Count: counts[l], Severity: status.Severity(l)})
	}
	if n := counts[status.Scanned]; n > 0 {
		resp.Statuses = append(resp.Statuses, StatusCount{Label: status.Scanned, Count: n, Severity: status.Severity(status.Scanned)})
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type DailyResponse struct {
	Partial
	Points []summary.Point `json:"points"`
}

// DashboardDaily godoc
//
//	@Summary		Daily series
//	@Description	Tickets, pax and expected sale per start day in the configured time zone
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	DailyResponse
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/dashboard/daily [get]
func (app *application) dashboardDailyHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}

	resp := DailyResponse{
		Partial: s.marker(),
		Points:  summary.Daily(s.tickets, app.config.location),
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
