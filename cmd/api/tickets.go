package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tourdash/internal/domain/tickets"
	"tourdash/internal/export"
	"tourdash/internal/params"
	"tourdash/internal/status"

	"github.com/go-chi/chi/v5"
)

type TicketListResponse struct {
	Partial
	Columns    []export.Column   `json:"columns"`
	Rows       []export.Row      `json:"rows"`
	Pagination params.Pagination `json:"pagination"`
}

// ListTickets godoc
//
//	@Summary		List tickets
//	@Description	Filtered, paginated ticket table with live status and severity
//	@Tags			Tickets
//	@Produce		json
//	@Param			from		query		string	false	"Start date (YYYY-MM-DD or RFC3339), inclusive"
//	@Param			to			query		string	false	"End date (YYYY-MM-DD or RFC3339)"
//	@Param			q			query		string	false	"Search text"
//	@Param			status		query		string	false	"Comma separated status labels"
//	@Param			company		query		string	false	"Company id"
//	@Param			provider	query		string	false	"Provider id"
//	@Param			residency	query		string	false	"local or foreign"
//	@Param			sex			query		string	false	"male, female or prefer_not_to_say"
//	@Param			age			query		string	false	"kids, teens, adults or seniors"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	TicketListResponse
//	@Failure		400			{object}	error	"Bad Request"
//	@Failure		401			{object}	error	"Unauthorized"
//	@Failure		500			{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/tickets [get]
func (app *application) listTicketsHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}

	p := params.ParsePagination(r.URL.Query())
	page := params.Slice(s.tickets, &p)
	opts := export.Options{Company: companyScope(r) == ""}

	resp := TicketListResponse{
		Partial:    s.marker(),
		Columns:    export.Columns(opts),
		Rows:       export.Rows(page, s.now, s.lookups.Lookups, s.lookups.Companies),
		Pagination: p,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type TicketDetail struct {
	Ticket   tickets.Ticket `json:"ticket"`
	Status   status.Label   `json:"status"`
	Severity string         `json:"severity"`
}

// GetTicket godoc
//
//	@Summary		Get a ticket
//	@Tags			Tickets
//	@Produce		json
//	@Param			ticketID	path		string	true	"Ticket ID"
//	@Success		200			{object}	TicketDetail
//	@Failure		404			{object}	error	"Not Found"
//	@Failure		500			{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/tickets/{ticketID} [get]
func (app *application) getTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	t, ok := app.visibleTicket(ctx, w, r, chi.URLParam(r, "ticketID"))
	if !ok {
		return
	}

	label := status.Compute(*t, app.clock())
	resp := TicketDetail{Ticket: *t, Status: label, Severity: status.Severity(label)}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type BatchTicketsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=500,dive,ticketid"`
}

type BatchTicketsResponse struct {
	Partial
	Tickets []TicketDetail `json:"tickets"`
}

// BatchTickets godoc
//
//	@Summary		Fetch tickets by id
//	@Description	Ids are deduplicated and read in bounded batches. Tickets from successful batches are returned even if another batch fails.
//	@Tags			Tickets
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		BatchTicketsRequest	true	"Ticket ids"
//	@Success		200		{object}	BatchTicketsResponse
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/tickets/batch [post]
func (app *application) batchTicketsHandler(w http.ResponseWriter, r *http.Request) {
	var payload BatchTicketsRequest
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	list, err := app.store.Tickets.FetchByIDs(ctx, payload.IDs)
	var resp BatchTicketsResponse
	if err != nil {
		if len(list) == 0 {
			app.internalServerError(w, r, err)
			return
		}
		app.logger.Warnw("batch fetch incomplete", "requested", len(payload.IDs), "returned", len(list), "error", err.Error())
		resp.Partial = Partial{Partial: true, Error: err.Error()}
	}

	now := app.clock()
	company := companyScope(r)
	resp.Tickets = make([]TicketDetail, 0, len(list))
	for _, t := range list {
		if company != "" && t.CompanyID != company {
			continue
		}
		label := status.Compute(t, now)
		resp.Tickets = append(resp.Tickets, TicketDetail{Ticket: t, Status: label, Severity: status.Severity(label)})
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteTicket godoc
//
//	@Summary		Delete a ticket
//	@Description	Removes the ticket and drops it from the assigned employee's ticket list
//	@Tags			Tickets
//	@Produce		json
//	@Param			ticketID	path		string	true	"Ticket ID"
//	@Success		200			{object}	tickets.DeleteResult
//	@Failure		404			{object}	error	"Not Found"
//	@Failure		500			{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/tickets/{ticketID} [delete]
func (app *application) deleteTicketHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := chi.URLParam(r, "ticketID")
	if companyScope(r) != "" {
		if _, ok := app.visibleTicket(ctx, w, r, id); !ok {
			return
		}
	}

	result := app.store.Tickets.Delete(ctx, id)
	if !result.Success {
		if result.Error == tickets.ErrNotFound.Error() {
			app.notFoundResponse(w, r, tickets.ErrNotFound)
			return
		}
		app.internalServerError(w, r, errors.New(result.Error))
		return
	}

	app.logger.Infow("ticket deleted", "ticket_id", id, "by", getClaimsFromContext(r).Subject)
	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// visibleTicket loads id and hides tickets of other companies from scoped
// callers.
func (app *application) visibleTicket(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) (*tickets.Ticket, bool) {
	t, err := app.store.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			app.notFoundResponse(w, r, err)
		} else {
			app.internalServerError(w, r, err)
		}
		return nil, false
	}
	if company := companyScope(r); company != "" && t.CompanyID != company {
		app.notFoundResponse(w, r, tickets.ErrNotFound)
		return nil, false
	}
	return t, true
}
