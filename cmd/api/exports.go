package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tourdash/internal/export"
	"tourdash/internal/summary"
)

var errInvalidTop = errors.New("top must be between 1 and 100")

// table renders the filtered snapshot as export rows. The company column is
// on for unscoped callers that ask for it.
func (app *application) table(r *http.Request, s *snapshot) ([]export.Column, []export.Row, export.Row) {
	withCompany, _ := strconv.ParseBool(r.URL.Query().Get("company"))
	opts := export.Options{Company: withCompany && companyScope(r) == ""}

	cols := export.Columns(opts)
	rows := export.Rows(s.tickets, s.now, s.lookups.Lookups, s.lookups.Companies)
	return cols, rows, export.TotalsRow(summary.Summarize(s.tickets))
}

// ExportXLSX godoc
//
//	@Summary		Export tickets as xlsx
//	@Tags			Exports
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			company	query	bool	false	"Add the company column"
//	@Success		200
//	@Failure		400	{object}	error	"Bad Request"
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/exports/tickets.xlsx [get]
func (app *application) exportXLSXHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}
	cols, rows, totals := app.table(r, s)

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, cols, rows, totals); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.attachment(w, s, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportPDF godoc
//
//	@Summary		Export tickets as pdf
//	@Tags			Exports
//	@Produce		application/pdf
//	@Param			company	query	bool	false	"Add the company column"
//	@Success		200
//	@Failure		400	{object}	error	"Bad Request"
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/exports/tickets.pdf [get]
func (app *application) exportPDFHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadSnapshot(w, r)
	if s == nil {
		return
	}
	cols, rows, totals := app.table(r, s)

	title := "Tickets " + s.now.In(app.config.location).Format("2006-01-02 15:04")
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, title, cols, rows, totals); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.attachment(w, s, "pdf", "application/pdf", buf.Bytes())
}

func (app *application) attachment(w http.ResponseWriter, s *snapshot, ext, contentType string, body []byte) {
	name := fmt.Sprintf("tickets-%s.%s", s.now.In(app.config.location).Format("20060102-1504"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if s.partial != nil {
		w.Header().Set("X-Partial-Data", "true")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		app.logger.Warnw("export write failed", "file", name, "error", err.Error())
	}
}
