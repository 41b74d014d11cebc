// Package reports builds the previous day's ticket report on a cron
// schedule, archives the spreadsheet and mails it to the configured
// recipients.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"tourdash/internal/domain/storage"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/export"
	"tourdash/internal/filter"
	"tourdash/internal/mailer"
	"tourdash/internal/status"
	"tourdash/internal/summary"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type TicketSource interface {
	FetchAll(ctx context.Context) ([]tickets.Ticket, error)
}

type LookupLoader interface {
	LoadLookups(ctx context.Context, list []tickets.Ticket) (storage.Lookups, error)
}

type Config struct {
	Schedule        string
	Recipients      []string
	DomesticCountry string
	Location        *time.Location
}

// Reporter renders daily reports. Archiver and Mailer are optional.
type Reporter struct {
	Tickets  TicketSource
	Lookups  LookupLoader
	Archiver Archiver
	Mailer   mailer.Client
	Config   Config
	Logger   *zap.SugaredLogger
}

type StatusCount struct {
	Label status.Label
	Count int
}

// Result is the rendered report; it is also the mail template data.
type Result struct {
	Day        string
	Dashboard  summary.Dashboard
	Statuses   []StatusCount
	XLSX       []byte
	ArchiveURL string
}

// Run builds the report for the calendar day before now.
func (r *Reporter) Run(ctx context.Context, now time.Time) (Result, error) {
	loc := r.location()
	local := now.In(loc)
	to := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	from := to.AddDate(0, 0, -1)

	all, err := r.Tickets.FetchAll(ctx)
	if err != nil {
		if len(all) == 0 {
			return Result{}, fmt.Errorf("fetch tickets: %w", err)
		}
		r.Logger.Warnw("report running on partial tickets", "error", err.Error())
	}
	list := filter.Apply(all, filter.State{From: from, To: to}, now)

	lookups, err := r.Lookups.LoadLookups(ctx, list)
	if err != nil {
		r.Logger.Warnw("report lookups incomplete", "error", err.Error())
	}

	dash := summary.Build(list, now, lookups.Lookups, summary.Options{DomesticCountry: r.Config.DomesticCountry})
	res := Result{
		Day:       from.Format(time.DateOnly),
		Dashboard: dash,
	}
	for _, l := range status.Labels() {
		if n := dash.Statuses[l]; n > 0 {
			res.Statuses = append(res.Statuses, StatusCount{Label: l, Count: n})
		}
	}

	var buf bytes.Buffer
	cols := export.Columns(export.Options{Company: true})
	rows := export.Rows(list, now, lookups.Lookups, lookups.Companies)
	if err := export.WriteXLSX(&buf, cols, rows, export.TotalsRow(dash.Totals)); err != nil {
		return Result{}, fmt.Errorf("render xlsx: %w", err)
	}
	res.XLSX = buf.Bytes()

	if r.Archiver != nil {
		publicID := fmt.Sprintf("tickets-%s-%s", res.Day, uuid.NewString())
		url, err := r.Archiver.Archive(ctx, publicID, bytes.NewReader(res.XLSX))
		if err != nil {
			r.Logger.Errorw("report archive failed", "day", res.Day, "error", err.Error())
		} else {
			res.ArchiveURL = url
		}
	}

	if r.Mailer != nil && len(r.Config.Recipients) > 0 {
		attachment := mailer.Attachment{Filename: "tickets-" + res.Day + ".xlsx", Data: res.XLSX}
		if err := r.Mailer.Send(mailer.DailyReportTemplate, r.Config.Recipients, res, attachment); err != nil {
			r.Logger.Errorw("report mail failed", "day", res.Day, "error", err.Error())
		}
	}

	return res, nil
}

// Start schedules Run with the 5-field cron expression in Config.Schedule
// until ctx is done. An empty schedule disables the job.
func (r *Reporter) Start(ctx context.Context) error {
	spec := strings.TrimSpace(r.Config.Schedule)
	if spec == "" {
		r.Logger.Infow("daily report disabled")
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}

	go func() {
		for {
			now := time.Now().In(r.location())
			next := sched.Next(now)
			r.Logger.Infow("next daily report", "at", next.Format(time.RFC3339))

			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			res, err := r.Run(ctx, time.Now())
			if err != nil {
				r.Logger.Errorw("daily report failed", "error", err.Error())
				continue
			}
			r.Logger.Infow("daily report sent", "day", res.Day, "tickets", res.Dashboard.Totals.Tickets, "archive", res.ArchiveURL)
		}
	}()
	return nil
}

func (r *Reporter) location() *time.Location {
	if r.Config.Location != nil {
		return r.Config.Location
	}
	return time.UTC
}

// ParseRecipients splits a comma separated address list.
func ParseRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
