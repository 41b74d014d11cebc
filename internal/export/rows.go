// Package export renders the ticket table shared by the dashboard grid, the
// xlsx download and the pdf download. Rows are computed once and every
// writer reads the same values.
package export

import (
	"strings"
	"time"

	"tourdash/internal/docfield"
	"tourdash/internal/domain/companies"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"
	"tourdash/internal/summary"

	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

type Options struct {
	// Company adds the company name column.
	Company bool
}

type Column struct {
	Key     string  `json:"key"`
	Title   string  `json:"title"`
	Width   float64 `json:"width"`
	Numeric bool    `json:"numeric"`
}

var baseColumns = []Column{
	{Key: "ticket_id", Title: "Ticket ID", Width: 16},
	{Key: "status", Title: "Status", Width: 16},
	{Key: "start", Title: "Start", Width: 18},
	{Key: "end", Title: "End", Width: 18},
	{Key: "employee", Title: "Employee", Width: 22},
	{Key: "activities", Title: "Activities", Width: 32},
	{Key: "pax", Title: "Pax", Width: 8, Numeric: true},
	{Key: "locals", Title: "Locals", Width: 8, Numeric: true},
	{Key: "foreigns", Title: "Foreigns", Width: 9, Numeric: true},
	{Key: "duration", Title: "Duration", Width: 10, Numeric: true},
	{Key: "expected_payment", Title: "Expected Payment", Width: 16, Numeric: true},
	{Key: "payment", Title: "Payment", Width: 14, Numeric: true},
	{Key: "expected_sale", Title: "Expected Sale", Width: 14, Numeric: true},
	{Key: "markup", Title: "Markup", Width: 12, Numeric: true},
}

var companyColumn = Column{Key: "company", Title: "Company", Width: 22}

// Columns returns the table definition. The company column follows the
// employee column when requested.
func Columns(o Options) []Column {
	cols := make([]Column, 0, len(baseColumns)+1)
	for _, c := range baseColumns {
		cols = append(cols, c)
		if o.Company && c.Key == "employee" {
			cols = append(cols, companyColumn)
		}
	}
	return cols
}

type Row struct {
	TicketID        string          `json:"ticket_id"`
	Status          status.Label    `json:"status"`
	Severity        string          `json:"severity"`
	Start           string          `json:"start"`
	End             string          `json:"end"`
	Employee        string          `json:"employee"`
	Company         string          `json:"company,omitempty"`
	Activities      string          `json:"activities"`
	Pax             int64           `json:"pax"`
	Locals          int64           `json:"locals"`
	Foreigns        int64           `json:"foreigns"`
	Duration        decimal.Decimal `json:"duration"`
	ExpectedPayment decimal.Decimal `json:"expected_payment"`
	Payment         decimal.Decimal `json:"payment"`
	ExpectedSale    decimal.Decimal `json:"expected_sale"`
	Markup          decimal.Decimal `json:"markup"`
}

// Rows builds one row per ticket, in input order, classified at now.
func Rows(list []tickets.Ticket, now time.Time, l summary.Lookups, cs map[string]companies.Company) []Row {
	rows := make([]Row, 0, len(list))
	for _, t := range list {
		label := status.Compute(t, now)
		r := Row{
			TicketID:        t.ID,
			Status:          label,
			Severity:        status.Severity(label),
			Start:           formatInstant(t.StartDateTime),
			End:             formatInstant(t.EndDateTime),
			Employee:        l.EmployeeName(t.EmployeeID),
			Company:         companyName(cs, t.CompanyID),
			Activities:      activityNames(t, l),
			Pax:             int64(t.TotalPax),
			Duration:        t.TotalDuration.Decimal,
			ExpectedPayment: t.TotalExpectedPayment.Decimal,
			Payment:         t.TotalPayment.Decimal,
			ExpectedSale:    t.TotalExpectedSale.Decimal,
			Markup:          t.TotalMarkup.Decimal,
		}
		for _, a := range t.Address {
			r.Locals += int64(a.Locals)
			r.Foreigns += int64(a.Foreigns)
		}
		rows = append(rows, r)
	}
	return rows
}

// Value returns the cell for column key. Numeric columns yield numbers.
func (r Row) Value(key string) any {
	switch key {
	case "ticket_id":
		return r.TicketID
	case "status":
		return string(r.Status)
	case "start":
		return r.Start
	case "end":
		return r.End
	case "employee":
		return r.Employee
	case "company":
		return r.Company
	case "activities":
		return r.Activities
	case "pax":
		return r.Pax
	case "locals":
		return r.Locals
	case "foreigns":
		return r.Foreigns
	case "duration":
		return r.Duration.InexactFloat64()
	case "expected_payment":
		return r.ExpectedPayment.InexactFloat64()
	case "payment":
		return r.Payment.InexactFloat64()
	case "expected_sale":
		return r.ExpectedSale.InexactFloat64()
	case "markup":
		return r.Markup.InexactFloat64()
	}
	return ""
}

// Text returns the cell for column key as printed text.
func (r Row) Text(key string) string {
	switch key {
	case "pax", "locals", "foreigns":
		return decimal.NewFromInt(r.Value(key).(int64)).String()
	case "duration":
		return r.Duration.String()
	case "expected_payment":
		return r.ExpectedPayment.StringFixed(2)
	case "payment":
		return r.Payment.StringFixed(2)
	case "expected_sale":
		return r.ExpectedSale.StringFixed(2)
	case "markup":
		return r.Markup.StringFixed(2)
	}
	s, _ := r.Value(key).(string)
	return s
}

// TotalsRow renders t under the numeric columns; the first column carries
// the label.
func TotalsRow(t summary.Totals) Row {
	return Row{
		TicketID:        "TOTAL",
		Pax:             t.TotalPax,
		Locals:          t.Locals,
		Foreigns:        t.Foreigns,
		Duration:        decimal.Zero,
		ExpectedPayment: t.ExpectedPayment,
		Payment:         t.Payment,
		ExpectedSale:    t.ExpectedSale,
		Markup:          t.Markup,
	}
}

func formatInstant(i docfield.Instant) string {
	if !i.Valid {
		return ""
	}
	return i.Time.In(docfield.Location).Format(timeLayout)
}

func companyName(cs map[string]companies.Company, id string) string {
	if c, ok := cs[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

func activityNames(t tickets.Ticket, l summary.Lookups) string {
	ids := t.ActivityIDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, l.ActivityName(id))
	}
	return strings.Join(names, ", ")
}
