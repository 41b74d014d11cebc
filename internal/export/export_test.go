package export

import (
	"bytes"
	"testing"
	"time"

	"tourdash/internal/docfield"
	"tourdash/internal/domain/activities"
	"tourdash/internal/domain/companies"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"
	"tourdash/internal/summary"

	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sample() ([]tickets.Ticket, summary.Lookups, map[string]companies.Company) {
	list := []tickets.Ticket{
		{
			ID:                   "TK-100",
			Status:               tickets.TagCanceled,
			StartDateTime:        docfield.At(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)),
			EndDateTime:          docfield.At(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
			EmployeeID:           "e1",
			CompanyID:            "c1",
			TotalPax:             3,
			TotalPayment:         docfield.NumberFromFloat(1500.5),
			TotalExpectedPayment: docfield.NumberFromFloat(1600),
			Address:              []tickets.Address{{Locals: 2, Foreigns: 1}, {Locals: 1}},
			Activities:           []tickets.ActivitySelection{{ActivitiesAvailed: []string{"a1", "a2"}}},
		},
		{ID: "TK-101", Status: "mystery", CompanyID: "c9"},
	}
	l := summary.Lookups{
		Activities: map[string]activities.Activity{"a1": {ID: "a1", Name: "Island Hopping"}},
		Employees:  map[string]employees.Employee{"e1": {ID: "e1", Firstname: "Ana", Surname: "Cruz"}},
	}
	cs := map[string]companies.Company{"c1": {Name: "Palawan Tours"}}
	return list, l, cs
}

func TestColumns(t *testing.T) {
	if got := len(Columns(Options{})); got != len(baseColumns) {
		t.Fatalf("expected %d columns, got %d", len(baseColumns), got)
	}
	cols := Columns(Options{Company: true})
	if len(cols) != len(baseColumns)+1 {
		t.Fatalf("expected company column to be added, got %d columns", len(cols))
	}
	if cols[4].Key != "employee" || cols[5].Key != "company" {
		t.Fatalf("expected company after employee, got %s, %s", cols[4].Key, cols[5].Key)
	}
}

func TestRows(t *testing.T) {
	list, l, cs := sample()
	rows := Rows(list, now, l, cs)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	r := rows[0]
	if r.Status != status.Canceled || r.Severity != status.SeveritySecondary {
		t.Fatalf("unexpected status %q / %q", r.Status, r.Severity)
	}
	if r.Employee != "Ana Cruz" || r.Company != "Palawan Tours" {
		t.Fatalf("unexpected names %q / %q", r.Employee, r.Company)
	}
	if r.Activities != "Island Hopping, a2" {
		t.Fatalf("expected lookup with id fallback, got %q", r.Activities)
	}
	if r.Locals != 3 || r.Foreigns != 1 || r.Pax != 3 {
		t.Fatalf("unexpected counts %+v", r)
	}
	if r.Start != "2024-03-01 08:00" {
		t.Fatalf("unexpected start %q", r.Start)
	}
	if r.Text("payment") != "1500.50" {
		t.Fatalf("expected fixed money text, got %q", r.Text("payment"))
	}

	if rows[1].Status != status.Queued || rows[1].Start != "" || rows[1].Company != "c9" {
		t.Fatalf("unexpected fallback row %+v", rows[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	list, l, cs := sample()
	cols := Columns(Options{Company: true})
	rows := Rows(list, now, l, cs)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, cols, rows, TotalsRow(summary.Summarize(list))); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected header, 2 rows and totals, got %d lines", len(got))
	}
	if got[0][0] != "Ticket ID" || got[0][5] != "Company" {
		t.Fatalf("unexpected header %v", got[0])
	}
	if got[1][0] != "TK-100" || got[1][1] != "Canceled" {
		t.Fatalf("unexpected first row %v", got[1])
	}
	if got[3][0] != "TOTAL" {
		t.Fatalf("expected totals row, got %v", got[3])
	}
}

func TestWriteXLSXReturnsCellErrors(t *testing.T) {
	cols := []Column{{Key: "ticket_id", Title: "Ticket ID", Width: 300}}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, cols, nil, Row{TicketID: "TOTAL"}); err == nil {
		t.Fatalf("expected column width error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written on error, got %d bytes", buf.Len())
	}
}

func TestWritePDF(t *testing.T) {
	list, l, cs := sample()
	cols := Columns(Options{})

	var many []Row
	for i := 0; i < 80; i++ {
		many = append(many, Rows(list, now, l, cs)...)
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, "Tickets", cols, many, TotalsRow(summary.Summarize(list))); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf output")
	}
}

func TestScaleWidths(t *testing.T) {
	got := scaleWidths([]Column{{Width: 1}, {Width: 3}}, 100)
	if got[0] != 25 || got[1] != 75 {
		t.Fatalf("expected [25 75], got %v", got)
	}
	got = scaleWidths([]Column{{}, {}}, 10)
	if got[0] != 5 {
		t.Fatalf("expected even split, got %v", got)
	}
}
