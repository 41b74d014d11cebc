package tickets

import (
	"encoding/json"
	"errors"

	"tourdash/internal/docfield"
)

var ErrNotFound = errors.New("ticket not found")

// Lifecycle tags stored on the ticket document.
const (
	TagCreated    = "created"
	TagScanned    = "scanned"
	TagCanceled   = "canceled"
	TagReschedule = "reschedule"
	TagReassigned = "reassigned"
	TagRelocate   = "relocate"
	TagEmergency  = "emergency"
)

// Ticket is one booked activity reservation as stored in the document store.
type Ticket struct {
	ID                   string              `json:"id"`
	Status               string              `json:"status"`
	StartDateTime        docfield.Instant    `json:"start_date_time"`
	EndDateTime          docfield.Instant    `json:"end_date_time"`
	ScanLogs             []ScanLog           `json:"scan_logs"`
	Address              []Address           `json:"address"`
	TotalPax             docfield.Count      `json:"total_pax"`
	TotalDuration        docfield.Number     `json:"total_duration"`
	TotalExpectedPayment docfield.Number     `json:"total_expected_payment"`
	TotalPayment         docfield.Number     `json:"total_payment"`
	TotalExpectedSale    docfield.Number     `json:"total_expected_sale"`
	TotalMarkup          docfield.Number     `json:"total_markup"`
	Activities           []ActivitySelection `json:"activities"`
	EmployeeID           string              `json:"employee_id"`
	CompanyID            string              `json:"company_id"`
}

type ScanLog struct {
	Status      string           `json:"status"`
	DateUpdated docfield.Instant `json:"date_updated"`
	UpdatedBy   string           `json:"updated_by"`
}

// Address is one demographic breakdown of the party. Each entry is assumed
// homogeneous for the local/foreign split.
type Address struct {
	Locals         docfield.Count `json:"locals"`
	Foreigns       docfield.Count `json:"foreigns"`
	Males          docfield.Count `json:"males"`
	Females        docfield.Count `json:"females"`
	PreferNotToSay docfield.Count `json:"prefer_not_to_say"`
	Kids           docfield.Count `json:"kids"`
	Teens          docfield.Count `json:"teens"`
	Adults         docfield.Count `json:"adults"`
	Seniors        docfield.Count `json:"seniors"`
	Country        string         `json:"country"`
	Town           string         `json:"town"`
}

// Headcount is the number of people the entry represents.
func (a Address) Headcount() int64 {
	return int64(a.Locals) + int64(a.Foreigns)
}

type ActivitySelection struct {
	ActivitiesAvailed         []string       `json:"activities_availed"`
	ActivityNumPax            docfield.Count `json:"activity_num_pax"`
	ActivityNumUnit           docfield.Count `json:"activity_num_unit"`
	ActivitySelectedProviders []string       `json:"activity_selected_providers"`
}

// FirstScan returns the first log entry whose status is "scanned".
func (t Ticket) FirstScan() (ScanLog, bool) {
	for _, l := range t.ScanLogs {
		if l.Status == TagScanned {
			return l, true
		}
	}
	return ScanLog{}, false
}

// ActivityIDs lists every availed activity id in selection order.
func (t Ticket) ActivityIDs() []string {
	var ids []string
	for _, sel := range t.Activities {
		ids = append(ids, sel.ActivitiesAvailed...)
	}
	return ids
}

// DeleteResult reports the outcome of a ticket removal.
type DeleteResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Decode parses a stored ticket document. Missing collections decode to
// empty slices; id, when non-empty, overrides the document's own id.
func Decode(id string, doc []byte) (Ticket, error) {
	var t Ticket
	if err := json.Unmarshal(doc, &t); err != nil {
		return Ticket{}, err
	}
	if id != "" {
		t.ID = id
	}
	if t.ScanLogs == nil {
		t.ScanLogs = []ScanLog{}
	}
	if t.Address == nil {
		t.Address = []Address{}
	}
	if t.Activities == nil {
		t.Activities = []ActivitySelection{}
	}
	return t, nil
}
