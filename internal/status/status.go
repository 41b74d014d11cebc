// Package status derives the live display state of a ticket from its
// lifecycle tag, scheduled window and scan logs. Labels are never stored;
// they are recomputed against the caller's clock.
package status

import (
	"time"

	"tourdash/internal/domain/tickets"
)

type Label string

const (
	Queued         Label = "Queued"
	OnTime         Label = "On Time"
	Early          Label = "Early"
	Ongoing        Label = "Ongoing"
	Done           Label = "Done"
	Delayed        Label = "Delayed"
	Invalid        Label = "Invalid"
	Canceled       Label = "Canceled"
	ScheduleChange Label = "Schedule Change"
	Reassigned     Label = "Reassigned"
	Relocate       Label = "Relocate"
	OnEmergency    Label = "On Emergency"
	Unknown        Label = "Unknown"

	// Scanned is returned for a ticket tagged scanned that has no scanned
	// log entry. It is deliberately outside the display set.
	Scanned Label = "scanned"
)

const (
	lateScanMinutes     = 30
	ongoingScanMinutes  = 15
	onTimeScanMinutes   = -5
	earlyScanMinutes    = -15
	earliestScanMinutes = -30

	approachWindow = 15 * time.Minute
	overrunWindow  = 15 * time.Minute
)

var overrides = map[string]Label{
	tickets.TagCanceled:   Canceled,
	tickets.TagReschedule: ScheduleChange,
	tickets.TagReassigned: Reassigned,
	tickets.TagRelocate:   Relocate,
	tickets.TagEmergency:  OnEmergency,
}

var displayOrder = []Label{
	Queued, OnTime, Early, Ongoing, Done, Delayed, Invalid,
	Canceled, ScheduleChange, Reassigned, Relocate, OnEmergency, Unknown,
}

// Labels returns the display labels in display order.
func Labels() []Label {
	return append([]Label(nil), displayOrder...)
}

// IsOverride reports whether l is one of the fixed override labels.
func IsOverride(l Label) bool {
	for _, o := range overrides {
		if o == l {
			return true
		}
	}
	return false
}

// Compute classifies t at now. It is pure and total: invalid timestamps
// resolve to Unknown whenever the deciding rule needs them.
func Compute(t tickets.Ticket, now time.Time) Label {
	switch t.Status {
	case tickets.TagCreated:
		return created(t, now)
	case tickets.TagScanned:
		return scanned(t, now)
	}

	if l, ok := overrides[t.Status]; ok {
		return l
	}

	return unflagged(t, now)
}

// created tickets stay queued until a month after their window closes.
func created(t tickets.Ticket, now time.Time) Label {
	start, end := t.StartDateTime, t.EndDateTime
	if !start.Valid {
		return Unknown
	}
	if now.Before(start.Time) {
		return Queued
	}
	if !end.Valid {
		return Unknown
	}
	if !now.After(end.Time.AddDate(0, 1, 0)) {
		return Queued
	}
	return Invalid
}

func scanned(t tickets.Ticket, now time.Time) Label {
	scan, ok := t.FirstScan()
	if !ok {
		return Scanned
	}
	start, end := t.StartDateTime, t.EndDateTime
	if end.Valid && now.After(end.Time) {
		return Done
	}
	if !start.Valid || !end.Valid || !scan.DateUpdated.Valid {
		return Unknown
	}
	if scan.DateUpdated.Time.After(end.Time) {
		return Done
	}

	diff := scan.DateUpdated.Time.Sub(start.Time).Minutes()
	switch {
	case diff >= ongoingScanMinutes && diff <= lateScanMinutes:
		return Ongoing
	case diff > lateScanMinutes:
		return Delayed
	case diff >= onTimeScanMinutes && diff < ongoingScanMinutes:
		return OnTime
	case diff >= earliestScanMinutes && diff < earlyScanMinutes:
		return Early
	}
	// Offsets in (-15,-5) and below -30 have no bracket.
	return Unknown
}

func unflagged(t tickets.Ticket, now time.Time) Label {
	if _, ok := t.FirstScan(); !ok {
		return Queued
	}
	start, end := t.StartDateTime, t.EndDateTime
	if !start.Valid || !end.Valid {
		return Unknown
	}

	switch {
	case now.Before(start.Time):
		if start.Time.Sub(now) > approachWindow {
			return Queued
		}
		return OnTime
	case !now.After(end.Time):
		return Ongoing
	case now.Sub(end.Time) <= overrunWindow:
		return Done
	default:
		return Delayed
	}
}
