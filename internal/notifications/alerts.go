package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tourdash/internal/docfield"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/status"

	"github.com/9ssi7/exponent"
	"go.uber.org/zap"
)

// TicketSource is the part of tickets.Store the alerter reads.
type TicketSource interface {
	FetchAll(ctx context.Context) ([]tickets.Ticket, error)
}

// EmployeeSource is the part of employees.Store the alerter reads.
type EmployeeSource interface {
	All(ctx context.Context) (map[string]employees.Employee, error)
}

var alertLabels = map[status.Label]bool{
	status.Delayed:     true,
	status.OnEmergency: true,
}

// Alerter pushes a notification to the owning employee the first time a
// ticket of the current day turns Delayed or On Emergency.
type Alerter struct {
	push      PushSender
	tickets   TicketSource
	employees EmployeeSource
	logger    *zap.SugaredLogger

	mu   sync.Mutex
	day  string
	sent map[string]map[status.Label]bool
}

func NewAlerter(push PushSender, ts TicketSource, es EmployeeSource, logger *zap.SugaredLogger) *Alerter {
	return &Alerter{
		push:      push,
		tickets:   ts,
		employees: es,
		logger:    logger,
		sent:      make(map[string]map[status.Label]bool),
	}
}

type pending struct {
	ticketID string
	label    status.Label
}

// Sweep classifies today's tickets at now and publishes the new alerts. It
// returns the number of messages published.
func (a *Alerter) Sweep(ctx context.Context, now time.Time) (int, error) {
	list, err := a.tickets.FetchAll(ctx)
	if err != nil && len(list) == 0 {
		return 0, fmt.Errorf("fetch tickets: %w", err)
	}
	if err != nil {
		a.logger.Warnw("alert sweep running on partial tickets", "error", err.Error())
	}

	staff, err := a.employees.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch employees: %w", err)
	}

	today := now.In(docfield.Location).Format(time.DateOnly)

	a.mu.Lock()
	if a.day != today {
		a.day = today
		a.sent = make(map[string]map[status.Label]bool)
	}
	var msgs []*exponent.Message
	var marks []pending
	for _, t := range list {
		if !t.StartDateTime.Valid || t.StartDateTime.Time.In(docfield.Location).Format(time.DateOnly) != today {
			continue
		}
		label := status.Compute(t, now)
		if !alertLabels[label] || a.sent[t.ID][label] {
			continue
		}
		e, ok := staff[t.EmployeeID]
		if !ok || e.PushToken == "" {
			continue
		}
		msgs = append(msgs, alertMessage(t, label, e.PushToken))
		marks = append(marks, pending{ticketID: t.ID, label: label})
	}
	a.mu.Unlock()

	if len(msgs) == 0 {
		return 0, nil
	}
	if _, err := a.push.Publish(ctx, msgs); err != nil {
		return 0, fmt.Errorf("publish alerts: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range marks {
		if a.sent[p.ticketID] == nil {
			a.sent[p.ticketID] = make(map[status.Label]bool)
		}
		a.sent[p.ticketID][p.label] = true
	}
	return len(msgs), nil
}

func alertMessage(t tickets.Ticket, label status.Label, pushToken string) *exponent.Message {
	var title, body string
	switch label {
	case status.Delayed:
		title = "Tour running late"
		body = fmt.Sprintf("Ticket %s is running behind schedule.", t.ID)
	default:
		title = "Emergency reported"
		body = fmt.Sprintf("Ticket %s has been flagged as an emergency.", t.ID)
	}

	token := exponent.Token(pushToken)
	return &exponent.Message{
		To:    []*exponent.Token{&token},
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":     "ticket",
			"status":   string(label),
			"ticketId": t.ID,
			"screen":   "ticket-details-screen",
		},
	}
}
