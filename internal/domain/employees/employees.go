package employees

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = 5 * time.Second

// Employee is a field staff member who issues and scans tickets.
type Employee struct {
	ID         string   `json:"id"`
	Firstname  string   `json:"firstname"`
	Surname    string   `json:"surname"`
	Contact    string   `json:"contact"`
	EmployeeID string   `json:"employeeId"`
	TicketIDs  []string `json:"ticket_ids"`
	PushToken  string   `json:"-"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.Firstname + " " + e.Surname)
}

type Store interface {
	All(ctx context.Context) (map[string]Employee, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) (map[string]Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id,
		       COALESCE(firstname, ''),
		       COALESCE(surname, ''),
		       COALESCE(contact, ''),
		       COALESCE(employee_code, ''),
		       COALESCE(ticket_ids, '{}'),
		       COALESCE(expo_push_token, '')
		FROM employees`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Employee)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Firstname, &e.Surname, &e.Contact, &e.EmployeeID, &e.TicketIDs, &e.PushToken); err != nil {
			return nil, err
		}
		out[e.ID] = e
	}
	return out, rows.Err()
}
