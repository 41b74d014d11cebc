package storage

import (
	"context"
	"fmt"

	"tourdash/internal/domain/activities"
	"tourdash/internal/domain/companies"
	"tourdash/internal/domain/employees"
	"tourdash/internal/domain/providers"
	"tourdash/internal/domain/tickets"
	"tourdash/internal/summary"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type Container struct {
	Tickets    tickets.Store
	Activities activities.Store
	Providers  providers.Store
	Employees  employees.Store
	Companies  companies.Store
}

// NewContainer wires the pgx repositories; batchSize bounds every id batch
// sent to the database.
func NewContainer(db *pgxpool.Pool, batchSize int) *Container {
	return &Container{
		Tickets:    tickets.NewRepository(db, batchSize),
		Activities: activities.NewRepository(db, batchSize),
		Providers:  providers.NewRepository(db, batchSize),
		Employees:  employees.NewRepository(db),
		Companies:  companies.NewRepository(db),
	}
}

// Lookups are the name tables a ticket set needs for display.
type Lookups struct {
	summary.Lookups
	Companies map[string]companies.Company
}

// LoadLookups resolves the activities referenced by list and loads the
// employee and company tables concurrently. Whatever loaded is returned
// with the first error, so callers can fall back to ids.
func (c *Container) LoadLookups(ctx context.Context, list []tickets.Ticket) (Lookups, error) {
	var ids []string
	for _, t := range list {
		ids = append(ids, t.ActivityIDs()...)
	}

	var (
		acts  []activities.Activity
		staff map[string]employees.Employee
		cos   map[string]companies.Company
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if acts, err = c.Activities.Resolve(ctx, ids); err != nil {
			return fmt.Errorf("activities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if staff, err = c.Employees.All(ctx); err != nil {
			return fmt.Errorf("employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cos, err = c.Companies.All(ctx); err != nil {
			return fmt.Errorf("companies: %w", err)
		}
		return nil
	})
	err := g.Wait()

	return Lookups{
		Lookups: summary.Lookups{
			Activities: activities.Index(acts),
			Employees:  staff,
		},
		Companies: cos,
	}, err
}
