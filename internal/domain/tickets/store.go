package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourdash/internal/batch"
	"tourdash/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

var QueryTimeoutDuration = 10 * time.Second

// maxParallelBatches bounds concurrent id-batch queries.
const maxParallelBatches = 4

type Store interface {
	FetchAll(ctx context.Context) ([]Ticket, error)
	FetchByIDs(ctx context.Context, ids []string) ([]Ticket, error)
	FetchByCompany(ctx context.Context, companyID string) ([]Ticket, error)
	GetByID(ctx context.Context, id string) (*Ticket, error)
	Delete(ctx context.Context, id string) DeleteResult
}

type Repository struct {
	db        *pgxpool.Pool
	query     db.DocQuery
	batchSize int
}

// NewRepository returns a ticket store. batchSize is the id-set ceiling of
// a single FetchByIDs query.
func NewRepository(pool *pgxpool.Pool, batchSize int) Store {
	if batchSize <= 0 {
		batchSize = batch.DefaultSize
	}
	return &Repository{db: pool, query: db.Docs(pool), batchSize: batchSize}
}

func (r *Repository) FetchAll(ctx context.Context) ([]Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.queryDocs(ctx, `SELECT id, doc FROM tickets ORDER BY id`)
}

func (r *Repository) FetchByCompany(ctx context.Context, companyID string) ([]Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.queryDocs(ctx, `SELECT id, doc FROM tickets WHERE company_id = $1 ORDER BY id`, companyID)
}

// FetchByIDs loads tickets in id batches. Rows from batches that succeeded
// are returned even when another batch fails, together with the error.
// Output follows the order of ids; unknown ids are skipped.
func (r *Repository) FetchByIDs(ctx context.Context, ids []string) ([]Ticket, error) {
	ids = batch.Dedupe(ids)
	if len(ids) == 0 {
		return []Ticket{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	chunks := batch.Chunk(ids, r.batchSize)
	results := make([][]Ticket, len(chunks))
	errs := make([]error, len(chunks))

	var g errgroup.Group
	g.SetLimit(maxParallelBatches)
	for i, chunk := range chunks {
		g.Go(func() error {
			rows, err := r.queryDocs(ctx, `SELECT id, doc FROM tickets WHERE id = ANY($1)`, chunk)
			results[i] = rows
			if err != nil {
				errs[i] = fmt.Errorf("fetch tickets batch %d: %w", i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	err := errors.Join(errs...)

	byID := make(map[string]Ticket, len(ids))
	for _, rows := range results {
		for _, t := range rows {
			byID[t.ID] = t
		}
	}
	out := make([]Ticket, 0, len(byID))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM tickets WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t, err := Decode(id, doc)
	if err != nil {
		return nil, fmt.Errorf("decode ticket %s: %w", id, err)
	}
	return &t, nil
}

// Delete removes the ticket and the id from its employee's ticket list in
// one transaction. Failures are reported in the result, never retried.
func (r *Repository) Delete(ctx context.Context, id string) DeleteResult {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if err := r.deleteTx(ctx, id); err != nil {
		return DeleteResult{Success: false, Error: err.Error()}
	}
	return DeleteResult{Success: true}
}

func (r *Repository) deleteTx(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	var employeeID string
	err = tx.QueryRow(ctx,
		`DELETE FROM tickets WHERE id = $1 RETURNING COALESCE(employee_id, '')`, id,
	).Scan(&employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete ticket: %w", err)
	}

	if employeeID != "" {
		_, err = tx.Exec(ctx,
			`UPDATE employees SET ticket_ids = array_remove(ticket_ids, $1) WHERE id = $2`,
			id, employeeID,
		)
		if err != nil {
			return fmt.Errorf("remove ticket from employee %s: %w", employeeID, err)
		}
	}

	return tx.Commit(ctx)
}

// queryDocs decodes every readable document. Documents that fail to decode
// are skipped and reported in the joined error alongside the rows.
func (r *Repository) queryDocs(ctx context.Context, query string, args ...any) ([]Ticket, error) {
	docs, err := r.query(ctx, query, args...)
	errs := []error{err}

	out := make([]Ticket, 0, len(docs))
	for _, d := range docs {
		t, err := Decode(d.ID, d.Body)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode ticket %s: %w", d.ID, err))
			continue
		}
		out = append(out, t)
	}
	return out, errors.Join(errs...)
}
