package activities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourdash/internal/batch"
	"tourdash/internal/db"
	"tourdash/internal/docfield"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = 5 * time.Second

// Activity is a bookable tour activity.
type Activity struct {
	ID        string          `json:"id"`
	Name      string          `json:"activity_name"`
	Duration  docfield.Number `json:"activity_duration"`
	BasePrice docfield.Number `json:"activity_base_price"`
	Price     docfield.Number `json:"activity_price"`
}

type Store interface {
	Resolve(ctx context.Context, ids []string) ([]Activity, error)
}

type Repository struct {
	query     db.DocQuery
	batchSize int
}

func NewRepository(pool *pgxpool.Pool, batchSize int) Store {
	return &Repository{query: db.Docs(pool), batchSize: batchSize}
}

// Resolve looks activities up in id batches. Unknown ids are skipped. A
// failed batch or an unreadable document does not stop the others; their
// errors are joined and returned with whatever resolved.
func (r *Repository) Resolve(ctx context.Context, ids []string) ([]Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	out := []Activity{}
	var errs []error
	for _, chunk := range batch.Chunk(batch.Dedupe(ids), r.batchSize) {
		docs, err := r.query(ctx, `SELECT id, doc FROM activities WHERE id = ANY($1)`, chunk)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve activities: %w", err))
		}
		for _, d := range docs {
			var a Activity
			if err := json.Unmarshal(d.Body, &a); err != nil {
				errs = append(errs, fmt.Errorf("decode activity %s: %w", d.ID, err))
				continue
			}
			a.ID = d.ID
			out = append(out, a)
		}
	}
	return out, errors.Join(errs...)
}

// Index keys activities by id.
func Index(list []Activity) map[string]Activity {
	m := make(map[string]Activity, len(list))
	for _, a := range list {
		m[a.ID] = a
	}
	return m
}
