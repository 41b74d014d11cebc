package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourdash/internal/batch"
	"tourdash/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = 5 * time.Second

type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Store interface {
	Resolve(ctx context.Context, ids []string) ([]Provider, error)
}

type Repository struct {
	query     db.DocQuery
	batchSize int
}

func NewRepository(pool *pgxpool.Pool, batchSize int) Store {
	return &Repository{query: db.Docs(pool), batchSize: batchSize}
}

// Resolve looks providers up in id batches, skipping unknown ids. Batch and
// decode failures are joined and returned with the providers that resolved.
func (r *Repository) Resolve(ctx context.Context, ids []string) ([]Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	out := []Provider{}
	var errs []error
	for _, chunk := range batch.Chunk(batch.Dedupe(ids), r.batchSize) {
		docs, err := r.query(ctx, `SELECT id, doc FROM providers WHERE id = ANY($1)`, chunk)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve providers: %w", err))
		}
		for _, d := range docs {
			var p Provider
			if err := json.Unmarshal(d.Body, &p); err != nil {
				errs = append(errs, fmt.Errorf("decode provider %s: %w", d.ID, err))
				continue
			}
			p.ID = d.ID
			out = append(out, p)
		}
	}
	return out, errors.Join(errs...)
}
