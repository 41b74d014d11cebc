package companies

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = 5 * time.Second

type Company struct {
	Name string `json:"name"`
}

type Store interface {
	All(ctx context.Context) (map[string]Company, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) (map[string]Company, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(doc->>'name', '') FROM companies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Company)
	for rows.Next() {
		var id string
		var c Company
		if err := rows.Scan(&id, &c.Name); err != nil {
			return nil, err
		}
		out[id] = c
	}
	return out, rows.Err()
}
