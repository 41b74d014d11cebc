package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Doc is one stored document row before decoding.
type Doc struct {
	ID   string
	Body []byte
}

// DocQuery runs a query selecting (id, doc) and returns the raw rows. Rows
// scanned before a failure are returned with the error.
type DocQuery func(ctx context.Context, query string, args ...any) ([]Doc, error)

// Docs returns a DocQuery backed by pool.
func Docs(pool *pgxpool.Pool) DocQuery {
	return func(ctx context.Context, query string, args ...any) ([]Doc, error) {
		rows, err := pool.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out := []Doc{}
		for rows.Next() {
			var d Doc
			if err := rows.Scan(&d.ID, &d.Body); err != nil {
				return out, err
			}
			out = append(out, d)
		}
		return out, rows.Err()
	}
}
