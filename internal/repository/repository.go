package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// batchSize keeps multi-row inserts well below the 65535 bind-parameter limit.
const batchSize = 1000

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func exec(ctx context.Context, db DBTX, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return err
}

// chunks splits n rows into [start, end) windows of at most batchSize.
func chunks(n int) [][2]int {
	var out [][2]int
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}
