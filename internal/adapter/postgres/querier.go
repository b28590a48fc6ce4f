package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is what repositories run statements against: *pgxpool.Pool,
// pgx.Tx or a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromCtx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// InTx reports whether ctx carries a transaction opened by TxManager.
// Row locks taken with SELECT ... FOR UPDATE only hold while this is true.
func InTx(ctx context.Context) bool {
	_, ok := txFromCtx(ctx)
	return ok
}

// QuerierFromCtx picks the transaction carried by ctx, or db when there is
// none, so the same repository method works in and out of RunInTx.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return db
}
