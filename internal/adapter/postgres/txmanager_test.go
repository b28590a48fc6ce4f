package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// accountExists checks whether an account row with the given ID exists in the database.
func accountExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("accountExists query: %v", err)
	}
	return exists
}

func insertAccount(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	_, err := q.Exec(ctx,
		`INSERT INTO accounts (id, email, free_tokens) VALUES ($1, $2, 10)`,
		id, id.String()+"@example.com",
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertAccount(ctx, postgres.QuerierFromCtx(ctx, pool), id)
	})
	require.NoError(t, err)
	assert.True(t, accountExists(t, pool, id), "account should exist after commit")
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAccount(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.False(t, accountExists(t, pool, id), "account should not exist after rollback")
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if accountExists(t, pool, id) {
			t.Fatal("expected account NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAccount(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_Mock_CommitAndNested(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, postgres.InTx(ctx))
		// Nested call joins the outer transaction: no second Begin.
		return tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertAccount(ctx, postgres.QuerierFromCtx(ctx, mock), uuid.New())
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Mock_BeginError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	tm := postgres.NewTxManager(mock)
	called := false

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Mock_Rollback(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := postgres.NewTxManager(mock)
	sentinel := errors.New("denied")

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Mock_RetriesTransient(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock, postgres.WithRetries(2, time.Millisecond))
	attempts := 0

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return postgres.MapError(&pgconn.PgError{Code: "40P01"}, "account", uuid.New())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Mock_RetriesExhausted(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	for range 2 {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	tm := postgres.NewTxManager(mock, postgres.WithRetries(1, time.Millisecond))
	attempts := 0

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.True(t, postgres.IsTransient(err))
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Mock_NoRetryOnDomainError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := postgres.NewTxManager(mock, postgres.WithRetries(3, time.Millisecond))
	attempts := 0

	err = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		attempts++
		return domain.ErrConflict
	})

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
