package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// beginner starts transactions. Satisfied by *pgxpool.Pool and pgxmock.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager runs callbacks inside a transaction carried in the context.
// A RunInTx call inside another RunInTx callback joins the outer transaction.
type TxManager struct {
	db      beginner
	retries int
	backoff time.Duration
}

// TxOption configures a TxManager.
type TxOption func(*TxManager)

// WithRetries replays the whole callback up to n more times when the
// transaction fails with a serialization failure or deadlock. Each attempt
// waits backoff times the attempt number.
func WithRetries(n int, backoff time.Duration) TxOption {
	return func(m *TxManager) {
		m.retries = n
		m.backoff = backoff
	}
}

// NewTxManager creates a TxManager. Without options a failed transaction is
// returned to the caller as is.
func NewTxManager(db beginner, opts ...TxOption) *TxManager {
	m := &TxManager{db: db}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunInTx executes fn within a Read Committed transaction. It commits when
// fn returns nil, rolls back on error and rolls back then re-panics on panic.
// fn may run more than once when retries are configured, so it must not
// have side effects outside the transaction.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || attempt >= m.retries || !IsTransient(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(m.backoff * time.Duration(attempt+1)):
		}
	}
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
