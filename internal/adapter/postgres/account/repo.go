// Package account implements the Account repository using PostgreSQL.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

const accountColumns = `id, email, role, free_tokens, created_at, updated_at`

const (
	getByIDSQL          = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	getByIDForUpdateSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	getByEmailSQL       = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	createSQL = `INSERT INTO accounts (id, email, role, free_tokens, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + accountColumns

	// free_tokens only moves down; the guard keeps a stale writer from
	// raising a balance another transaction already debited.
	updateFreeTokensSQL = `UPDATE accounts SET free_tokens = $2, updated_at = $3
WHERE id = $1 AND free_tokens IS NOT NULL AND free_tokens >= $2`

	updateRoleSQL = `UPDATE accounts SET role = $2, updated_at = $3 WHERE id = $1
RETURNING ` + accountColumns
)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return a, nil
}

// GetByIDForUpdate returns an account and locks its row until the surrounding
// transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("account %s: row lock requires a transaction", id)
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, getByIDForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return a, nil
}

// GetByEmail returns an account by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "account", email)
	}
	return a, nil
}

// Create inserts a new account and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created, err := scanAccount(q.QueryRow(ctx, createSQL,
		a.ID, a.Email, string(a.Role), a.FreeTokens, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "account", a.ID)
	}
	return created, nil
}

// UpdateFreeTokens persists a debited free token balance. Returns
// domain.ErrConflict when the stored balance is untracked or already lower.
func (r *Repo) UpdateFreeTokens(ctx context.Context, id uuid.UUID, tokens int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, updateFreeTokensSQL, id, tokens, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "account", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: free_tokens: %w", id, domain.ErrConflict)
	}
	return nil
}

// UpdateRole sets the account role and returns the updated row.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	a, err := scanAccount(q.QueryRow(ctx, updateRoleSQL, id, string(role), time.Now().UTC()))
	if err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a    domain.Account
		role string
	)
	if err := row.Scan(&a.ID, &a.Email, &role, &a.FreeTokens, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Role = domain.UserRole(role)
	return &a, nil
}
