// Package subscription implements read access to billing subscriptions.
// Rows are written by the billing integration; this service only reads them.
package subscription

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Repo provides subscription lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new subscription repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type subscriptionRow struct {
	ID                 uuid.UUID  `db:"id"`
	UserID             uuid.UUID  `db:"user_id"`
	Status             string     `db:"status"`
	CurrentPeriodStart *time.Time `db:"current_period_start"`
	CurrentPeriodEnd   *time.Time `db:"current_period_end"`
	CreatedAt          time.Time  `db:"created_at"`
}

var columns = []string{"id", "user_id", "status", "current_period_start", "current_period_end", "created_at"}

// GetActiveByUser returns the user's active subscription. When several rows
// are active the most recently created one wins (ties broken by id).
// Returns domain.ErrNotFound when the user has none.
func (r *Repo) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("subscriptions").
		Where(sq.Eq{"user_id": userID, "status": string(domain.SubscriptionStatusActive)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("subscription: build query: %w", err)
	}

	var rows []subscriptionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "subscription", userID)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("subscription %s: %w", userID, domain.ErrNotFound)
	}

	return toDomain(rows[0]), nil
}

// ListByUser returns every subscription of the user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("subscriptions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("subscription: build query: %w", err)
	}

	var rows []subscriptionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "subscription", userID)
	}

	subs := make([]domain.Subscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, *toDomain(row))
	}
	return subs, nil
}

func toDomain(row subscriptionRow) *domain.Subscription {
	return &domain.Subscription{
		ID:                 row.ID,
		UserID:             row.UserID,
		Status:             domain.SubscriptionStatus(row.Status),
		CurrentPeriodStart: row.CurrentPeriodStart,
		CurrentPeriodEnd:   row.CurrentPeriodEnd,
		CreatedAt:          row.CreatedAt,
	}
}
