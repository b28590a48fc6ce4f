// Package usage implements LLM token-usage persistence and aggregation.
package usage

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

// Repo provides token-usage persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new usage repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type totalsRow struct {
	Generations      int64 `db:"generations"`
	PromptTokens     int64 `db:"prompt_tokens"`
	CompletionTokens int64 `db:"completion_tokens"`
}

type userRow struct {
	UserID           uuid.UUID `db:"user_id"`
	Email            string    `db:"email"`
	Generations      int64     `db:"generations"`
	PromptTokens     int64     `db:"prompt_tokens"`
	CompletionTokens int64     `db:"completion_tokens"`
}

var totalsColumns = []string{
	"count(*) AS generations",
	"COALESCE(sum(u.prompt_tokens), 0) AS prompt_tokens",
	"COALESCE(sum(u.completion_tokens), 0) AS completion_tokens",
}

// Record inserts one token-usage row.
func (r *Repo) Record(ctx context.Context, u *domain.TokenUsage) error {
	query, args, err := postgres.Builder().
		Insert("token_usage").
		Columns("id", "user_id", "generation_id", "kind", "model", "prompt_tokens", "completion_tokens", "created_at").
		Values(u.ID, u.UserID, u.GenerationID, string(u.Kind), u.Model, u.PromptTokens, u.CompletionTokens, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("usage: build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "token_usage", u.ID)
	}
	return nil
}

// Totals aggregates usage of all users in [from, to).
func (r *Repo) Totals(ctx context.Context, from, to time.Time) (domain.UsageTotals, error) {
	return r.totals(ctx, window(from, to), "all")
}

// UserTotals aggregates usage of one user in [from, to).
func (r *Repo) UserTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.UsageTotals, error) {
	return r.totals(ctx, append(window(from, to), sq.Eq{"u.user_id": userID}), userID)
}

func (r *Repo) totals(ctx context.Context, where sq.And, key any) (domain.UsageTotals, error) {
	query, args, err := postgres.Builder().
		Select(totalsColumns...).
		From("token_usage u").
		Where(where).
		ToSql()
	if err != nil {
		return domain.UsageTotals{}, fmt.Errorf("usage: build totals: %w", err)
	}

	var row totalsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.UsageTotals{}, postgres.MapError(err, "token_usage", key)
	}
	return toTotals(row), nil
}

// TopUsers returns the users with the highest total token count in
// [from, to), at most limit rows.
func (r *Repo) TopUsers(ctx context.Context, from, to time.Time, limit int) ([]domain.UserUsage, error) {
	query, args, err := postgres.Builder().
		Select(append([]string{"u.user_id", "a.email"}, totalsColumns...)...).
		From("token_usage u").
		Join("accounts a ON a.id = u.user_id").
		Where(window(from, to)).
		GroupBy("u.user_id", "a.email").
		OrderBy("sum(u.prompt_tokens + u.completion_tokens) DESC", "u.user_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("usage: build top users: %w", err)
	}

	var rows []userRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "token_usage", "top")
	}

	out := make([]domain.UserUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.UserUsage{
			UserID:      row.UserID,
			Email:       row.Email,
			UsageTotals: toTotals(totalsRow{
				Generations:      row.Generations,
				PromptTokens:     row.PromptTokens,
				CompletionTokens: row.CompletionTokens,
			}),
		})
	}
	return out, nil
}

func window(from, to time.Time) sq.And {
	return sq.And{
		sq.GtOrEq{"u.created_at": from},
		sq.Lt{"u.created_at": to},
	}
}

func toTotals(row totalsRow) domain.UsageTotals {
	return domain.UsageTotals{
		Generations:      int(row.Generations),
		PromptTokens:     row.PromptTokens,
		CompletionTokens: row.CompletionTokens,
	}
}
