// Package generation implements persistence for generated content topics.
// Each generation kind has its own table with the same shape.
package generation

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Repo provides generation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new generation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func tableFor(kind domain.GenerationKind) (string, error) {
	switch kind {
	case domain.GenerationKindQuiz:
		return "quiz_topics", nil
	case domain.GenerationKindFlashcard:
		return "flashcard_topics", nil
	case domain.GenerationKindEssay:
		return "essay_topics", nil
	}
	return "", domain.NewValidationError("kind", fmt.Sprintf("unknown generation kind %q", kind))
}

// Create inserts a generation into the table of its kind and returns the
// persisted row.
func (r *Repo) Create(ctx context.Context, g *domain.Generation) (*domain.Generation, error) {
	table, err := tableFor(g.Kind)
	if err != nil {
		return nil, err
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "created_by_user_id", "title", "source_url", "created_at").
		Values(g.ID, g.UserID, g.Title, g.SourceURL, g.CreatedAt).
		Suffix("RETURNING id, created_by_user_id, title, source_url, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("generation: build insert: %w", err)
	}

	out := domain.Generation{Kind: g.Kind}
	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&out.ID, &out.UserID, &out.Title, &out.SourceURL, &out.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "generation", g.ID)
	}

	return &out, nil
}

// CountInPeriod counts the user's generations of every kind created inside
// period, both bounds inclusive. Kinds with no rows are reported as 0.
func (r *Repo) CountInPeriod(ctx context.Context, userID uuid.UUID, period domain.Period) (domain.GenerationCounts, error) {
	query, args, err := countQuery(userID, period)
	if err != nil {
		return nil, fmt.Errorf("generation: build count: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "generation", userID)
	}
	defer rows.Close()

	counts := make(domain.GenerationCounts, len(domain.GenerationKinds))
	for _, k := range domain.GenerationKinds {
		counts[k] = 0
	}
	for rows.Next() {
		var (
			kind string
			n    int64
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("generation: scan count: %w", err)
		}
		counts[domain.GenerationKind(kind)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "generation", userID)
	}

	return counts, nil
}

// countQuery builds one UNION ALL statement over the per-kind tables so the
// three counts come from a single snapshot.
func countQuery(userID uuid.UUID, period domain.Period) (string, []any, error) {
	parts := make([]string, 0, len(domain.GenerationKinds))
	var args []any

	for _, kind := range domain.GenerationKinds {
		table, err := tableFor(kind)
		if err != nil {
			return "", nil, err
		}

		part, partArgs, err := sq.Select(fmt.Sprintf("'%s' AS kind", kind), "count(*) AS n").
			From(table).
			Where(sq.And{
				sq.Eq{"created_by_user_id": userID},
				sq.GtOrEq{"created_at": period.Start},
				sq.LtOrEq{"created_at": period.End},
			}).
			ToSql()
		if err != nil {
			return "", nil, err
		}

		parts = append(parts, part)
		args = append(args, partArgs...)
	}

	query, err := sq.Dollar.ReplacePlaceholders(strings.Join(parts, " UNION ALL "))
	if err != nil {
		return "", nil, err
	}
	return query, args, nil
}
