// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Log inserts an audit record. Runs inside the caller's transaction when
// there is one, so a rolled-back debit leaves no audit trail.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("audit_record marshal changes: %w", err)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query, args, err := postgres.Builder().
		Insert("audit_log").
		Columns("id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at").
		Values(record.ID, record.UserID, string(record.EntityType), record.EntityID,
			string(record.Action), changesJSON, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("audit_record: build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

// ListByUser returns the user's most recent audit records of the given
// action, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, action domain.AuditAction, limit int) ([]domain.AuditRecord, error) {
	query, args, err := postgres.Builder().
		Select("id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at").
		From("audit_log").
		Where(sq.Eq{"user_id": userID, "action": string(action)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("audit_record: build select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "audit_record", userID)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var (
			rec        domain.AuditRecord
			entityType string
			action     string
			changes    []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &entityType, &rec.EntityID, &action, &changes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit_record: scan: %w", err)
		}
		rec.EntityType = domain.EntityType(entityType)
		rec.Action = domain.AuditAction(action)

		// changes: JSONB -> map[string]any
		if len(changes) > 0 {
			rec.Changes = make(map[string]any)
			if err := json.Unmarshal(changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("audit_record %s unmarshal changes: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "audit_record", userID)
	}

	return records, nil
}
