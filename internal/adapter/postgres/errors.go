package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// errTransient marks failures that succeed when the whole transaction is
// replayed.
var errTransient = errors.New("transient transaction failure")

// IsTransient reports whether err is a serialization failure or deadlock,
// either raw from pgx or already passed through MapError.
func IsTransient(err error) bool {
	if errors.Is(err, errTransient) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && transientCode(pgErr.Code)
}

func transientCode(code string) bool {
	return code == "40001" || code == "40P01" // serialization_failure, deadlock_detected
}

// MapError converts pgx/pgconn errors to domain errors. key identifies the
// row (an id, an email) and is only used in the message.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrConflict, errTransient)
		case "55P03": // lock_not_available
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrConflict)
		case "57014": // query_canceled, raised by statement_timeout
			return fmt.Errorf("%s %v: statement timeout: %w", entity, key, context.DeadlineExceeded)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
