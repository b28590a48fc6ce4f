package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount creates an account with the given free token balance (nil = untracked).
func SeedAccount(t *testing.T, pool *pgxpool.Pool, freeTokens *int) domain.Account {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := domain.Account{
		ID:         uuid.New(),
		Email:      "account-" + uniqueSuffix() + "@example.com",
		Role:       domain.UserRoleUser,
		FreeTokens: freeTokens,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, email, role, free_tokens, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.Email, string(acc.Role), acc.FreeTokens, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount: %v", err)
	}

	return acc
}

// SeedSubscription creates a subscription for userID. Period bounds may be nil.
func SeedSubscription(
	t *testing.T,
	pool *pgxpool.Pool,
	userID uuid.UUID,
	status domain.SubscriptionStatus,
	start, end *time.Time,
	createdAt time.Time,
) domain.Subscription {
	t.Helper()

	sub := domain.Subscription{
		ID:                 uuid.New(),
		UserID:             userID,
		Status:             status,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
		CreatedAt:          createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO subscriptions (id, user_id, status, current_period_start, current_period_end, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sub.ID, sub.UserID, string(sub.Status), sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubscription: %v", err)
	}

	return sub
}

// SeedGenerations inserts n generation rows of the given kind owned by userID,
// all created at createdAt.
func SeedGenerations(
	t *testing.T,
	pool *pgxpool.Pool,
	userID uuid.UUID,
	kind domain.GenerationKind,
	n int,
	createdAt time.Time,
) {
	t.Helper()

	table := kind.String() + "_topics"
	for i := range n {
		_, err := pool.Exec(context.Background(),
			fmt.Sprintf(`INSERT INTO %s (id, created_by_user_id, title, created_at) VALUES ($1, $2, $3, $4)`, table),
			uuid.New(), userID, fmt.Sprintf("%s %d", kind, i), createdAt,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedGenerations %s: %v", kind, err)
		}
	}
}
