package credit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Consume decides whether account may spend amount generations and, on the
// free tier, debits its balance in memory. The caller persists a dirty
// account. Quota denials are returned in the Decision, never as an error.
//
// Consume is not idempotent: call it exactly once per generation, after the
// content was produced.
func (s *Service) Consume(ctx context.Context, account *domain.Account, amount int) (domain.Decision, error) {
	if account == nil {
		return domain.Decision{}, domain.NewValidationError("account", "required")
	}
	if amount <= 0 {
		return domain.Decision{}, domain.NewValidationError("amount", "must be positive")
	}

	t, err := s.resolveTier(ctx, account)
	if err != nil {
		return domain.Decision{}, err
	}

	switch t := t.(type) {
	case proTier:
		return s.consumePro(ctx, account, t)
	case freeTier:
		return s.consumeFree(ctx, account, t, amount), nil
	default:
		return domain.Decision{}, fmt.Errorf("unknown tier %T", t)
	}
}

func (s *Service) consumePro(ctx context.Context, account *domain.Account, t proTier) (domain.Decision, error) {
	used, err := s.CountGenerationsInPeriod(ctx, account.ID, t.period)
	if err != nil {
		return domain.Decision{}, err
	}

	limit := s.policy.ProMonthlyGenerationLimit
	if used >= limit {
		s.log.InfoContext(ctx, "pro monthly limit reached",
			slog.String("user_id", account.ID.String()),
			slog.String("subscription_id", t.subscription.ID.String()),
			slog.Int("used", used),
			slog.Int("limit", limit),
		)
		return domain.Deny(domain.TierPro, domain.QuotaKindProMonthly, limit), nil
	}

	return domain.Allow(domain.TierPro, 0), nil
}

func (s *Service) consumeFree(ctx context.Context, account *domain.Account, t freeTier, amount int) domain.Decision {
	if t.tokens == nil {
		s.log.DebugContext(ctx, "free tokens not tracked, allowing",
			slog.String("user_id", account.ID.String()),
		)
		return domain.Allow(domain.TierFree, 0)
	}

	if *t.tokens < amount {
		s.log.InfoContext(ctx, "free tier exhausted",
			slog.String("user_id", account.ID.String()),
			slog.Int("free_tokens", *t.tokens),
			slog.Int("amount", amount),
		)
		return domain.Deny(domain.TierFree, domain.QuotaKindFreeTierExhausted, s.policy.FreeGenerationQuota)
	}

	return domain.Allow(domain.TierFree, account.DebitFreeTokens(amount))
}

// CountGenerationsInPeriod returns how many quiz, flashcard and essay
// topics the user created within period, both ends inclusive.
func (s *Service) CountGenerationsInPeriod(ctx context.Context, userID uuid.UUID, period domain.Period) (int, error) {
	counts, err := s.generations.CountInPeriod(ctx, userID, period)
	if err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return counts.Total(), nil
}
