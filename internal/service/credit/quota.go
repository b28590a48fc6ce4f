package credit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// RemainingQuota reports how many generations account has left. Pro
// accounts get max(0, limit-used) for the current billing period; free
// accounts get their token balance, or Unlimited when it is not tracked.
func (s *Service) RemainingQuota(ctx context.Context, account *domain.Account) (domain.QuotaStatus, error) {
	if account == nil {
		return domain.QuotaStatus{}, domain.NewValidationError("account", "required")
	}

	t, err := s.resolveTier(ctx, account)
	if err != nil {
		return domain.QuotaStatus{}, err
	}

	switch t := t.(type) {
	case proTier:
		used, err := s.CountGenerationsInPeriod(ctx, account.ID, t.period)
		if err != nil {
			return domain.QuotaStatus{}, err
		}
		limit := s.policy.ProMonthlyGenerationLimit
		period := t.period
		return domain.QuotaStatus{
			Tier:      domain.TierPro,
			Limit:     limit,
			Used:      used,
			Remaining: max(0, limit-used),
			Period:    &period,
		}, nil

	case freeTier:
		quota := s.policy.FreeGenerationQuota
		if t.tokens == nil {
			return domain.QuotaStatus{Tier: domain.TierFree, Limit: quota, Unlimited: true}, nil
		}
		return domain.QuotaStatus{
			Tier:      domain.TierFree,
			Limit:     quota,
			Used:      max(0, quota-*t.tokens),
			Remaining: *t.tokens,
		}, nil

	default:
		return domain.QuotaStatus{}, fmt.Errorf("unknown tier %T", t)
	}
}

// QuotaForUser loads the account and returns its RemainingQuota.
func (s *Service) QuotaForUser(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return domain.QuotaStatus{}, fmt.Errorf("get account: %w", err)
	}
	return s.RemainingQuota(ctx, account)
}
