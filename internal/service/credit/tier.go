package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// tier is the account mode resolved once per ledger call.
type tier interface {
	kind() domain.TierKind
}

type freeTier struct {
	tokens *int
}

func (freeTier) kind() domain.TierKind { return domain.TierFree }

type proTier struct {
	subscription *domain.Subscription
	period       domain.Period
}

func (proTier) kind() domain.TierKind { return domain.TierPro }

func (s *Service) resolveTier(ctx context.Context, account *domain.Account) (tier, error) {
	sub, err := s.subscriptions.GetActiveByUser(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return freeTier{tokens: account.FreeTokens}, nil
		}
		return nil, fmt.Errorf("get active subscription: %w", err)
	}
	if !sub.IsActive() {
		return freeTier{tokens: account.FreeTokens}, nil
	}

	return proTier{
		subscription: sub,
		period:       ResolvePeriod(sub, s.clock.Now(), s.policy),
	}, nil
}
