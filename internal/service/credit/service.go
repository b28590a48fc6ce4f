package credit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateFreeTokens(ctx context.Context, id uuid.UUID, tokens int) error
}

type subscriptionRepo interface {
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

type generationCounter interface {
	CountInPeriod(ctx context.Context, userID uuid.UUID, period domain.Period) (domain.GenerationCounts, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the credit ledger: it gates generations on the caller's quota
// and debits the free balance.
type Service struct {
	accounts      accountRepo
	subscriptions subscriptionRepo
	generations   generationCounter
	audit         auditLogger
	tx            txManager
	policy        domain.CreditPolicy
	clock         clockwork.Clock
	log           *slog.Logger
}

// NewService creates a new credit ledger.
func NewService(
	log *slog.Logger,
	accounts accountRepo,
	subscriptions subscriptionRepo,
	generations generationCounter,
	audit auditLogger,
	tx txManager,
	policy domain.CreditPolicy,
	clock clockwork.Clock,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		accounts:      accounts,
		subscriptions: subscriptions,
		generations:   generations,
		audit:         audit,
		tx:            tx,
		policy:        policy,
		clock:         clock,
		log:           log.With("service", "credit"),
	}
}

// Policy returns the quota values the ledger was built with.
func (s *Service) Policy() domain.CreditPolicy {
	return s.policy
}
