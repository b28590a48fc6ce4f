package usage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/quizforge-backend/internal/config"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

type usageRepo interface {
	Record(ctx context.Context, u *domain.TokenUsage) error
	Totals(ctx context.Context, from, to time.Time) (domain.UsageTotals, error)
	UserTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.UsageTotals, error)
	TopUsers(ctx context.Context, from, to time.Time, limit int) ([]domain.UserUsage, error)
}

// Service records LLM token usage and builds usage reports.
type Service struct {
	usage usageRepo
	cfg   config.UsageConfig
	clock clockwork.Clock
	log   *slog.Logger
}

// NewService creates a new usage service.
func NewService(log *slog.Logger, usage usageRepo, cfg config.UsageConfig, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		usage: usage,
		cfg:   cfg,
		clock: clock,
		log:   log.With("service", "usage"),
	}
}
