package usage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// Summary returns total usage and the heaviest users in [from, to) (admin only).
func (s *Service) Summary(ctx context.Context, input SummaryInput) (*domain.UsageSummary, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	from, to, err := s.window(input.From, input.To)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DefaultTop
	}
	if limit < 1 || limit > s.cfg.MaxTop {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", s.cfg.MaxTop))
	}

	summary := &domain.UsageSummary{From: from, To: to}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.usage.Totals(gctx, from, to)
		if err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		summary.Totals = totals
		return nil
	})
	g.Go(func() error {
		top, err := s.usage.TopUsers(gctx, from, to, limit)
		if err != nil {
			return fmt.Errorf("top users: %w", err)
		}
		summary.TopUsers = top
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("usage.Summary: %w", err)
	}

	s.log.InfoContext(ctx, "usage summary built",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("generations", summary.Totals.Generations),
		slog.Int("top_users", len(summary.TopUsers)),
	)
	return summary, nil
}

// UserUsage returns one user's usage totals in [from, to).
func (s *Service) UserUsage(ctx context.Context, userID uuid.UUID, from, to *time.Time) (domain.UsageTotals, error) {
	start, end, err := s.window(from, to)
	if err != nil {
		return domain.UsageTotals{}, err
	}

	totals, err := s.usage.UserTotals(ctx, userID, start, end)
	if err != nil {
		return domain.UsageTotals{}, fmt.Errorf("usage.UserUsage: %w", err)
	}
	return totals, nil
}

func (s *Service) window(from, to *time.Time) (time.Time, time.Time, error) {
	end := s.clock.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.Add(-s.cfg.DefaultWindow)
	if from != nil {
		start = *from
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.NewValidationError("from", "must be before to")
	}
	return start, end, nil
}
