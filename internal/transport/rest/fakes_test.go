package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	accountsvc "github.com/heartmarshall/quizforge-backend/internal/service/account"
	"github.com/heartmarshall/quizforge-backend/internal/service/credit"
	usagesvc "github.com/heartmarshall/quizforge-backend/internal/service/usage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type ledgerFake struct {
	decision domain.Decision
	status   domain.QuotaStatus
	err      error
	// runPersist calls the persist hook before returning an allowed decision.
	runPersist bool

	charged []uuid.UUID
}

func (f *ledgerFake) Charge(ctx context.Context, userID uuid.UUID, amount int, persist credit.PersistFunc) (domain.Decision, error) {
	f.charged = append(f.charged, userID)
	if f.err != nil {
		return domain.Decision{}, f.err
	}
	if f.decision.Allowed && f.runPersist {
		if err := persist(ctx); err != nil {
			return domain.Decision{}, err
		}
	}
	return f.decision, nil
}

func (f *ledgerFake) QuotaForUser(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	return f.status, f.err
}

type generationStoreFake struct {
	created []*domain.Generation
	err     error
}

func (f *generationStoreFake) Create(ctx context.Context, g *domain.Generation) (*domain.Generation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, g)
	return g, nil
}

type usageFake struct {
	recorded []usagesvc.RecordInput
	summary  *domain.UsageSummary
	totals   domain.UsageTotals
	err      error

	summaryInput *usagesvc.SummaryInput
	from, to     *time.Time
}

func (f *usageFake) Record(ctx context.Context, input usagesvc.RecordInput) (*domain.TokenUsage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recorded = append(f.recorded, input)
	return &domain.TokenUsage{ID: uuid.New(), UserID: input.UserID}, nil
}

func (f *usageFake) UserUsage(ctx context.Context, userID uuid.UUID, from, to *time.Time) (domain.UsageTotals, error) {
	f.from, f.to = from, to
	return f.totals, f.err
}

func (f *usageFake) Summary(ctx context.Context, input usagesvc.SummaryInput) (*domain.UsageSummary, error) {
	f.summaryInput = &input
	return f.summary, f.err
}

type subscriptionListerFake struct {
	subs []domain.Subscription
}

func (f *subscriptionListerFake) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	return f.subs, nil
}

type auditReaderFake struct {
	records []domain.AuditRecord
	action  domain.AuditAction
}

func (f *auditReaderFake) ListByUser(ctx context.Context, userID uuid.UUID, action domain.AuditAction, limit int) ([]domain.AuditRecord, error) {
	f.action = action
	return f.records, nil
}

type chargeFunc struct {
	fn func(ctx context.Context, persist func(context.Context) error) (domain.Decision, error)
}

func (c *chargeFunc) Charge(ctx context.Context, userID uuid.UUID, amount int, persist credit.PersistFunc) (domain.Decision, error) {
	return c.fn(ctx, persist)
}

// storeSpy fails the insert when it runs outside the charge callback.
type storeSpy struct {
	inner  *generationStoreFake
	during *bool
}

func (s *storeSpy) Create(ctx context.Context, g *domain.Generation) (*domain.Generation, error) {
	if !*s.during {
		return nil, errors.New("insert outside charge")
	}
	return s.inner.Create(ctx, g)
}

type roleSetterFake struct {
	change accountsvc.RoleChange
	err    error

	target uuid.UUID
	role   domain.UserRole
}

func (f *roleSetterFake) SetRole(ctx context.Context, targetID uuid.UUID, role domain.UserRole) (accountsvc.RoleChange, error) {
	f.target, f.role = targetID, role
	if f.err != nil {
		return accountsvc.RoleChange{}, f.err
	}
	return f.change, nil
}
