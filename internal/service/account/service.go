package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// accountRepo defines the account repository interface needed by the account service.
type accountRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Account, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements account administration.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	audit    auditLogger
	tx       txManager
}

// NewService creates a new account service instance.
func NewService(logger *slog.Logger, accounts accountRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "account"),
		accounts: accounts,
		audit:    audit,
		tx:       tx,
	}
}
