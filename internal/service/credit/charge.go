package credit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// PersistFunc stores the generation that is being charged for. It runs in
// the charge transaction, after the quota check passed.
type PersistFunc func(ctx context.Context) error

// Charge runs Consume for userID inside a transaction that holds the
// account's row lock, so concurrent charges on one account serialize.
// When allowed, persist is called and a debited balance is written back
// together with an audit record. A denial leaves nothing written.
func (s *Service) Charge(ctx context.Context, userID uuid.UUID, amount int, persist PersistFunc) (domain.Decision, error) {
	var (
		decision  domain.Decision
		remaining *int
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		account, err := s.accounts.GetByIDForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		var before *int
		if account.FreeTokens != nil {
			v := *account.FreeTokens
			before = &v
		}

		decision, err = s.Consume(txCtx, account, amount)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return nil
		}

		if persist != nil {
			if err := persist(txCtx); err != nil {
				return fmt.Errorf("persist generation: %w", err)
			}
		}

		if !account.IsDirty() {
			return nil
		}

		if err := s.accounts.UpdateFreeTokens(txCtx, account.ID, *account.FreeTokens); err != nil {
			return fmt.Errorf("update free tokens: %w", err)
		}
		account.MarkClean()
		remaining = account.FreeTokens

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     account.ID,
			EntityType: domain.EntityTypeAccount,
			EntityID:   &account.ID,
			Action:     domain.AuditActionDebit,
			Changes: map[string]any{
				"free_tokens": map[string]any{"old": *before, "new": *account.FreeTokens},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Decision{}, fmt.Errorf("credit.Charge: %w", err)
	}

	if remaining != nil {
		s.log.InfoContext(ctx, "free tokens debited",
			slog.String("user_id", userID.String()),
			slog.Int("debited", decision.Debited),
			slog.Int("remaining", *remaining),
		)
	}

	return decision, nil
}
