package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// RoleChange is the outcome of SetRole.
type RoleChange struct {
	Account *domain.Account
	OldRole domain.UserRole
}

// Changed reports whether the stored role was actually modified.
func (c RoleChange) Changed() bool {
	return c.OldRole != c.Account.Role
}

// SetRole changes the role of an account (admin only). The update and its
// audit record commit together.
func (s *Service) SetRole(ctx context.Context, targetID uuid.UUID, role domain.UserRole) (RoleChange, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return RoleChange{}, domain.ErrForbidden
	}

	if !role.IsValid() {
		return RoleChange{}, domain.NewValidationError("role", "invalid role: must be 'user' or 'admin'")
	}

	// Prevent admin from demoting themselves.
	callerID, _ := ctxutil.UserIDFromCtx(ctx)
	if callerID == targetID && role == domain.UserRoleUser {
		return RoleChange{}, domain.NewValidationError("role", "cannot demote yourself")
	}

	var change RoleChange
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.accounts.GetByIDForUpdate(ctx, targetID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		change = RoleChange{Account: current, OldRole: current.Role}
		if current.Role == role {
			return nil
		}

		updated, err := s.accounts.UpdateRole(ctx, targetID, role)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		change.Account = updated

		return s.audit.Log(ctx, domain.AuditRecord{
			UserID:     targetID,
			EntityType: domain.EntityTypeAccount,
			EntityID:   &targetID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"role": map[string]any{"old": current.Role.String(), "new": role.String()},
			},
		})
	})
	if err != nil {
		return RoleChange{}, fmt.Errorf("account.SetRole: %w", err)
	}

	if change.Changed() {
		s.log.InfoContext(ctx, "account role updated",
			slog.String("target_user_id", targetID.String()),
			slog.String("old_role", change.OldRole.String()),
			slog.String("new_role", role.String()),
		)
	}

	return change, nil
}

// SetRoleByEmail resolves the account by email and applies SetRole.
func (s *Service) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (RoleChange, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return RoleChange{}, domain.NewValidationError("email", "required")
	}

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return RoleChange{}, fmt.Errorf("account.SetRoleByEmail: %w", err)
	}
	return s.SetRole(ctx, acc.ID, role)
}
