package auth

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Identity is the caller described by a validated access token.
type Identity struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// IsAdmin reports whether the caller may use admin endpoints.
func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}
