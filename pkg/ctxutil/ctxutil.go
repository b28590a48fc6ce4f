package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	userRoleKey  ctxKey = "user_role"
	requestIDKey ctxKey = "request_id"
)

// roleAdmin mirrors domain.UserRoleAdmin; pkg must not import internal.
const roleAdmin = "admin"

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the caller's role in the context.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx extracts the caller's role. Returns "" if absent.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsAdminCtx reports whether the context carries an authenticated admin.
func IsAdminCtx(ctx context.Context) bool {
	if _, ok := UserIDFromCtx(ctx); !ok {
		return false
	}
	return UserRoleFromCtx(ctx) == roleAdmin
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
