package middleware

import (
	"net/http"

	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
// Must run after Auth.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}
			if !ctxutil.IsAdminCtx(r.Context()) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
