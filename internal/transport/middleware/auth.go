package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/quizforge-backend/internal/auth"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Identity, error)
}

// Auth resolves the bearer token into a user id and role on the request
// context. Requests without a token pass through anonymously; handlers
// decide whether that is allowed.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			id, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			ctx = ctxutil.WithUserRole(ctx, id.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
