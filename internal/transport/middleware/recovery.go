package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a JSON 500. http.ErrAbortHandler is
// re-raised so net/http can drop the connection quietly.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				}
				if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
					attrs = append(attrs, slog.String("user_id", userID.String()))
				}
				logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
