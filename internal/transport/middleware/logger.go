package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// probePaths are polled by the orchestrator every few seconds and are only
// logged at debug level.
var probePaths = map[string]struct{}{
	"/live":  {},
	"/ready": {},
}

// Logger logs one "http.request" line per request with the matched route,
// status, response size, duration and the request and user ids.
// 5xx is logged as error and 402 as warn so quota denials stand out.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					attrs = append(attrs, slog.String("route", pattern))
				}
			}
			if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				attrs = append(attrs, slog.String("user_id", userID.String()))
			}

			logger.LogAttrs(r.Context(), requestLevel(r.URL.Path, status), "http.request", attrs...)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status == http.StatusPaymentRequired:
		return slog.LevelWarn
	}
	if _, ok := probePaths[path]; ok {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
