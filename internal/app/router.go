package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/quizforge-backend/internal/auth"
	"github.com/heartmarshall/quizforge-backend/internal/config"
	"github.com/heartmarshall/quizforge-backend/internal/transport/middleware"
	"github.com/heartmarshall/quizforge-backend/internal/transport/rest"
)

type handlers struct {
	health     *rest.HealthHandler
	quota      *rest.QuotaHandler
	generation *rest.GenerationHandler
	admin      *rest.AdminHandler
}

func newRouter(h handlers, jwt *auth.JWTManager, cors config.CORSConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		chimw.RealIP,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cors),
	)

	r.Get("/live", h.health.Live)
	r.Get("/ready", h.health.Ready)
	r.Get("/health", h.health.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwt))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/quota", h.quota.Get)
			r.Post("/generations", h.generation.Create)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/token-usage", h.admin.TokenUsage)
			r.Get("/users/{id}/quota", h.admin.UserQuota)
			r.Put("/users/{id}/role", h.admin.SetRole)
		})
	})

	return r
}
