package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

type quotaService interface {
	QuotaForUser(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error)
}

type userUsageService interface {
	UserUsage(ctx context.Context, userID uuid.UUID, from, to *time.Time) (domain.UsageTotals, error)
}

// QuotaHandler serves the caller's quota status.
type QuotaHandler struct {
	quota quotaService
	usage userUsageService
	log   *slog.Logger
}

// NewQuotaHandler creates a QuotaHandler.
func NewQuotaHandler(quota quotaService, usage userUsageService, logger *slog.Logger) *QuotaHandler {
	return &QuotaHandler{quota: quota, usage: usage, log: logger.With("handler", "quota")}
}

// Get returns the remaining quota and the token usage of the current period.
// GET /api/v1/quota
func (h *QuotaHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	status, err := h.quota.QuotaForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	var from, to *time.Time
	if status.Period != nil {
		from, to = &status.Period.Start, &status.Period.End
	}
	totals, err := h.usage.UserUsage(r.Context(), userID, from, to)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := toQuotaJSON(status)
	usage := toUsageTotalsJSON(totals)
	resp.Usage = &usage
	writeJSON(w, http.StatusOK, resp)
}
