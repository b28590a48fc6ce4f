package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	accountsvc "github.com/heartmarshall/quizforge-backend/internal/service/account"
	usagesvc "github.com/heartmarshall/quizforge-backend/internal/service/usage"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

const recentDebitsLimit = 20

type usageSummaryService interface {
	Summary(ctx context.Context, input usagesvc.SummaryInput) (*domain.UsageSummary, error)
}

type subscriptionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error)
}

type auditReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, action domain.AuditAction, limit int) ([]domain.AuditRecord, error)
}

type roleSetter interface {
	SetRole(ctx context.Context, targetID uuid.UUID, role domain.UserRole) (accountsvc.RoleChange, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	usage         usageSummaryService
	quota         quotaService
	subscriptions subscriptionLister
	audit         auditReader
	roles         roleSetter
	log           *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	usage usageSummaryService,
	quota quotaService,
	subscriptions subscriptionLister,
	audit auditReader,
	roles roleSetter,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		usage:         usage,
		quota:         quota,
		subscriptions: subscriptions,
		audit:         audit,
		roles:         roles,
		log:           logger.With("handler", "admin"),
	}
}

// TokenUsage returns aggregated LLM token usage for a window.
// GET /admin/token-usage?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z&limit=20
func (h *AdminHandler) TokenUsage(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	input, err := parseSummaryInput(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	summary, err := h.usage.Summary(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUsageSummaryJSON(summary))
}

// UserQuota returns any account's quota with its subscriptions and latest debits.
// GET /admin/users/{id}/quota
func (h *AdminHandler) UserQuota(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid user id")
		return
	}

	status, err := h.quota.QuotaForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	subs, err := h.subscriptions.ListByUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	debits, err := h.audit.ListByUser(r.Context(), userID, domain.AuditActionDebit, recentDebitsLimit)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := userQuotaJSON{
		UserID:        userID,
		Quota:         toQuotaJSON(status),
		Subscriptions: make([]subscriptionJSON, 0, len(subs)),
		RecentDebits:  make([]debitJSON, 0, len(debits)),
	}
	for _, s := range subs {
		resp.Subscriptions = append(resp.Subscriptions, subscriptionJSON{
			ID:                 s.ID,
			Status:             s.Status.String(),
			CurrentPeriodStart: s.CurrentPeriodStart,
			CurrentPeriodEnd:   s.CurrentPeriodEnd,
			CreatedAt:          s.CreatedAt,
		})
	}
	for _, d := range debits {
		resp.RecentDebits = append(resp.RecentDebits, debitJSON{ID: d.ID, Changes: d.Changes, CreatedAt: d.CreatedAt})
	}

	writeJSON(w, http.StatusOK, resp)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type roleJSON struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Changed bool      `json:"changed"`
}

// SetRole grants or revokes the admin role.
// PUT /admin/users/{id}/role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid user id")
		return
	}

	var req setRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	change, err := h.roles.SetRole(r.Context(), userID, domain.UserRole(req.Role))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, roleJSON{
		UserID:  change.Account.ID,
		Email:   change.Account.Email,
		Role:    change.Account.Role.String(),
		Changed: change.Changed(),
	})
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
		return false
	}
	return true
}

func parseSummaryInput(r *http.Request) (usagesvc.SummaryInput, error) {
	var (
		input usagesvc.SummaryInput
		errs  []domain.FieldError
	)
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &input.From}, {"to", &input.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an RFC 3339 timestamp"})
			continue
		}
		*p.dst = &t
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		input.Limit = n
	}

	if len(errs) > 0 {
		return usagesvc.SummaryInput{}, domain.NewValidationErrors(errs)
	}
	return input, nil
}
