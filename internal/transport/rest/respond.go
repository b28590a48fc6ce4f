package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Limit   *int             `json:"limit,omitempty"`
	Fields  []fieldErrorJSON `json:"fields,omitempty"`
}

type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeQuotaExceeded renders a quota denial as 402 Payment Required.
func writeQuotaExceeded(w http.ResponseWriter, q domain.QuotaExceeded) {
	limit := q.Limit
	writeJSON(w, http.StatusPaymentRequired, errorResponse{
		Code:    q.Kind.String(),
		Message: q.Message(),
		Limit:   &limit,
	})
}

// writeDomainError maps service errors to HTTP status codes. Unknown errors
// are logged and hidden behind a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve *domain.ValidationError
		qe *domain.QuotaError
	)
	switch {
	case errors.As(err, &qe):
		writeQuotaExceeded(w, qe.Quota)
	case errors.As(err, &ve):
		fields := make([]fieldErrorJSON, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			fields = append(fields, fieldErrorJSON{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "VALIDATION", Message: ve.Error(), Fields: fields})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "conflict, retry the request")
	case errors.Is(err, context.DeadlineExceeded):
		log.WarnContext(r.Context(), "request timed out",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusServiceUnavailable, "TIMEOUT", "request timed out, retry later")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}
