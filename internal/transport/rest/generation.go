package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/internal/service/credit"
	usagesvc "github.com/heartmarshall/quizforge-backend/internal/service/usage"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

// generationCost is what one finished generation consumes.
const generationCost = 1

type chargeService interface {
	Charge(ctx context.Context, userID uuid.UUID, amount int, persist credit.PersistFunc) (domain.Decision, error)
}

type generationStore interface {
	Create(ctx context.Context, g *domain.Generation) (*domain.Generation, error)
}

type usageRecorder interface {
	Record(ctx context.Context, input usagesvc.RecordInput) (*domain.TokenUsage, error)
}

// GenerationHandler charges and stores finished generations.
type GenerationHandler struct {
	ledger      chargeService
	generations generationStore
	usage       usageRecorder
	clock       clockwork.Clock
	log         *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(
	ledger chargeService,
	generations generationStore,
	usage usageRecorder,
	clock clockwork.Clock,
	logger *slog.Logger,
) *GenerationHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GenerationHandler{
		ledger:      ledger,
		generations: generations,
		usage:       usage,
		clock:       clock,
		log:         logger.With("handler", "generation"),
	}
}

type createGenerationRequest struct {
	Kind             string  `json:"kind"`
	Title            string  `json:"title"`
	SourceURL        *string `json:"source_url"`
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
}

func (req createGenerationRequest) validate() error {
	var errs []domain.FieldError

	if !domain.GenerationKind(req.Kind).IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be one of quiz, flashcard, essay"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if req.SourceURL != nil && len(*req.SourceURL) > 2048 {
		errs = append(errs, domain.FieldError{Field: "source_url", Message: "too long"})
	}
	if req.PromptTokens < 0 || req.CompletionTokens < 0 {
		errs = append(errs, domain.FieldError{Field: "tokens", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (req createGenerationRequest) hasUsage() bool {
	return req.Model != "" || req.PromptTokens > 0 || req.CompletionTokens > 0
}

// Create charges the caller for a finished generation and stores it.
// Responds 402 when the caller's quota is used up.
// POST /api/v1/generations
func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req createGenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if err := req.validate(); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	gen := &domain.Generation{
		ID:        uuid.New(),
		Kind:      domain.GenerationKind(req.Kind),
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		SourceURL: req.SourceURL,
		CreatedAt: h.clock.Now().UTC(),
	}

	var created *domain.Generation
	decision, err := h.ledger.Charge(r.Context(), userID, generationCost, func(ctx context.Context) error {
		var err error
		created, err = h.generations.Create(ctx, gen)
		if err != nil {
			return fmt.Errorf("create generation: %w", err)
		}
		if !req.hasUsage() {
			return nil
		}
		_, err = h.usage.Record(ctx, usagesvc.RecordInput{
			UserID:           userID,
			GenerationID:     &created.ID,
			Kind:             created.Kind,
			Model:            req.Model,
			PromptTokens:     req.PromptTokens,
			CompletionTokens: req.CompletionTokens,
		})
		return err
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if !decision.Allowed {
		writeDomainError(w, r, h.log, decision.Denial.Err())
		return
	}

	writeJSON(w, http.StatusCreated, chargeJSON{
		Generation: toGenerationJSON(created),
		Tier:       decision.Tier.String(),
		Debited:    decision.Debited,
	})
}
