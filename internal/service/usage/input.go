package usage

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// RecordInput describes the tokens one generation consumed.
type RecordInput struct {
	UserID           uuid.UUID
	GenerationID     *uuid.UUID
	Kind             domain.GenerationKind
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Validate validates the record input.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be one of quiz, flashcard, essay"})
	}
	if len(i.Model) > 100 {
		errs = append(errs, domain.FieldError{Field: "model", Message: "too long"})
	}
	if i.PromptTokens < 0 {
		errs = append(errs, domain.FieldError{Field: "prompt_tokens", Message: "must not be negative"})
	}
	if i.CompletionTokens < 0 {
		errs = append(errs, domain.FieldError{Field: "completion_tokens", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SummaryInput selects the report window. Nil bounds take defaults.
type SummaryInput struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
