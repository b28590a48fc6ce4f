package usage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Record stores the token usage of one generation. It joins the caller's
// transaction when there is one.
func (s *Service) Record(ctx context.Context, input RecordInput) (*domain.TokenUsage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u := &domain.TokenUsage{
		ID:               uuid.New(),
		UserID:           input.UserID,
		GenerationID:     input.GenerationID,
		Kind:             input.Kind,
		Model:            input.Model,
		PromptTokens:     input.PromptTokens,
		CompletionTokens: input.CompletionTokens,
		CreatedAt:        s.clock.Now().UTC(),
	}
	if err := s.usage.Record(ctx, u); err != nil {
		return nil, fmt.Errorf("usage.Record: %w", err)
	}

	s.log.DebugContext(ctx, "token usage recorded",
		slog.String("user_id", u.UserID.String()),
		slog.String("kind", string(u.Kind)),
		slog.Int("tokens", u.Total()),
	)
	return u, nil
}
