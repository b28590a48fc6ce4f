package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenUsage records LLM token consumption for one generation.
type TokenUsage struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	GenerationID     *uuid.UUID
	Kind             GenerationKind
	Model            string
	PromptTokens     int
	CompletionTokens int
	CreatedAt        time.Time
}

// Total returns prompt plus completion tokens.
func (u TokenUsage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}

// UsageTotals aggregates token usage over a window.
type UsageTotals struct {
	Generations      int
	PromptTokens     int64
	CompletionTokens int64
}

// TotalTokens returns prompt plus completion tokens.
func (t UsageTotals) TotalTokens() int64 {
	return t.PromptTokens + t.CompletionTokens
}

// UserUsage is one row of the per-user usage ranking.
type UserUsage struct {
	UserID uuid.UUID
	Email  string
	UsageTotals
}

// UsageSummary is the admin token-usage report for a window.
type UsageSummary struct {
	From     time.Time
	To       time.Time
	Totals   UsageTotals
	TopUsers []UserUsage
}
