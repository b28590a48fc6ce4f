package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

type periodJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type usageTotalsJSON struct {
	Generations      int   `json:"generations"`
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

type quotaJSON struct {
	Tier      string           `json:"tier"`
	Limit     int              `json:"limit"`
	Used      int              `json:"used"`
	Remaining *int             `json:"remaining"`
	Unlimited bool             `json:"unlimited"`
	Period    *periodJSON      `json:"period,omitempty"`
	Usage     *usageTotalsJSON `json:"usage,omitempty"`
}

type generationJSON struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	SourceURL *string   `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type chargeJSON struct {
	Generation generationJSON `json:"generation"`
	Tier       string         `json:"tier"`
	Debited    int            `json:"debited"`
}

type subscriptionJSON struct {
	ID                 uuid.UUID  `json:"id"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
}

type debitJSON struct {
	ID        uuid.UUID      `json:"id"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"created_at"`
}

type userQuotaJSON struct {
	UserID        uuid.UUID          `json:"user_id"`
	Quota         quotaJSON          `json:"quota"`
	Subscriptions []subscriptionJSON `json:"subscriptions"`
	RecentDebits  []debitJSON        `json:"recent_debits"`
}

type userUsageJSON struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	usageTotalsJSON
}

type usageSummaryJSON struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Totals   usageTotalsJSON `json:"totals"`
	TopUsers []userUsageJSON `json:"top_users"`
}

func toQuotaJSON(s domain.QuotaStatus) quotaJSON {
	out := quotaJSON{
		Tier:      s.Tier.String(),
		Limit:     s.Limit,
		Used:      s.Used,
		Unlimited: s.Unlimited,
	}
	// Remaining is null for untracked balances.
	if !s.Unlimited {
		remaining := s.Remaining
		out.Remaining = &remaining
	}
	if s.Period != nil {
		out.Period = &periodJSON{Start: s.Period.Start, End: s.Period.End}
	}
	return out
}

func toUsageTotalsJSON(t domain.UsageTotals) usageTotalsJSON {
	return usageTotalsJSON{
		Generations:      t.Generations,
		PromptTokens:     t.PromptTokens,
		CompletionTokens: t.CompletionTokens,
		TotalTokens:      t.TotalTokens(),
	}
}

func toGenerationJSON(g *domain.Generation) generationJSON {
	return generationJSON{
		ID:        g.ID,
		Kind:      g.Kind.String(),
		Title:     g.Title,
		SourceURL: g.SourceURL,
		CreatedAt: g.CreatedAt,
	}
}

func toUsageSummaryJSON(s *domain.UsageSummary) usageSummaryJSON {
	top := make([]userUsageJSON, 0, len(s.TopUsers))
	for _, u := range s.TopUsers {
		top = append(top, userUsageJSON{UserID: u.UserID, Email: u.Email, usageTotalsJSON: toUsageTotalsJSON(u.UsageTotals)})
	}
	return usageSummaryJSON{
		From:     s.From,
		To:       s.To,
		Totals:   toUsageTotalsJSON(s.Totals),
		TopUsers: top,
	}
}
