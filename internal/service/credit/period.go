package credit

import (
	"time"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// ResolvePeriod returns the window pro-tier generations are counted in.
//
// Missing bounds default to DefaultPeriod. A start in the future is pulled
// back to now-DefaultPeriod, an inverted window is rebuilt from its start,
// and a window that already ended is stretched to now+StaleGrace so
// generations made after the billing provider stopped updating the row are
// still counted.
func ResolvePeriod(sub *domain.Subscription, now time.Time, policy domain.CreditPolicy) domain.Period {
	start := now.Add(-policy.DefaultPeriod)
	if sub != nil && sub.CurrentPeriodStart != nil {
		start = *sub.CurrentPeriodStart
	}

	end := start.Add(policy.DefaultPeriod)
	if sub != nil && sub.CurrentPeriodEnd != nil {
		end = *sub.CurrentPeriodEnd
	}

	if start.After(now) {
		start = now.Add(-policy.DefaultPeriod)
	}
	if !end.After(start) {
		end = start.Add(policy.DefaultPeriod)
	}
	if end.Before(now) {
		end = now.Add(policy.StaleGrace)
	}

	return domain.Period{Start: start, End: end}
}
