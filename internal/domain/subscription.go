package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a billing-period grant of elevated quota. Period bounds are
// nullable because the billing provider can leave them unset or stale.
type Subscription struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Status             SubscriptionStatus
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
}

// IsActive reports whether the subscription lifts its account to the pro tier.
func (s *Subscription) IsActive() bool {
	return s != nil && s.Status.GrantsQuota()
}

// Period is a closed time window [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Duration returns the length of the window.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}
