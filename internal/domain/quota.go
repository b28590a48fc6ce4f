package domain

import (
	"fmt"
	"time"
)

// CreditPolicy holds the externally configured quota values the ledger is
// constructed with.
type CreditPolicy struct {
	// FreeGenerationQuota is the initial free_tokens grant. The ledger only
	// uses it to word the free-tier denial.
	FreeGenerationQuota int
	// ProMonthlyGenerationLimit caps generations per billing period.
	ProMonthlyGenerationLimit int
	// DefaultPeriod substitutes for missing or invalid billing period bounds.
	DefaultPeriod time.Duration
	// StaleGrace extends a billing period that already ended.
	StaleGrace time.Duration
}

// DefaultCreditPolicy returns the production defaults.
func DefaultCreditPolicy() CreditPolicy {
	return CreditPolicy{
		FreeGenerationQuota:       10,
		ProMonthlyGenerationLimit: 200,
		DefaultPeriod:             30 * 24 * time.Hour,
		StaleGrace:                24 * time.Hour,
	}
}

// QuotaExceeded is the typed rejection returned when a generation may not
// proceed. It is a business outcome, not a fault.
type QuotaExceeded struct {
	Kind  QuotaKind
	Limit int
}

// Message renders the user-facing explanation with the limit interpolated.
func (q QuotaExceeded) Message() string {
	switch q.Kind {
	case QuotaKindProMonthly:
		return fmt.Sprintf(
			"You have reached your monthly limit of %d generations. Your limit resets at the start of your next billing period.",
			q.Limit,
		)
	default:
		return fmt.Sprintf(
			"You have used all %d free generations. Upgrade to Pro to keep generating.",
			q.Limit,
		)
	}
}

// Err wraps the outcome for call paths that can only carry an error.
// The result matches ErrPaymentRequired with errors.Is.
func (q QuotaExceeded) Err() error {
	return &QuotaError{Quota: q}
}

// Decision is the result of a single consume call.
type Decision struct {
	Allowed bool
	Tier    TierKind
	// Debited is the number of free tokens removed. Always 0 on the pro tier.
	Debited int
	// Denial is set when Allowed is false.
	Denial *QuotaExceeded
}

// Allow builds a successful decision.
func Allow(tier TierKind, debited int) Decision {
	return Decision{Allowed: true, Tier: tier, Debited: debited}
}

// Deny builds a rejected decision.
func Deny(tier TierKind, kind QuotaKind, limit int) Decision {
	return Decision{
		Tier:   tier,
		Denial: &QuotaExceeded{Kind: kind, Limit: limit},
	}
}

// QuotaStatus is the user-facing view of how much quota remains.
type QuotaStatus struct {
	Tier      TierKind
	Limit     int
	Used      int
	Remaining int
	// Unlimited is set for free-tier accounts whose balance is not tracked.
	Unlimited bool
	// Period is the effective counting window. Nil on the free tier.
	Period *Period
}
