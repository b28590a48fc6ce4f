package domain

// UserRole represents the authorization level of an account.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants admin access.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// SubscriptionStatus mirrors the billing provider's subscription state.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid   SubscriptionStatus = "unpaid"
)

func (s SubscriptionStatus) String() string { return string(s) }

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCanceled,
		SubscriptionStatusPastDue, SubscriptionStatusUnpaid:
		return true
	}
	return false
}

// GrantsQuota reports whether a subscription in this status lifts the account
// to the pro tier. Only active subscriptions do.
func (s SubscriptionStatus) GrantsQuota() bool {
	return s == SubscriptionStatusActive
}

// GenerationKind identifies which content table a generation lives in.
type GenerationKind string

const (
	GenerationKindQuiz      GenerationKind = "quiz"
	GenerationKindFlashcard GenerationKind = "flashcard"
	GenerationKindEssay     GenerationKind = "essay"
)

// GenerationKinds lists every kind counted against a pro account's monthly limit.
var GenerationKinds = []GenerationKind{
	GenerationKindQuiz,
	GenerationKindFlashcard,
	GenerationKindEssay,
}

func (k GenerationKind) String() string { return string(k) }

func (k GenerationKind) IsValid() bool {
	switch k {
	case GenerationKindQuiz, GenerationKindFlashcard, GenerationKindEssay:
		return true
	}
	return false
}

// TierKind is the quota mode an account is in for a single consume call.
type TierKind string

const (
	TierFree TierKind = "free"
	TierPro  TierKind = "pro"
)

func (t TierKind) String() string { return string(t) }

// QuotaKind identifies which quota rejected a generation.
type QuotaKind string

const (
	QuotaKindFreeTierExhausted QuotaKind = "free_tier_exhausted"
	QuotaKindProMonthly        QuotaKind = "pro_monthly"
)

func (k QuotaKind) String() string { return string(k) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeAccount    EntityType = "ACCOUNT"
	EntityTypeGeneration EntityType = "GENERATION"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeAccount, EntityTypeGeneration:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDebit  AuditAction = "DEBIT"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDebit:
		return true
	}
	return false
}
