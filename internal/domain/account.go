package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a platform user's credit state.
//
// FreeTokens is nil for rows that predate token tracking; such accounts are
// treated as unlimited on the free tier. The balance only ever decreases
// through DebitFreeTokens.
type Account struct {
	ID         uuid.UUID
	Email      string
	Role       UserRole
	FreeTokens *int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	dirty bool
}

// HasTrackedTokens reports whether the free balance is tracked for this account.
func (a *Account) HasTrackedTokens() bool {
	return a.FreeTokens != nil
}

// DebitFreeTokens subtracts amount from the free balance, clamping at zero,
// and marks the account dirty so the caller persists it. Untracked balances
// are left untouched. Returns the number of tokens actually removed.
func (a *Account) DebitFreeTokens(amount int) int {
	if a.FreeTokens == nil || amount <= 0 {
		return 0
	}

	before := *a.FreeTokens
	after := before - amount
	if after < 0 {
		after = 0
	}
	a.FreeTokens = &after
	a.dirty = true

	return before - after
}

// IsDirty reports whether the free balance changed since the account was loaded.
func (a *Account) IsDirty() bool {
	return a.dirty
}

// MarkClean resets the dirty flag after the balance has been persisted.
func (a *Account) MarkClean() {
	a.dirty = false
}
