package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
)

// AccountStatus represents the freeze state of a credits account
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
)

// CreditsBalance represents a user's spendable credit balance.
// One row per user; balance must always equal the sum of remaining
// credits over the user's active batches.
type CreditsBalance struct {
	UserID      string
	Balance     int64
	TotalEarned int64 // lifetime credits granted, never decreases
	TotalSpent  int64 // lifetime credits consumed, never decreases
	Status      AccountStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCreditsBalance creates an empty active balance for the given user
func NewCreditsBalance(userID string, timeProvider coreport.TimeProvider) (*CreditsBalance, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &CreditsBalance{
		UserID:    userID,
		Status:    AccountActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsFrozen reports whether mutating operations are blocked for this account
func (b *CreditsBalance) IsFrozen() bool {
	return b.Status == AccountFrozen
}

// ApplyGrant credits the balance and lifetime earned counter
func (b *CreditsBalance) ApplyGrant(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}

	b.Balance += amount
	b.TotalEarned += amount
	b.UpdatedAt = timeProvider.Now()
	return nil
}

// ApplyConsume debits the balance and updates the lifetime spent counter.
// Returns ErrInsufficientCredits if the balance would go negative.
func (b *CreditsBalance) ApplyConsume(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	if b.Balance < amount {
		return errs.ErrInsufficientCredits
	}

	b.Balance -= amount
	b.TotalSpent += amount
	b.UpdatedAt = timeProvider.Now()
	return nil
}

// ApplyExpiration removes forfeited credits from the spendable balance.
// Expired credits do not count as spent.
func (b *CreditsBalance) ApplyExpiration(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	if b.Balance < amount {
		return errs.ErrNegativeBalance
	}

	b.Balance -= amount
	b.UpdatedAt = timeProvider.Now()
	return nil
}

// SetStatus toggles the freeze state of the account
func (b *CreditsBalance) SetStatus(status AccountStatus, timeProvider coreport.TimeProvider) {
	b.Status = status
	b.UpdatedAt = timeProvider.Now()
}
