package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
)

// BatchStatus represents the lifecycle state of a credit batch
type BatchStatus string

const (
	BatchActive   BatchStatus = "active"
	BatchDepleted BatchStatus = "depleted"
	BatchExpired  BatchStatus = "expired"
)

// BatchSource identifies where a credit batch came from
type BatchSource string

const (
	SourceRegistrationBonus BatchSource = "registration_bonus"
	SourcePurchase          BatchSource = "purchase"
	SourceMonthlyGrant      BatchSource = "monthly_grant"
	SourceBonus             BatchSource = "bonus"
	SourceAdminGrant        BatchSource = "admin_grant"
	SourceRefund            BatchSource = "refund"
)

// validBatchSources is the set of allowed batch source values
var validBatchSources = map[BatchSource]bool{
	SourceRegistrationBonus: true,
	SourcePurchase:          true,
	SourceMonthlyGrant:      true,
	SourceBonus:             true,
	SourceAdminGrant:        true,
	SourceRefund:            true,
}

// IsValidBatchSource checks if the source type is one of the allowed values
func IsValidBatchSource(source string) bool {
	return validBatchSources[BatchSource(source)]
}

// CreditsBatch is a discrete lot of granted credits with its own expiry.
// Batches are created only by the grant path and drawn down by consumption
// or zeroed by the expiration sweeper; remaining never exceeds amount and
// never goes negative.
type CreditsBatch struct {
	ID         string
	UserID     string
	Amount     int64 // original grant size, immutable
	Remaining  int64
	SourceType BatchSource
	ExpiresAt  *time.Time // nil means the batch never expires
	Status     BatchStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCreditsBatch creates an active batch holding the full granted amount
func NewCreditsBatch(id, userID string, amount int64, source BatchSource, expiresAt *time.Time, timeProvider coreport.TimeProvider) (*CreditsBatch, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !validBatchSources[source] {
		return nil, errs.ErrInvalidSourceType
	}

	now := timeProvider.Now()
	return &CreditsBatch{
		ID:         id,
		UserID:     userID,
		Amount:     amount,
		Remaining:  amount,
		SourceType: source,
		ExpiresAt:  expiresAt,
		Status:     BatchActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsExpiredAt reports whether the batch's expiry has passed at the given time
func (b *CreditsBatch) IsExpiredAt(now time.Time) bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}

// IsConsumableAt reports whether the batch can be debited at the given time
func (b *CreditsBatch) IsConsumableAt(now time.Time) bool {
	return b.Status == BatchActive && b.Remaining > 0 && !b.IsExpiredAt(now)
}

// Debit draws down the batch by the given amount, marking it depleted when
// remaining reaches zero. The amount must not exceed remaining.
func (b *CreditsBatch) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	if b.Status != BatchActive {
		return errs.ErrBatchNotConsumable
	}
	if amount > b.Remaining {
		return errs.ErrInsufficientCredits
	}

	b.Remaining -= amount
	if b.Remaining == 0 {
		b.Status = BatchDepleted
	}
	b.UpdatedAt = timeProvider.Now()
	return nil
}

// Expire forfeits whatever is left in the batch and returns the forfeited
// amount. Expiring a batch that is not active is a no-op returning zero.
func (b *CreditsBatch) Expire(timeProvider coreport.TimeProvider) int64 {
	if b.Status != BatchActive {
		return 0
	}

	forfeited := b.Remaining
	b.Remaining = 0
	b.Status = BatchExpired
	b.UpdatedAt = timeProvider.Now()
	return forfeited
}
