package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// GrantRequest carries one credit grant from an external collaborator
// (payment webhook, admin tooling, subscription renewal)
type GrantRequest struct {
	UserID          string
	Amount          int64
	SourceType      entity.BatchSource
	TransactionType entity.TransactionType
	ExpiresAt       *time.Time // nil means the credits never expire
	SourceRef       string     // external idempotency key; empty disables dedup
	Description     string
	Metadata        map[string]any
}

// GrantResult reports the batch created by a grant and the balance after it.
// Replayed is true when the grant was deduplicated by its source reference
// and no new batch was created.
type GrantResult struct {
	BatchID    string
	NewBalance int64
	Replayed   bool
}

// ConsumeRequest carries one consume call from a feature-usage path
type ConsumeRequest struct {
	UserID      string
	Amount      int64
	Description string
	Metadata    map[string]any
}

// BatchDebit records how much of a consume was drawn from one batch
type BatchDebit struct {
	BatchID string
	Amount  int64
}

// ConsumeResult reports the balance after a consume and the batches debited,
// in the order they were drawn down
type ConsumeResult struct {
	NewBalance     int64
	BatchesDebited []BatchDebit
}

// BonusResult reports the outcome of the exactly-once registration bonus.
// Granted is false when the bonus had already been given.
type BonusResult struct {
	Granted bool
	BatchID string
	Balance int64
}

// ExpiredBatch reports one batch zeroed out by the expiration sweeper
type ExpiredBatch struct {
	BatchID       string
	UserID        string
	ExpiredAmount int64
}

// CreditsUseCase is the sole legitimate entry point to the credits ledger
type CreditsUseCase interface {
	// EnsureBalance idempotently gets or creates the user's balance row
	EnsureBalance(ctx context.Context, userID string) (*entity.CreditsBalance, error)

	// EnsureRegistrationBonus grants the configured sign-up bonus exactly once
	EnsureRegistrationBonus(ctx context.Context, userID string) (*BonusResult, error)

	// GrantCredits credits the user with a new batch, deduplicated by SourceRef
	GrantCredits(ctx context.Context, req GrantRequest) (*GrantResult, error)

	// ConsumeCredits debits credits FIFO by expiry across the user's batches
	ConsumeCredits(ctx context.Context, req ConsumeRequest) (*ConsumeResult, error)

	// ProcessExpiredBatches zeroes out batches past their expiry; idempotent
	ProcessExpiredBatches(ctx context.Context) ([]ExpiredBatch, error)

	// FreezeAccount blocks mutating operations for the user
	FreezeAccount(ctx context.Context, userID string) error

	// UnfreezeAccount re-enables mutating operations for the user
	UnfreezeAccount(ctx context.Context, userID string) error

	// GetBalance returns the user's balance row
	GetBalance(ctx context.Context, userID string) (*entity.CreditsBalance, error)

	// GetActiveBatches returns the user's active batches in expiry order
	GetActiveBatches(ctx context.Context, userID string) ([]*entity.CreditsBatch, error)

	// GetTransactions returns a page of the user's ledger entries, newest first
	GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditsTransaction, error)
}
