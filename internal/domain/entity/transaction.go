package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
)

// TransactionType identifies what kind of balance change a ledger entry records
type TransactionType string

const (
	TxRegistrationBonus TransactionType = "registration_bonus"
	TxAdminGrant        TransactionType = "admin_grant"
	TxMonthlyGrant      TransactionType = "monthly_grant"
	TxPurchase          TransactionType = "purchase"
	TxConsumption       TransactionType = "consumption"
	TxExpiration        TransactionType = "expiration"
	TxRefund            TransactionType = "refund"
)

// validTransactionTypes is the set of allowed transaction type values
var validTransactionTypes = map[TransactionType]bool{
	TxRegistrationBonus: true,
	TxAdminGrant:        true,
	TxMonthlyGrant:      true,
	TxPurchase:          true,
	TxConsumption:       true,
	TxExpiration:        true,
	TxRefund:            true,
}

// IsValidTransactionType checks if the transaction type is one of the allowed values
func IsValidTransactionType(txType string) bool {
	return validTransactionTypes[TransactionType(txType)]
}

// Direction returns +1 for types that credit the balance and -1 for types
// that debit it. Amounts are always stored positive.
func (t TransactionType) Direction() int64 {
	switch t {
	case TxConsumption, TxExpiration:
		return -1
	default:
		return 1
	}
}

// CreditsTransaction is one append-only ledger entry. Replaying all entries
// for a user in creation order must reproduce the current balance exactly.
type CreditsTransaction struct {
	ID           string
	UserID       string
	BatchID      *string // nil for entries not tied to a single batch
	Type         TransactionType
	Amount       int64 // always positive; direction implied by Type
	BalanceAfter int64 // balance snapshot immediately after this entry
	SourceRef    *string
	Description  string
	Metadata     map[string]any
	CreatedAt    time.Time
}

// NewCreditsTransaction creates a ledger entry for the given balance event
func NewCreditsTransaction(
	id, userID string,
	txType TransactionType,
	amount int64,
	balanceAfter int64,
	timeProvider coreport.TimeProvider,
) (*CreditsTransaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !validTransactionTypes[txType] {
		return nil, errs.ErrInvalidTransactionType
	}
	if balanceAfter < 0 {
		return nil, errs.ErrNegativeBalance
	}

	return &CreditsTransaction{
		ID:           id,
		UserID:       userID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    timeProvider.Now(),
	}, nil
}

// SignedAmount returns the amount with the sign its type implies
func (t *CreditsTransaction) SignedAmount() int64 {
	return t.Amount * t.Type.Direction()
}
