package dto

import (
	"time"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// GrantRequest is the API payload for granting credits
type GrantRequest struct {
	Amount          int64          `json:"amount" binding:"required"`
	SourceType      string         `json:"sourceType" binding:"required"`
	TransactionType string         `json:"transactionType" binding:"required"`
	ExpiresAt       *time.Time     `json:"expiresAt,omitempty"`
	SourceRef       string         `json:"sourceRef,omitempty"`
	Description     string         `json:"description,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// GrantResponse reports the outcome of a grant
type GrantResponse struct {
	BatchID    string `json:"batchId"`
	NewBalance int64  `json:"newBalance"`
	Replayed   bool   `json:"replayed"`
}

// ConsumeRequest is the API payload for consuming credits
type ConsumeRequest struct {
	Amount      int64          `json:"amount" binding:"required"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// BatchDebit reports how much of a consume was drawn from one batch
type BatchDebit struct {
	BatchID string `json:"batchId"`
	Amount  int64  `json:"amount"`
}

// ConsumeResponse reports the outcome of a consume
type ConsumeResponse struct {
	NewBalance     int64        `json:"newBalance"`
	BatchesDebited []BatchDebit `json:"batchesDebited"`
}

// BonusResponse reports the outcome of the registration bonus check
type BonusResponse struct {
	Granted bool   `json:"granted"`
	BatchID string `json:"batchId,omitempty"`
	Balance int64  `json:"balance"`
}

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID      string `json:"userId"`
	Balance     int64  `json:"balance"`
	TotalEarned int64  `json:"totalEarned"`
	TotalSpent  int64  `json:"totalSpent"`
	Status      string `json:"status"`
}

// BatchResponse represents one credit batch in API responses
type BatchResponse struct {
	ID         string     `json:"id"`
	Amount     int64      `json:"amount"`
	Remaining  int64      `json:"remaining"`
	SourceType string     `json:"sourceType"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID           string         `json:"id"`
	BatchID      *string        `json:"batchId,omitempty"`
	Type         string         `json:"type"`
	Amount       int64          `json:"amount"`
	BalanceAfter int64          `json:"balanceAfter"`
	SourceRef    *string        `json:"sourceRef,omitempty"`
	Description  string         `json:"description,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ExpiredBatchResponse reports one batch swept by the expiration pass
type ExpiredBatchResponse struct {
	BatchID       string `json:"batchId"`
	UserID        string `json:"userId"`
	ExpiredAmount int64  `json:"expiredAmount"`
}

// SweepResponse reports a whole expiration pass
type SweepResponse struct {
	Expired []ExpiredBatchResponse `json:"expired"`
	Count   int                    `json:"count"`
}

// FromBalance converts a balance entity to its API representation
func FromBalance(b *entity.CreditsBalance) BalanceResponse {
	return BalanceResponse{
		UserID:      b.UserID,
		Balance:     b.Balance,
		TotalEarned: b.TotalEarned,
		TotalSpent:  b.TotalSpent,
		Status:      string(b.Status),
	}
}

// FromBatch converts a batch entity to its API representation
func FromBatch(b *entity.CreditsBatch) BatchResponse {
	return BatchResponse{
		ID:         b.ID,
		Amount:     b.Amount,
		Remaining:  b.Remaining,
		SourceType: string(b.SourceType),
		ExpiresAt:  b.ExpiresAt,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

// FromTransaction converts a ledger entry to its API representation
func FromTransaction(t *entity.CreditsTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		BatchID:      t.BatchID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		SourceRef:    t.SourceRef,
		Description:  t.Description,
		Metadata:     t.Metadata,
		CreatedAt:    t.CreatedAt,
	}
}

// FromExpiredBatches converts sweep results to their API representation
func FromExpiredBatches(expired []usecase.ExpiredBatch) SweepResponse {
	out := make([]ExpiredBatchResponse, 0, len(expired))
	for _, e := range expired {
		out = append(out, ExpiredBatchResponse{
			BatchID:       e.BatchID,
			UserID:        e.UserID,
			ExpiredAmount: e.ExpiredAmount,
		})
	}
	return SweepResponse{Expired: out, Count: len(out)}
}
