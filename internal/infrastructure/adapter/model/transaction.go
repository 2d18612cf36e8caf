package model

import (
	"time"
)

// CreditsTransaction represents the database model for ledger entries.
// Rows are append-only; SourceRef carries the storage-level idempotency
// guarantee through its unique index (null refs don't collide).
type CreditsTransaction struct {
	ID           string    `gorm:"primaryKey;size:36"`
	UserID       string    `gorm:"not null;size:255;index:idx_transactions_user_created"`
	BatchID      *string   `gorm:"size:36;index"`
	Type         string    `gorm:"not null;size:50"`
	Amount       int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	SourceRef    *string   `gorm:"uniqueIndex;size:255"`
	Description  string    `gorm:"size:500"`
	Metadata     string    `gorm:"type:text"` // serialized JSON, opaque to the ledger
	CreatedAt    time.Time `gorm:"not null;index:idx_transactions_user_created"`

	Batch *CreditsBatch `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName specifies the table name for CreditsTransaction
func (CreditsTransaction) TableName() string {
	return "credits_transactions"
}
