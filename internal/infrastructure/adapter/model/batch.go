package model

import (
	"time"
)

// CreditsBatch represents the database model for credit batches
type CreditsBatch struct {
	ID         string     `gorm:"primaryKey;size:36"`
	UserID     string     `gorm:"not null;size:255;index:idx_batches_user_status"`
	Amount     int64      `gorm:"not null"`
	Remaining  int64      `gorm:"not null"`
	SourceType string     `gorm:"not null;size:50"`
	ExpiresAt  *time.Time `gorm:"index"`
	Status     string     `gorm:"not null;size:20;index:idx_batches_user_status"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`

	Balance CreditsBalance `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for CreditsBatch
func (CreditsBatch) TableName() string {
	return "credits_batches"
}
