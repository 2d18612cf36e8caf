package model

import (
	"time"
)

// CreditsBalance represents the database model for per-user balances
type CreditsBalance struct {
	UserID      string    `gorm:"primaryKey;size:255"`
	Balance     int64     `gorm:"not null;default:0"`
	TotalEarned int64     `gorm:"not null;default:0"`
	TotalSpent  int64     `gorm:"not null;default:0"`
	Status      string    `gorm:"not null;size:20;default:active"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for CreditsBalance
func (CreditsBalance) TableName() string {
	return "credits_balances"
}
