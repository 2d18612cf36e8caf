package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BalanceRepository implements persistence.BalanceRepository using GORM
type BalanceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBalanceRepository creates a new BalanceRepository instance
func NewBalanceRepository(db *gorm.DB, logger coreport.Logger) *BalanceRepository {
	return &BalanceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func balanceModelToEntity(m *model.CreditsBalance) *entity.CreditsBalance {
	return &entity.CreditsBalance{
		UserID:      m.UserID,
		Balance:     m.Balance,
		TotalEarned: m.TotalEarned,
		TotalSpent:  m.TotalSpent,
		Status:      entity.AccountStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func balanceEntityToModel(b *entity.CreditsBalance) *model.CreditsBalance {
	return &model.CreditsBalance{
		UserID:      b.UserID,
		Balance:     b.Balance,
		TotalEarned: b.TotalEarned,
		TotalSpent:  b.TotalSpent,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *BalanceRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrBalanceNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves a balance row without locking it
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID string) (*entity.CreditsBalance, error) {
	var m model.CreditsBalance
	result := r.db.WithContext(ctx).First(&m, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting balance", result.Error, userID)
	}
	return balanceModelToEntity(&m), nil
}

// GetForUpdate retrieves the balance row holding an exclusive row lock for
// the rest of the surrounding transaction
func (r *BalanceRepository) GetForUpdate(ctx context.Context, userID string) (*entity.CreditsBalance, error) {
	var m model.CreditsBalance
	result := lockForUpdate(r.db.WithContext(ctx)).First(&m, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking balance", result.Error, userID)
	}
	return balanceModelToEntity(&m), nil
}

// Create inserts a new balance row
func (r *BalanceRepository) Create(ctx context.Context, balance *entity.CreditsBalance) error {
	m := balanceEntityToModel(balance)
	if result := r.db.WithContext(ctx).Create(m); result.Error != nil {
		return r.handleDatabaseError("creating balance", result.Error, balance.UserID)
	}

	r.logger.Debug("Balance row created", map[string]any{
		"user_id": balance.UserID,
	})
	return nil
}

// Update writes back a mutated balance row
func (r *BalanceRepository) Update(ctx context.Context, balance *entity.CreditsBalance) error {
	result := r.db.WithContext(ctx).Model(&model.CreditsBalance{}).
		Where("user_id = ?", balance.UserID).
		Updates(map[string]any{
			"balance":      balance.Balance,
			"total_earned": balance.TotalEarned,
			"total_spent":  balance.TotalSpent,
			"status":       string(balance.Status),
			"updated_at":   balance.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, balance.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBalanceNotFound
	}
	return nil
}
