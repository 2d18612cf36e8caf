package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionModelToEntity(m *model.CreditsTransaction) (*entity.CreditsTransaction, error) {
	var metadata map[string]any
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("%w: corrupt transaction metadata: %s", errs.ErrInternalServer, err.Error())
		}
	}

	return &entity.CreditsTransaction{
		ID:           m.ID,
		UserID:       m.UserID,
		BatchID:      m.BatchID,
		Type:         entity.TransactionType(m.Type),
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		SourceRef:    m.SourceRef,
		Description:  m.Description,
		Metadata:     metadata,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func transactionEntityToModel(t *entity.CreditsTransaction) (*model.CreditsTransaction, error) {
	metadata := ""
	if len(t.Metadata) > 0 {
		raw, err := json.Marshal(t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: unserializable transaction metadata: %s", errs.ErrInternalServer, err.Error())
		}
		metadata = string(raw)
	}

	return &model.CreditsTransaction{
		ID:           t.ID,
		UserID:       t.UserID,
		BatchID:      t.BatchID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		SourceRef:    t.SourceRef,
		Description:  t.Description,
		Metadata:     metadata,
		CreatedAt:    t.CreatedAt,
	}, nil
}

// Create appends a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.CreditsTransaction) error {
	m, err := transactionEntityToModel(transaction)
	if err != nil {
		return err
	}

	if result := r.db.WithContext(ctx).Create(m); result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateSourceRef
		}
		r.logger.Error("Database error when creating transaction", map[string]any{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"error":          result.Error.Error(),
		})
		if r.errorClassifier.IsConstraintError(result.Error) {
			return errs.ErrConstraintViolation
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// GetBySourceRef retrieves the entry recorded for an external source reference
func (r *TransactionRepository) GetBySourceRef(ctx context.Context, sourceRef string) (*entity.CreditsTransaction, error) {
	var m model.CreditsTransaction
	result := r.db.WithContext(ctx).First(&m, "source_ref = ?", sourceRef)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return transactionModelToEntity(&m)
}

// ExistsByUserAndType checks whether the user already has an entry of the given type
func (r *TransactionRepository) ExistsByUserAndType(ctx context.Context, userID string, txType entity.TransactionType) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CreditsTransaction{}).
		Where("user_id = ? AND type = ?", userID, string(txType)).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}

// ListByUser returns the user's entries ordered by createdAt descending
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditsTransaction, error) {
	var models []model.CreditsTransaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transactions := make([]*entity.CreditsTransaction, 0, len(models))
	for i := range models {
		t, err := transactionModelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
