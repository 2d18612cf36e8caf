package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Batches are selected expiresAt ascending with never-expiring lots last;
// `expires_at IS NULL` sorts false before true on both postgres and sqlite.
const consumptionOrder = "expires_at IS NULL, expires_at ASC, created_at ASC"

// BatchRepository implements persistence.BatchRepository using GORM
type BatchRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBatchRepository creates a new BatchRepository instance
func NewBatchRepository(db *gorm.DB, logger coreport.Logger) *BatchRepository {
	return &BatchRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func batchModelToEntity(m *model.CreditsBatch) *entity.CreditsBatch {
	return &entity.CreditsBatch{
		ID:         m.ID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Remaining:  m.Remaining,
		SourceType: entity.BatchSource(m.SourceType),
		ExpiresAt:  m.ExpiresAt,
		Status:     entity.BatchStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func batchEntityToModel(b *entity.CreditsBatch) *model.CreditsBatch {
	return &model.CreditsBatch{
		ID:         b.ID,
		UserID:     b.UserID,
		Amount:     b.Amount,
		Remaining:  b.Remaining,
		SourceType: string(b.SourceType),
		ExpiresAt:  b.ExpiresAt,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (r *BatchRepository) handleDatabaseError(operation string, err error, batchID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrBatchNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"batch_id": batchID,
		"error":    err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new batch
func (r *BatchRepository) Create(ctx context.Context, batch *entity.CreditsBatch) error {
	m := batchEntityToModel(batch)
	if result := r.db.WithContext(ctx).Create(m); result.Error != nil {
		return r.handleDatabaseError("creating batch", result.Error, batch.ID)
	}
	return nil
}

// Update writes back a mutated batch
func (r *BatchRepository) Update(ctx context.Context, batch *entity.CreditsBatch) error {
	result := r.db.WithContext(ctx).Model(&model.CreditsBatch{}).
		Where("id = ?", batch.ID).
		Updates(map[string]any{
			"remaining":  batch.Remaining,
			"status":     string(batch.Status),
			"updated_at": batch.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating batch", result.Error, batch.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBatchNotFound
	}
	return nil
}

// GetByID retrieves a single batch
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*entity.CreditsBatch, error) {
	var m model.CreditsBatch
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting batch", result.Error, id)
	}
	return batchModelToEntity(&m), nil
}

// ListActive returns the user's active batches in expiry order
func (r *BatchRepository) ListActive(ctx context.Context, userID string) ([]*entity.CreditsBatch, error) {
	var models []model.CreditsBatch
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.BatchActive)).
		Order(consumptionOrder).
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing active batches", result.Error, "")
	}
	return batchModelsToEntities(models), nil
}

// ListConsumable returns the user's active, non-expired batches in FIFO
// consumption order
func (r *BatchRepository) ListConsumable(ctx context.Context, userID string, now time.Time) ([]*entity.CreditsBatch, error) {
	var models []model.CreditsBatch
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND remaining > 0", userID, string(entity.BatchActive)).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order(consumptionOrder).
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing consumable batches", result.Error, "")
	}
	return batchModelsToEntities(models), nil
}

// ListExpiredCandidates returns active batches past their expiry that still
// hold credits, oldest expiry first
func (r *BatchRepository) ListExpiredCandidates(ctx context.Context, now time.Time) ([]*entity.CreditsBatch, error) {
	var models []model.CreditsBatch
	result := r.db.WithContext(ctx).
		Where("status = ? AND remaining > 0", string(entity.BatchActive)).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Order("expires_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing expired batches", result.Error, "")
	}
	return batchModelsToEntities(models), nil
}

func batchModelsToEntities(models []model.CreditsBatch) []*entity.CreditsBatch {
	batches := make([]*entity.CreditsBatch, 0, len(models))
	for i := range models {
		batches = append(batches, batchModelToEntity(&models[i]))
	}
	return batches
}
