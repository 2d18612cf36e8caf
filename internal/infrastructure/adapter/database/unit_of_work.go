package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "ledger_tx"

// UnitOfWork implements the unit of work pattern for ledger transactions.
// Repositories obtained through a transactional context share one database
// transaction; obtained through a plain context they run directly against
// the pool.
type UnitOfWork struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger) persistence.UnitOfWork {
	return &UnitOfWork{
		db:     db,
		logger: logger,
	}
}

// Begin starts a new database transaction and stores it in the context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in the given context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction in the given context
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error

	// Rolling back a transaction that already finished is harmless
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetBalanceRepository returns a balance repository bound to the current transaction
func (u *UnitOfWork) GetBalanceRepository(ctx context.Context) persistence.BalanceRepository {
	return repository.NewBalanceRepository(u.dbFromContext(ctx), u.logger)
}

// GetBatchRepository returns a batch repository bound to the current transaction
func (u *UnitOfWork) GetBatchRepository(ctx context.Context) persistence.BatchRepository {
	return repository.NewBatchRepository(u.dbFromContext(ctx), u.logger)
}

// GetTransactionRepository returns a transaction repository bound to the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.dbFromContext(ctx), u.logger)
}

// dbFromContext retrieves the transaction from context, falling back to the pool
func (u *UnitOfWork) dbFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
