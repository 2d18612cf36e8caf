package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating ledger mutations across
// the balance, batch and transaction repositories inside one atomic
// database transaction
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetBalanceRepository returns a balance repository bound to the current transaction
	GetBalanceRepository(ctx context.Context) BalanceRepository

	// GetBatchRepository returns a batch repository bound to the current transaction
	GetBatchRepository(ctx context.Context) BatchRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
