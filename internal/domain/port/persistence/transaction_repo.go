package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with the
// append-only transaction log
type TransactionRepository interface {
	// Create appends a new ledger entry. Entries are never updated or deleted.
	//
	// Possible errors:
	// - ErrDuplicateSourceRef: If an entry with the same source reference exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.CreditsTransaction) error

	// GetBySourceRef retrieves the entry recorded for an external source
	// reference. Used for idempotent replay of webhook-delivered grants.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no entry carries the reference
	GetBySourceRef(ctx context.Context, sourceRef string) (*entity.CreditsTransaction, error)

	// ExistsByUserAndType checks whether the user already has an entry of the
	// given type. Used for the exactly-once registration bonus.
	ExistsByUserAndType(ctx context.Context, userID string, txType entity.TransactionType) (bool, error)

	// ListByUser returns the user's entries ordered by createdAt descending
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditsTransaction, error)
}
