package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// BatchRepository defines essential methods to interact with credit batches
type BatchRepository interface {
	// Create inserts a new batch; only the grant path does this
	Create(ctx context.Context, batch *entity.CreditsBatch) error

	// Update writes back a mutated batch (remaining/status)
	//
	// Possible errors:
	// - ErrBatchNotFound: If the batch doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, batch *entity.CreditsBatch) error

	// GetByID retrieves a single batch
	//
	// Possible errors:
	// - ErrBatchNotFound: If the batch doesn't exist
	GetByID(ctx context.Context, id string) (*entity.CreditsBatch, error)

	// ListActive returns the user's active batches ordered by expiresAt
	// ascending with never-expiring batches last, tie-broken by createdAt.
	ListActive(ctx context.Context, userID string) ([]*entity.CreditsBatch, error)

	// ListConsumable returns the user's active, non-expired batches in FIFO
	// consumption order: soonest expiry first, never-expiring last, older
	// batches before newer on equal expiry.
	ListConsumable(ctx context.Context, userID string, now time.Time) ([]*entity.CreditsBatch, error)

	// ListExpiredCandidates returns active batches across all users whose
	// expiry has passed and which still hold credits. Used by the sweeper.
	ListExpiredCandidates(ctx context.Context, now time.Time) ([]*entity.CreditsBatch, error)
}
