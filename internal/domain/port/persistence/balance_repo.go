package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// BalanceRepository defines essential methods to interact with balance rows
type BalanceRepository interface {
	// GetByUserID retrieves a user's balance row
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance row exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) (*entity.CreditsBalance, error)

	// GetForUpdate retrieves the balance row holding an exclusive row lock
	// until the surrounding unit of work commits or rolls back. This is the
	// serialization point for all mutating ledger operations on one user.
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance row exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetForUpdate(ctx context.Context, userID string) (*entity.CreditsBalance, error)

	// Create inserts a new balance row
	//
	// Possible errors:
	// - ErrConstraintViolation: If a row for the user already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, balance *entity.CreditsBalance) error

	// Update writes back a mutated balance row
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance row exists for the user
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, balance *entity.CreditsBalance) error
}
