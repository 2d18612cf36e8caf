package credits

import (
	"context"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// GetBalance returns the user's balance row.
// Returns ErrBalanceNotFound for users who never touched credits; first-touch
// paths should call EnsureBalance instead.
func (s *Service) GetBalance(ctx context.Context, userID string) (*entity.CreditsBalance, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.uow.GetBalanceRepository(ctx).GetByUserID(ctx, userID)
}

// GetActiveBatches returns the user's active batches ordered by expiry,
// soonest first and never-expiring last
func (s *Service) GetActiveBatches(ctx context.Context, userID string) ([]*entity.CreditsBatch, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.uow.GetBatchRepository(ctx).ListActive(ctx, userID)
}

// GetTransactions returns a page of the user's ledger entries, newest first
func (s *Service) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.CreditsTransaction, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	limit, offset = s.validator.ValidatePage(limit, offset)
	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit, offset)
}
