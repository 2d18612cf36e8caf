package credits

import (
	"context"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
)

// FreezeAccount blocks all mutating operations for the user. Freezing is a
// policy statement, not data deletion: batches and balance stay untouched
// and become spendable again on unfreeze.
func (s *Service) FreezeAccount(ctx context.Context, userID string) error {
	return s.setAccountStatus(ctx, userID, entity.AccountFrozen)
}

// UnfreezeAccount re-enables mutating operations for the user
func (s *Service) UnfreezeAccount(ctx context.Context, userID string) error {
	return s.setAccountStatus(ctx, userID, entity.AccountActive)
}

func (s *Service) setAccountStatus(ctx context.Context, userID string, status entity.AccountStatus) error {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return err
	}

	err := s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		balance, err := s.lockBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if balance.Status == status {
			return nil
		}

		balance.SetStatus(status, s.timeProvider)
		return s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Account status changed", map[string]any{
		"user_id": userID,
		"status":  status,
	})
	return nil
}
