package credits

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// EnsureBalance idempotently gets or creates the user's balance row. An
// existing row is returned untouched; an existing balance is never reset.
func (s *Service) EnsureBalance(ctx context.Context, userID string) (*entity.CreditsBalance, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	balances := s.uow.GetBalanceRepository(ctx)
	balance, err := balances.GetByUserID(ctx, userID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, errs.ErrBalanceNotFound) {
		return nil, err
	}

	var created *entity.CreditsBalance
	err = s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		created, err = s.lockBalance(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EnsureRegistrationBonus grants the configured sign-up bonus exactly once.
// The check and the grant share one unit of work holding the balance lock,
// so two concurrent first touches cannot both grant.
func (s *Service) EnsureRegistrationBonus(ctx context.Context, userID string) (*usecase.BonusResult, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if s.config.RegistrationBonusAmount <= 0 {
		return &usecase.BonusResult{Granted: false}, nil
	}

	var result *usecase.BonusResult
	err := s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		balance, err := s.lockBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if err := s.requireUnfrozen(balance, "registration bonus"); err != nil {
			return err
		}

		transactions := s.uow.GetTransactionRepository(txCtx)
		granted, err := transactions.ExistsByUserAndType(txCtx, userID, entity.TxRegistrationBonus)
		if err != nil {
			return err
		}
		if granted {
			result = &usecase.BonusResult{Granted: false, Balance: balance.Balance}
			return nil
		}

		now := s.timeProvider.Now()
		batch, err := entity.NewCreditsBatch(
			newID(), userID, s.config.RegistrationBonusAmount,
			entity.SourceRegistrationBonus, s.bonusExpiry(now), s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetBatchRepository(txCtx).Create(txCtx, batch); err != nil {
			return err
		}

		txn, err := entity.NewCreditsTransaction(
			newID(), userID, entity.TxRegistrationBonus,
			s.config.RegistrationBonusAmount,
			balance.Balance+s.config.RegistrationBonusAmount, s.timeProvider)
		if err != nil {
			return err
		}
		txn.BatchID = &batch.ID
		txn.Description = "Registration bonus"
		if err := transactions.Create(txCtx, txn); err != nil {
			return err
		}

		if err := balance.ApplyGrant(s.config.RegistrationBonusAmount, s.timeProvider); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		result = &usecase.BonusResult{
			Granted: true,
			BatchID: batch.ID,
			Balance: balance.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Granted {
		s.logger.Info("Registration bonus granted", map[string]any{
			"user_id": userID,
			"amount":  s.config.RegistrationBonusAmount,
			"balance": result.Balance,
		})
	}
	return result, nil
}
