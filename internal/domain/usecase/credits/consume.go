package credits

import (
	"context"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// ConsumeCredits debits req.Amount from the user's batches, soonest expiry
// first so the credits closest to forfeiture are spent before longer-lived
// ones. Each batch touched gets its own consumption ledger entry; the
// balance row is written back once at the end. Everything happens inside one
// atomic unit of work behind the balance row lock, so either the full amount
// is consumed or nothing is.
func (s *Service) ConsumeCredits(ctx context.Context, req usecase.ConsumeRequest) (*usecase.ConsumeResult, error) {
	if err := s.validator.ValidateConsume(req); err != nil {
		return nil, err
	}

	var result *usecase.ConsumeResult
	err := s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		balance, err := s.lockBalance(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if err := s.requireUnfrozen(balance, "consume"); err != nil {
			return err
		}
		if balance.Balance < req.Amount {
			return errs.NewInsufficientCreditsError(req.UserID, req.Amount, balance.Balance)
		}

		now := s.timeProvider.Now()
		batches := s.uow.GetBatchRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)

		consumable, err := batches.ListConsumable(txCtx, req.UserID, now)
		if err != nil {
			return err
		}

		owed := req.Amount
		running := balance.Balance
		debits := make([]usecase.BatchDebit, 0, len(consumable))

		for _, batch := range consumable {
			if owed == 0 {
				break
			}

			portion := batch.Remaining
			if portion > owed {
				portion = owed
			}
			if err := batch.Debit(portion, s.timeProvider); err != nil {
				return err
			}
			if err := batches.Update(txCtx, batch); err != nil {
				return err
			}

			running -= portion
			txn, err := entity.NewCreditsTransaction(
				newID(), req.UserID, entity.TxConsumption, portion, running, s.timeProvider)
			if err != nil {
				return err
			}
			txn.BatchID = &batch.ID
			txn.Description = req.Description
			txn.Metadata = req.Metadata
			if err := transactions.Create(txCtx, txn); err != nil {
				return err
			}

			debits = append(debits, usecase.BatchDebit{BatchID: batch.ID, Amount: portion})
			owed -= portion
		}

		// The balance check above used the same locked snapshot the batch
		// walk did, so falling short here means the balance invariant itself
		// is broken; refuse and roll everything back.
		if owed > 0 {
			return errs.NewInsufficientCreditsError(req.UserID, req.Amount, req.Amount-owed)
		}

		if err := balance.ApplyConsume(req.Amount, s.timeProvider); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		result = &usecase.ConsumeResult{
			NewBalance:     balance.Balance,
			BatchesDebited: debits,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Credits consumed", map[string]any{
		"user_id":         req.UserID,
		"amount":          req.Amount,
		"batches_debited": len(result.BatchesDebited),
		"new_balance":     result.NewBalance,
	})
	return result, nil
}
