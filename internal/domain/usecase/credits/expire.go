package credits

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// ProcessExpiredBatches scans for active batches whose expiry has passed and
// zeroes them out, forfeiting whatever credits remain. Each batch is handled
// in its own unit of work scoped to the owning user's balance lock, so the
// sweeper competes with grants and consumes one user at a time and a failure
// on one batch cannot roll back the rest of the pass.
//
// The sweep is idempotent: a batch already depleted, already expired or
// raced to zero by a concurrent consume is skipped.
func (s *Service) ProcessExpiredBatches(ctx context.Context) ([]usecase.ExpiredBatch, error) {
	now := s.timeProvider.Now()

	candidates, err := s.uow.GetBatchRepository(ctx).ListExpiredCandidates(ctx, now)
	if err != nil {
		return nil, err
	}

	expired := make([]usecase.ExpiredBatch, 0, len(candidates))
	var sweepErrs []error

	for _, candidate := range candidates {
		var swept *usecase.ExpiredBatch
		err := s.inUnitOfWork(ctx, func(txCtx context.Context) error {
			balance, err := s.lockBalance(txCtx, candidate.UserID)
			if err != nil {
				return err
			}

			// Re-read under the lock; the candidate snapshot may be stale.
			batches := s.uow.GetBatchRepository(txCtx)
			batch, err := batches.GetByID(txCtx, candidate.ID)
			if err != nil {
				return err
			}
			if batch.Status != entity.BatchActive || batch.Remaining == 0 || !batch.IsExpiredAt(now) {
				return nil
			}

			forfeited := batch.Expire(s.timeProvider)
			if err := batches.Update(txCtx, batch); err != nil {
				return err
			}

			txn, err := entity.NewCreditsTransaction(
				newID(), batch.UserID, entity.TxExpiration, forfeited,
				balance.Balance-forfeited, s.timeProvider)
			if err != nil {
				return err
			}
			txn.BatchID = &batch.ID
			txn.Description = "Credits expired"
			if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
				return err
			}

			if err := balance.ApplyExpiration(forfeited, s.timeProvider); err != nil {
				return err
			}
			if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
				return err
			}

			swept = &usecase.ExpiredBatch{
				BatchID:       batch.ID,
				UserID:        batch.UserID,
				ExpiredAmount: forfeited,
			}
			return nil
		})
		if err != nil {
			s.logger.Error("Failed to expire batch", map[string]any{
				"batch_id": candidate.ID,
				"user_id":  candidate.UserID,
				"error":    err.Error(),
			})
			sweepErrs = append(sweepErrs, err)
			continue
		}
		if swept != nil {
			expired = append(expired, *swept)
		}
	}

	if len(expired) > 0 {
		s.logger.Info("Expired batches processed", map[string]any{
			"count": len(expired),
		})
	}
	return expired, errors.Join(sweepErrs...)
}
