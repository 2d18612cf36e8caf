package credits

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// GrantCredits credits the user with a new batch and appends the matching
// ledger entry, all inside one atomic unit of work.
//
// When req.SourceRef is set and an entry already carries that reference the
// call is an idempotent replay: the prior result is returned and nothing is
// written. This is what makes at-least-once webhook delivery safe.
func (s *Service) GrantCredits(ctx context.Context, req usecase.GrantRequest) (*usecase.GrantResult, error) {
	if err := s.validator.ValidateGrant(req); err != nil {
		return nil, err
	}

	var result *usecase.GrantResult
	err := s.inUnitOfWork(ctx, func(txCtx context.Context) error {
		transactions := s.uow.GetTransactionRepository(txCtx)

		if req.SourceRef != "" {
			prior, err := transactions.GetBySourceRef(txCtx, req.SourceRef)
			if err == nil {
				result = replayResult(prior)
				return nil
			}
			if !errors.Is(err, errs.ErrTransactionNotFound) {
				return err
			}
		}

		balance, err := s.lockBalance(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if err := s.requireUnfrozen(balance, "grant"); err != nil {
			return err
		}

		batch, err := entity.NewCreditsBatch(
			newID(), req.UserID, req.Amount, req.SourceType, req.ExpiresAt, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetBatchRepository(txCtx).Create(txCtx, batch); err != nil {
			return err
		}

		txn, err := entity.NewCreditsTransaction(
			newID(), req.UserID, req.TransactionType, req.Amount,
			balance.Balance+req.Amount, s.timeProvider)
		if err != nil {
			return err
		}
		txn.BatchID = &batch.ID
		txn.Description = req.Description
		txn.Metadata = req.Metadata
		if req.SourceRef != "" {
			txn.SourceRef = &req.SourceRef
		}
		if err := transactions.Create(txCtx, txn); err != nil {
			return err
		}

		if err := balance.ApplyGrant(req.Amount, s.timeProvider); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		result = &usecase.GrantResult{
			BatchID:    batch.ID,
			NewBalance: balance.Balance,
		}
		return nil
	})

	// Two deliveries of the same webhook can race past the pre-check; the
	// unique index on source_ref makes exactly one insert win. The loser
	// rolled back, so resolve it to the winner's result.
	if err != nil && errs.IsDuplicateSourceRefError(err) && req.SourceRef != "" {
		prior, lookupErr := s.uow.GetTransactionRepository(ctx).GetBySourceRef(ctx, req.SourceRef)
		if lookupErr != nil {
			return nil, fmt.Errorf("grant replay lookup failed: %w", lookupErr)
		}
		return replayResult(prior), nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Credits granted", map[string]any{
		"user_id":     req.UserID,
		"amount":      req.Amount,
		"source_type": req.SourceType,
		"batch_id":    result.BatchID,
		"new_balance": result.NewBalance,
		"replayed":    result.Replayed,
	})
	return result, nil
}

// replayResult rebuilds a grant result from the ledger entry the original
// delivery recorded
func replayResult(prior *entity.CreditsTransaction) *usecase.GrantResult {
	result := &usecase.GrantResult{
		NewBalance: prior.BalanceAfter,
		Replayed:   true,
	}
	if prior.BatchID != nil {
		result.BatchID = *prior.BatchID
	}
	return result
}
