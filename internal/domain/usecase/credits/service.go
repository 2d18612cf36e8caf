package credits

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/persistence"
)

// Config holds the tunable policy knobs of the ledger
type Config struct {
	// RegistrationBonusAmount is the number of credits granted on first touch
	RegistrationBonusAmount int64
	// RegistrationBonusValidityDays bounds the bonus lifetime; 0 means the
	// bonus never expires
	RegistrationBonusValidityDays int
}

// Service implements the credits ledger: grants, FIFO consumption,
// expiration sweeping, freeze guard and balance queries. All mutating
// operations for one user serialize on a row lock taken on the user's
// balance row at the start of the unit of work.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	validator    *Validator
	config       Config
}

// NewService creates a new credits ledger service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		validator:    NewValidator(),
		config:       config,
	}
}

// newID generates a primary key for batches and transactions
func newID() string {
	return uuid.NewString()
}

// inUnitOfWork runs fn inside one atomic unit of work. Any error from fn
// rolls back every write made inside it; no partial batch, transaction or
// balance writes ever persist.
func (s *Service) inUnitOfWork(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Warn("Failed to roll back ledger unit of work", map[string]any{
					"error": rbErr.Error(),
				})
			}
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true
	return nil
}

// lockBalance loads the user's balance row under an exclusive row lock,
// creating the row first if the user has never touched credits. The lock is
// held until the surrounding unit of work finishes, which is what serializes
// concurrent mutations against the same user.
func (s *Service) lockBalance(txCtx context.Context, userID string) (*entity.CreditsBalance, error) {
	balances := s.uow.GetBalanceRepository(txCtx)

	balance, err := balances.GetForUpdate(txCtx, userID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, errs.ErrBalanceNotFound) {
		return nil, err
	}

	fresh, err := entity.NewCreditsBalance(userID, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := balances.Create(txCtx, fresh); err != nil {
		// A concurrent first-touch may have created the row between the
		// select and the insert; fall through to locking the winner's row.
		if !errors.Is(err, errs.ErrConstraintViolation) {
			return nil, err
		}
	}

	return balances.GetForUpdate(txCtx, userID)
}

// requireUnfrozen enforces the freeze guard for a mutating operation
func (s *Service) requireUnfrozen(balance *entity.CreditsBalance, operation string) error {
	if balance.IsFrozen() {
		return errs.NewAccountFrozenError(balance.UserID, operation)
	}
	return nil
}

// bonusExpiry computes the registration bonus expiry from config; nil means
// the bonus never expires
func (s *Service) bonusExpiry(now time.Time) *time.Time {
	if s.config.RegistrationBonusValidityDays <= 0 {
		return nil
	}
	expiry := now.AddDate(0, 0, s.config.RegistrationBonusValidityDays)
	return &expiry
}
