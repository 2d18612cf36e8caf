package credits

import (
	"fmt"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

// Validator rejects malformed ledger requests before any I/O happens
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUserID checks that a caller-supplied user ID is usable
func (v *Validator) ValidateUserID(userID string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}
	return nil
}

// ValidateGrant validates all fields of a grant request
func (v *Validator) ValidateGrant(req usecase.GrantRequest) error {
	if err := v.ValidateUserID(req.UserID); err != nil {
		return err
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidAmount, req.Amount)
	}

	if !entity.IsValidBatchSource(string(req.SourceType)) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidSourceType, req.SourceType)
	}

	if !entity.IsValidTransactionType(string(req.TransactionType)) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, req.TransactionType)
	}

	// Consumption and expiration entries are produced by the ledger itself,
	// never by a grant caller.
	if req.TransactionType == entity.TxConsumption || req.TransactionType == entity.TxExpiration {
		return fmt.Errorf("%w: %q is not grantable", errs.ErrInvalidTransactionType, req.TransactionType)
	}

	return nil
}

// ValidateConsume validates all fields of a consume request
func (v *Validator) ValidateConsume(req usecase.ConsumeRequest) error {
	if err := v.ValidateUserID(req.UserID); err != nil {
		return err
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidAmount, req.Amount)
	}

	return nil
}

// ValidatePage normalizes pagination input for transaction listings
func (v *Validator) ValidatePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)
