package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest         = 4000
	CodeInsufficientCredits    = 4001
	CodeInvalidAmount          = 4002
	CodeInvalidUserID          = 4003
	CodeInvalidSourceType      = 4004
	CodeInvalidTransactionType = 4005
	CodeConstraintViolation    = 4006
	CodeBalanceNotFound        = 4040
	CodeBatchNotFound          = 4041
	CodeTransactionNotFound    = 4042
	CodeAccountFrozen          = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidRequest is returned when the request payload cannot be parsed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInsufficientCredits is returned when a consume requests more credits than available
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAccountFrozen is returned when a mutating operation targets a frozen account
	ErrAccountFrozen = errors.New("credits account is frozen")

	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID must not be empty")

	// ErrInvalidSourceType is returned when the batch source is not one of the allowed values
	ErrInvalidSourceType = errors.New("invalid batch source type")

	// ErrInvalidTransactionType is returned when the transaction type is not one of the allowed values
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrNegativeBalance is returned when an operation would leave the balance negative
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrBatchNotConsumable is returned when debiting a batch that is depleted or expired
	ErrBatchNotConsumable = errors.New("batch is not consumable")

	// ErrDuplicateSourceRef is returned by storage when a transaction with the
	// same source reference already exists; the grant path resolves it as a replay
	ErrDuplicateSourceRef = errors.New("transaction with this source reference already exists")

	// ErrBalanceNotFound is returned when no balance row exists for the user
	ErrBalanceNotFound = errors.New("credits balance not found")

	// ErrBatchNotFound is returned when the requested batch doesn't exist
	ErrBatchNotFound = errors.New("credits batch not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInsufficientCredits):
		return CodeInsufficientCredits
	case errors.Is(err, ErrAccountFrozen):
		return CodeAccountFrozen
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeBalance):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidSourceType):
		return CodeInvalidSourceType
	case errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidTransactionType
	case errors.Is(err, ErrBalanceNotFound):
		return CodeBalanceNotFound
	case errors.Is(err, ErrBatchNotFound):
		return CodeBatchNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrDuplicateSourceRef):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// InsufficientCreditsError provides detailed information for a rejected consume
type InsufficientCreditsError struct {
	UserID    string
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for user %s: requested %d, available %d",
		e.UserID, e.Requested, e.Available)
}

// Is checks if the target error is an ErrInsufficientCredits
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credits",
		"user_id":    e.UserID,
		"requested":  e.Requested,
		"available":  e.Available,
		"error_code": CodeInsufficientCredits,
	}
}

// NewInsufficientCreditsError creates a new detailed insufficient credits error
func NewInsufficientCreditsError(userID string, requested, available int64) error {
	return &InsufficientCreditsError{
		UserID:    userID,
		Requested: requested,
		Available: available,
	}
}

// AccountFrozenError identifies which frozen account rejected an operation
type AccountFrozenError struct {
	UserID    string
	Operation string
}

// Error implements the error interface
func (e *AccountFrozenError) Error() string {
	return fmt.Sprintf("account %s is frozen: %s rejected", e.UserID, e.Operation)
}

// Is checks if the target error is an ErrAccountFrozen
func (e *AccountFrozenError) Is(target error) bool {
	return target == ErrAccountFrozen
}

// LogFields returns a map of fields for structured logging
func (e *AccountFrozenError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "account_frozen",
		"user_id":    e.UserID,
		"operation":  e.Operation,
		"error_code": CodeAccountFrozen,
	}
}

// NewAccountFrozenError creates a new detailed frozen account error
func NewAccountFrozenError(userID, operation string) error {
	return &AccountFrozenError{
		UserID:    userID,
		Operation: operation,
	}
}

// LedgerError wraps a failure inside one atomic ledger unit of work
type LedgerError struct {
	UserID    string
	Operation string
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger operation %s failed for user %s: %v", e.Operation, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger operation error
func NewLedgerError(userID, operation string, err error) error {
	return &LedgerError{
		UserID:    userID,
		Operation: operation,
		Err:       err,
	}
}

// IsInsufficientCreditsError checks if the error is related to insufficient credits
func IsInsufficientCreditsError(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsAccountFrozenError checks if the error is a frozen account rejection
func IsAccountFrozenError(err error) bool {
	return errors.Is(err, ErrAccountFrozen)
}

// IsDuplicateSourceRefError checks if the error is a duplicated source reference
func IsDuplicateSourceRefError(err error) bool {
	return errors.Is(err, ErrDuplicateSourceRef)
}

// IsValidationError checks if the error is an input validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidSourceType) ||
		errors.Is(err, ErrInvalidTransactionType)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBalanceNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
