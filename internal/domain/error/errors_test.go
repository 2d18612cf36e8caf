package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"InsufficientCredits", ErrInsufficientCredits, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"NegativeBalance", ErrNegativeBalance, 4002},
		{"InvalidUserID", ErrInvalidUserID, 4003},
		{"InvalidSourceType", ErrInvalidSourceType, 4004},
		{"InvalidTransactionType", ErrInvalidTransactionType, 4005},
		{"ConstraintViolation", ErrConstraintViolation, 4006},
		{"DuplicateSourceRef", ErrDuplicateSourceRef, 4006},
		{"BalanceNotFound", ErrBalanceNotFound, 4040},
		{"BatchNotFound", ErrBatchNotFound, 4041},
		{"TransactionNotFound", ErrTransactionNotFound, 4042},
		{"AccountFrozen", ErrAccountFrozen, 4230},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientCreditsError(t *testing.T) {
	err := NewInsufficientCreditsError("user-1", 600, 450)

	expectedMsg := "insufficient credits for user user-1: requested 600, available 450"
	if err.Error() != expectedMsg {
		t.Errorf("Error() = %s, want %s", err.Error(), expectedMsg)
	}

	if !errors.Is(err, ErrInsufficientCredits) {
		t.Errorf("errors.Is(err, ErrInsufficientCredits) = false, want true")
	}
	if !IsInsufficientCreditsError(err) {
		t.Errorf("IsInsufficientCreditsError(err) = false, want true")
	}

	var detailed *InsufficientCreditsError
	if !errors.As(err, &detailed) {
		t.Fatalf("errors.As failed to extract InsufficientCreditsError")
	}
	if detailed.Requested != 600 || detailed.Available != 450 {
		t.Errorf("unexpected detail fields: requested=%d available=%d", detailed.Requested, detailed.Available)
	}

	fields := detailed.LogFields()
	if fields["error_code"] != CodeInsufficientCredits {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInsufficientCredits)
	}
}

func TestAccountFrozenError(t *testing.T) {
	err := NewAccountFrozenError("user-1", "consume")

	expectedMsg := "account user-1 is frozen: consume rejected"
	if err.Error() != expectedMsg {
		t.Errorf("Error() = %s, want %s", err.Error(), expectedMsg)
	}

	if !errors.Is(err, ErrAccountFrozen) {
		t.Errorf("errors.Is(err, ErrAccountFrozen) = false, want true")
	}
	if !IsAccountFrozenError(err) {
		t.Errorf("IsAccountFrozenError(err) = false, want true")
	}
}

func TestLedgerError(t *testing.T) {
	baseErr := ErrConstraintViolation
	err := NewLedgerError("user-1", "grant", baseErr)

	if !errors.Is(err, baseErr) {
		t.Errorf("errors.Is(err, baseErr) = false, want true")
	}

	if ErrorCode(err) != CodeConstraintViolation {
		t.Errorf("ErrorCode(err) = %d, want %d", ErrorCode(err), CodeConstraintViolation)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsValidationError(ErrInvalidAmount) || !IsValidationError(ErrInvalidSourceType) {
		t.Errorf("validation sentinels not recognized as validation errors")
	}
	if IsValidationError(ErrInsufficientCredits) {
		t.Errorf("ErrInsufficientCredits misclassified as a validation error")
	}

	if !IsNotFoundError(ErrBalanceNotFound) || !IsNotFoundError(ErrTransactionNotFound) {
		t.Errorf("not-found sentinels not recognized")
	}

	if !IsDuplicateSourceRefError(fmt.Errorf("insert: %w", ErrDuplicateSourceRef)) {
		t.Errorf("wrapped duplicate source ref not recognized")
	}
}
