package credits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

func TestValidator_ValidateGrant(t *testing.T) {
	v := NewValidator()

	valid := usecase.GrantRequest{
		UserID:          "user-1",
		Amount:          500,
		SourceType:      entity.SourcePurchase,
		TransactionType: entity.TxPurchase,
	}
	assert.NoError(t, v.ValidateGrant(valid))

	t.Run("every source type the ledger accepts", func(t *testing.T) {
		sources := []entity.BatchSource{
			entity.SourceRegistrationBonus,
			entity.SourcePurchase,
			entity.SourceMonthlyGrant,
			entity.SourceBonus,
			entity.SourceAdminGrant,
			entity.SourceRefund,
		}
		for _, source := range sources {
			req := valid
			req.SourceType = source
			assert.NoError(t, v.ValidateGrant(req), "source %s", source)
		}
	})

	t.Run("rejects empty user", func(t *testing.T) {
		req := valid
		req.UserID = ""
		assert.ErrorIs(t, v.ValidateGrant(req), errs.ErrInvalidUserID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		req := valid
		req.Amount = 0
		assert.ErrorIs(t, v.ValidateGrant(req), errs.ErrInvalidAmount)
	})

	t.Run("rejects unknown source type", func(t *testing.T) {
		req := valid
		req.SourceType = entity.BatchSource("lottery")
		assert.ErrorIs(t, v.ValidateGrant(req), errs.ErrInvalidSourceType)
	})

	t.Run("rejects ledger-internal transaction types", func(t *testing.T) {
		for _, txType := range []entity.TransactionType{entity.TxConsumption, entity.TxExpiration} {
			req := valid
			req.TransactionType = txType
			assert.ErrorIs(t, v.ValidateGrant(req), errs.ErrInvalidTransactionType)
		}
	})
}

func TestValidator_ValidateConsume(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateConsume(usecase.ConsumeRequest{UserID: "user-1", Amount: 1}))
	assert.ErrorIs(t, v.ValidateConsume(usecase.ConsumeRequest{UserID: "", Amount: 1}), errs.ErrInvalidUserID)
	assert.ErrorIs(t, v.ValidateConsume(usecase.ConsumeRequest{UserID: "user-1", Amount: 0}), errs.ErrInvalidAmount)
	assert.ErrorIs(t, v.ValidateConsume(usecase.ConsumeRequest{UserID: "user-1", Amount: -7}), errs.ErrInvalidAmount)
}

func TestValidator_ValidatePage(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults applied", 0, 0, defaultPageSize, 0},
		{"negative input normalized", -5, -10, defaultPageSize, 0},
		{"cap enforced", 1000, 0, maxPageSize, 0},
		{"reasonable page kept", 25, 50, 25, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := v.ValidatePage(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
