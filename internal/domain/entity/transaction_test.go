package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
)

func TestNewCreditsTransaction(t *testing.T) {
	clock := newFixedClock()

	t.Run("creates ledger entry", func(t *testing.T) {
		txn, err := NewCreditsTransaction("tx-1", "user-1", TxPurchase, 500, 500, clock)

		require.NoError(t, err)
		assert.Equal(t, "tx-1", txn.ID)
		assert.Equal(t, TxPurchase, txn.Type)
		assert.Equal(t, int64(500), txn.Amount)
		assert.Equal(t, int64(500), txn.BalanceAfter)
		assert.Nil(t, txn.BatchID)
		assert.Nil(t, txn.SourceRef)
		assert.Equal(t, clock.now, txn.CreatedAt)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewCreditsTransaction("tx-1", "", TxPurchase, 500, 500, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewCreditsTransaction("tx-1", "user-1", TxPurchase, 0, 0, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewCreditsTransaction("tx-1", "user-1", TransactionType("gift"), 500, 500, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)

		_, err = NewCreditsTransaction("tx-1", "user-1", TxPurchase, 500, -1, clock)
		assert.ErrorIs(t, err, errs.ErrNegativeBalance)
	})
}

func TestTransactionType_Direction(t *testing.T) {
	credits := []TransactionType{TxRegistrationBonus, TxAdminGrant, TxMonthlyGrant, TxPurchase, TxRefund}
	for _, txType := range credits {
		assert.Equal(t, int64(1), txType.Direction(), "type %s should credit", txType)
	}

	debits := []TransactionType{TxConsumption, TxExpiration}
	for _, txType := range debits {
		assert.Equal(t, int64(-1), txType.Direction(), "type %s should debit", txType)
	}
}

func TestCreditsTransaction_SignedAmount(t *testing.T) {
	clock := newFixedClock()

	grant, _ := NewCreditsTransaction("tx-1", "user-1", TxPurchase, 500, 500, clock)
	assert.Equal(t, int64(500), grant.SignedAmount())

	consume, _ := NewCreditsTransaction("tx-2", "user-1", TxConsumption, 200, 300, clock)
	assert.Equal(t, int64(-200), consume.SignedAmount())

	expire, _ := NewCreditsTransaction("tx-3", "user-1", TxExpiration, 300, 0, clock)
	assert.Equal(t, int64(-300), expire.SignedAmount())
}
