package credits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
)

func TestService_EnsureBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("creates empty balance on first touch", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		balance, err := service.EnsureBalance(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", balance.UserID)
		assert.Equal(t, int64(0), balance.Balance)
		assert.Equal(t, entity.AccountActive, balance.Status)
	})

	t.Run("returns existing balance untouched", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		grantForTest(t, service, "user-1", 500, nil)

		balance, err := service.EnsureBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(500), balance.Balance, "ensure must never reset a balance")
	})

	t.Run("rejects empty user ID", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		_, err := service.EnsureBalance(ctx, "")
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestService_EnsureRegistrationBonus(t *testing.T) {
	ctx := context.Background()

	t.Run("grants the configured bonus on first call only", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		first, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, first.Granted)
		assert.NotEmpty(t, first.BatchID)
		assert.Equal(t, int64(100), first.Balance)

		second, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, second.Granted)
		assert.Equal(t, int64(100), second.Balance)

		balance, err := service.GetBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance.Balance)

		transactions, err := service.GetTransactions(ctx, "user-1", 0, 0)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, entity.TxRegistrationBonus, transactions[0].Type)
	})

	t.Run("stays ungranted after the bonus is spent", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		_, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)

		_, err = service.ConsumeCredits(ctx, usecase.ConsumeRequest{UserID: "user-1", Amount: 100})
		require.NoError(t, err)

		again, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, again.Granted, "spending the bonus must not re-arm it")
		assert.Equal(t, int64(0), again.Balance)
	})

	t.Run("applies the configured validity window", func(t *testing.T) {
		service, clock := newTestService(t, Config{
			RegistrationBonusAmount:       100,
			RegistrationBonusValidityDays: 7,
		})

		result, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, result.Granted)

		batches, err := service.GetActiveBatches(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, batches, 1)
		require.NotNil(t, batches[0].ExpiresAt)
		assert.True(t, batches[0].ExpiresAt.Equal(clock.Now().AddDate(0, 0, 7)))

		clock.Advance(8 * 24 * time.Hour)
		expired, err := service.ProcessExpiredBatches(ctx)
		require.NoError(t, err)
		assert.Len(t, expired, 1)
	})

	t.Run("zero configured amount disables the bonus", func(t *testing.T) {
		service, _ := newTestService(t, Config{RegistrationBonusAmount: 0})

		result, err := service.EnsureRegistrationBonus(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, result.Granted)
	})

	t.Run("rejects a frozen account", func(t *testing.T) {
		service, _ := newTestService(t, defaultTestConfig())

		require.NoError(t, service.FreezeAccount(ctx, "user-1"))

		_, err := service.EnsureRegistrationBonus(ctx, "user-1")
		assert.ErrorIs(t, err, errs.ErrAccountFrozen)
	})
}
