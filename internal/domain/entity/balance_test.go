package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
)

func TestNewCreditsBalance(t *testing.T) {
	clock := newFixedClock()

	t.Run("creates empty active balance", func(t *testing.T) {
		balance, err := NewCreditsBalance("user-1", clock)

		require.NoError(t, err)
		assert.Equal(t, "user-1", balance.UserID)
		assert.Equal(t, int64(0), balance.Balance)
		assert.Equal(t, int64(0), balance.TotalEarned)
		assert.Equal(t, int64(0), balance.TotalSpent)
		assert.Equal(t, AccountActive, balance.Status)
		assert.Equal(t, clock.now, balance.CreatedAt)
		assert.False(t, balance.IsFrozen())
	})

	t.Run("rejects empty user ID", func(t *testing.T) {
		balance, err := NewCreditsBalance("", clock)

		assert.Nil(t, balance)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestCreditsBalance_ApplyGrant(t *testing.T) {
	clock := newFixedClock()

	t.Run("credits balance and lifetime earned", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)

		require.NoError(t, balance.ApplyGrant(500, clock))
		require.NoError(t, balance.ApplyGrant(300, clock))

		assert.Equal(t, int64(800), balance.Balance)
		assert.Equal(t, int64(800), balance.TotalEarned)
		assert.Equal(t, int64(0), balance.TotalSpent)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)

		assert.ErrorIs(t, balance.ApplyGrant(0, clock), errs.ErrInvalidAmount)
		assert.ErrorIs(t, balance.ApplyGrant(-10, clock), errs.ErrInvalidAmount)
		assert.Equal(t, int64(0), balance.Balance)
	})
}

func TestCreditsBalance_ApplyConsume(t *testing.T) {
	clock := newFixedClock()

	t.Run("debits balance and lifetime spent", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)
		require.NoError(t, balance.ApplyGrant(100, clock))

		require.NoError(t, balance.ApplyConsume(60, clock))

		assert.Equal(t, int64(40), balance.Balance)
		assert.Equal(t, int64(100), balance.TotalEarned)
		assert.Equal(t, int64(60), balance.TotalSpent)
	})

	t.Run("rejects consume beyond balance", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)
		require.NoError(t, balance.ApplyGrant(50, clock))

		err := balance.ApplyConsume(51, clock)

		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, int64(50), balance.Balance)
		assert.Equal(t, int64(0), balance.TotalSpent)
	})

	t.Run("allows consuming the exact balance", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)
		require.NoError(t, balance.ApplyGrant(50, clock))

		require.NoError(t, balance.ApplyConsume(50, clock))
		assert.Equal(t, int64(0), balance.Balance)
	})
}

func TestCreditsBalance_ApplyExpiration(t *testing.T) {
	clock := newFixedClock()

	t.Run("removes forfeited credits without counting them as spent", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)
		require.NoError(t, balance.ApplyGrant(100, clock))

		require.NoError(t, balance.ApplyExpiration(100, clock))

		assert.Equal(t, int64(0), balance.Balance)
		assert.Equal(t, int64(100), balance.TotalEarned)
		assert.Equal(t, int64(0), balance.TotalSpent)
	})

	t.Run("refuses to drive the balance negative", func(t *testing.T) {
		balance, _ := NewCreditsBalance("user-1", clock)
		require.NoError(t, balance.ApplyGrant(30, clock))

		err := balance.ApplyExpiration(31, clock)

		assert.ErrorIs(t, err, errs.ErrNegativeBalance)
		assert.Equal(t, int64(30), balance.Balance)
	})
}

func TestCreditsBalance_SetStatus(t *testing.T) {
	clock := newFixedClock()
	balance, _ := NewCreditsBalance("user-1", clock)

	later := &fixedClock{now: clock.now.Add(time.Hour)}
	balance.SetStatus(AccountFrozen, later)

	assert.True(t, balance.IsFrozen())
	assert.Equal(t, later.now, balance.UpdatedAt)

	balance.SetStatus(AccountActive, later)
	assert.False(t, balance.IsFrozen())
}
