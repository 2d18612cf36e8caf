package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/repository"
)

func newTransactionRepo(t *testing.T) *repository.TransactionRepository {
	t.Helper()
	conn := database.NewTestConnection(t)
	return repository.NewTransactionRepository(conn.DB, logger.NewNoopLogger())
}

func makeTransaction(t *testing.T, id string, at time.Time) *entity.CreditsTransaction {
	t.Helper()
	txn, err := entity.NewCreditsTransaction(id, "user-1", entity.TxPurchase, 100, 100, stubClock{now: at})
	require.NoError(t, err)
	return txn
}

func TestTransactionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips metadata and source ref", func(t *testing.T) {
		repo := newTransactionRepo(t)

		txn := makeTransaction(t, "tx-1", testTime)
		sourceRef := "payment-abc"
		txn.SourceRef = &sourceRef
		txn.Metadata = map[string]any{"orderId": "ord-1", "quantity": float64(3)}

		require.NoError(t, repo.Create(ctx, txn))

		stored, err := repo.GetBySourceRef(ctx, "payment-abc")
		require.NoError(t, err)
		assert.Equal(t, "tx-1", stored.ID)
		assert.Equal(t, entity.TxPurchase, stored.Type)
		assert.Equal(t, "ord-1", stored.Metadata["orderId"])
		assert.Equal(t, float64(3), stored.Metadata["quantity"])
	})

	t.Run("rejects a second entry with the same source ref", func(t *testing.T) {
		repo := newTransactionRepo(t)

		sourceRef := "payment-abc"
		first := makeTransaction(t, "tx-1", testTime)
		first.SourceRef = &sourceRef
		require.NoError(t, repo.Create(ctx, first))

		second := makeTransaction(t, "tx-2", testTime)
		second.SourceRef = &sourceRef

		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, errs.ErrDuplicateSourceRef)
	})

	t.Run("allows many entries with no source ref", func(t *testing.T) {
		repo := newTransactionRepo(t)

		require.NoError(t, repo.Create(ctx, makeTransaction(t, "tx-1", testTime)))
		require.NoError(t, repo.Create(ctx, makeTransaction(t, "tx-2", testTime)))
	})
}

func TestTransactionRepository_GetBySourceRef_NotFound(t *testing.T) {
	repo := newTransactionRepo(t)

	_, err := repo.GetBySourceRef(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestTransactionRepository_ExistsByUserAndType(t *testing.T) {
	ctx := context.Background()
	repo := newTransactionRepo(t)

	bonus, err := entity.NewCreditsTransaction("tx-1", "user-1", entity.TxRegistrationBonus, 100, 100, stubClock{now: testTime})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, bonus))

	exists, err := repo.ExistsByUserAndType(ctx, "user-1", entity.TxRegistrationBonus)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUserAndType(ctx, "user-1", entity.TxRefund)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByUserAndType(ctx, "user-2", entity.TxRegistrationBonus)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	repo := newTransactionRepo(t)

	for i, id := range []string{"tx-old", "tx-mid", "tx-new"} {
		txn := makeTransaction(t, id, testTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, txn))
	}

	page, err := repo.ListByUser(ctx, "user-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "tx-new", page[0].ID, "newest entry comes first")
	assert.Equal(t, "tx-mid", page[1].ID)

	rest, err := repo.ListByUser(ctx, "user-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "tx-old", rest[0].ID)
}
