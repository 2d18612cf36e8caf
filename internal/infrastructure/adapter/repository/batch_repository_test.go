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

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func newBatchRepo(t *testing.T) *repository.BatchRepository {
	t.Helper()
	conn := database.NewTestConnection(t)
	return repository.NewBatchRepository(conn.DB, logger.NewNoopLogger())
}

func makeBatch(t *testing.T, id string, expiresAt *time.Time) *entity.CreditsBatch {
	t.Helper()
	batch, err := entity.NewCreditsBatch(id, "user-1", 100, entity.SourcePurchase, expiresAt, stubClock{now: testTime})
	require.NoError(t, err)
	return batch
}

func TestBatchRepository_ListConsumable(t *testing.T) {
	ctx := context.Background()
	repo := newBatchRepo(t)

	never := makeBatch(t, "batch-never", nil)
	in5 := time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)
	in60 := time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC)
	past := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	soon := makeBatch(t, "batch-soon", &in5)
	late := makeBatch(t, "batch-late", &in60)
	stale := makeBatch(t, "batch-stale", &past)

	for _, b := range []*entity.CreditsBatch{never, late, soon, stale} {
		require.NoError(t, repo.Create(ctx, b))
	}

	batches, err := repo.ListConsumable(ctx, "user-1", testTime)

	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "batch-soon", batches[0].ID, "soonest expiry is drawn first")
	assert.Equal(t, "batch-late", batches[1].ID)
	assert.Equal(t, "batch-never", batches[2].ID, "never-expiring credits are drawn last")
}

func TestBatchRepository_ListConsumable_SkipsDrained(t *testing.T) {
	ctx := context.Background()
	repo := newBatchRepo(t)

	drained := makeBatch(t, "batch-drained", nil)
	require.NoError(t, drained.Debit(100, stubClock{now: testTime}))
	live := makeBatch(t, "batch-live", nil)

	require.NoError(t, repo.Create(ctx, drained))
	require.NoError(t, repo.Create(ctx, live))

	batches, err := repo.ListConsumable(ctx, "user-1", testTime)

	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "batch-live", batches[0].ID)
}

func TestBatchRepository_ListExpiredCandidates(t *testing.T) {
	ctx := context.Background()
	repo := newBatchRepo(t)

	past := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	future := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	expired := makeBatch(t, "batch-expired", &past)
	pending := makeBatch(t, "batch-pending", &future)
	everlasting := makeBatch(t, "batch-everlasting", nil)

	for _, b := range []*entity.CreditsBatch{expired, pending, everlasting} {
		require.NoError(t, repo.Create(ctx, b))
	}

	candidates, err := repo.ListExpiredCandidates(ctx, testTime)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "batch-expired", candidates[0].ID)
}

func TestBatchRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newBatchRepo(t)

	batch := makeBatch(t, "batch-1", nil)
	require.NoError(t, repo.Create(ctx, batch))

	require.NoError(t, batch.Debit(40, stubClock{now: testTime.Add(time.Minute)}))
	require.NoError(t, repo.Update(ctx, batch))

	stored, err := repo.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), stored.Remaining)
	assert.Equal(t, int64(100), stored.Amount)
	assert.Equal(t, entity.BatchActive, stored.Status)
}

func TestBatchRepository_GetByID_NotFound(t *testing.T) {
	repo := newBatchRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrBatchNotFound)
}
