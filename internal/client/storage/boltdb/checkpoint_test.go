package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

// createTestStorage создает временное BoltDB хранилище
func createTestStorage(t *testing.T) *Storage {
	dbPath := filepath.Join(t.TempDir(), "checkpoint_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSaveAndGetCheckpoint(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Изначально checkpoint отсутствует
	got, err := store.GetCheckpoint(ctx, "rest")
	require.NoError(t, err)
	assert.Nil(t, got)

	expected := models.NewTimestamp(time.Date(2024, 3, 4, 5, 6, 7, 890_000_000, time.UTC))
	require.NoError(t, store.SaveCheckpoint(ctx, "rest", expected))

	got, err = store.GetCheckpoint(ctx, "rest")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, expected.String(), got.String())

	// Checkpoint другого backend не затронут
	other, err := store.GetCheckpoint(ctx, "objectstore")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSaveCheckpoint_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first := models.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := models.NewTimestamp(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveCheckpoint(ctx, "rest", first))
	require.NoError(t, store.SaveCheckpoint(ctx, "rest", second))

	got, err := store.GetCheckpoint(ctx, "rest")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.String(), got.String())
}

func TestCheckpoint_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ts := models.NewTimestamp(time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC))

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveCheckpoint(ctx, "rest", ts))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetCheckpoint(ctx, "rest")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ts.String(), got.String())
}

func TestDeleteCheckpoint(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveCheckpoint(ctx, "rest", models.NewTimestamp(time.Now())))
	require.NoError(t, store.DeleteCheckpoint(ctx, "rest"))

	got, err := store.GetCheckpoint(ctx, "rest")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetCheckpoint_Corrupted(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCheckpoints).Put([]byte("rest"), []byte("not a time"))
	})
	require.NoError(t, err)

	_, err = store.GetCheckpoint(ctx, "rest")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted checkpoint")
}

func TestCheckpoint_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Удаляем bucket напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketCheckpoints)
	})
	require.NoError(t, err)

	_, err = store.GetCheckpoint(ctx, "rest")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "checkpoints bucket not found")

	err = store.SaveCheckpoint(ctx, "rest", models.NewTimestamp(time.Now()))
	assert.Error(t, err)
}

func TestCheckpoint_Closed(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.GetCheckpoint(ctx, "rest")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.SaveCheckpoint(ctx, "rest", models.NewTimestamp(time.Now()))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
