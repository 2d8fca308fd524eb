package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

func TestPrepareForPush(t *testing.T) {
	tests := []struct {
		name   string
		status any
	}{
		{name: "pending", status: "pending"},
		{name: "conflict", status: "conflict"},
		{name: "missing", status: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := models.Record{"id": "1", "title": "X"}
			if tt.status != nil {
				data["syncStatus"] = tt.status
			}
			change := models.SyncChange{ID: "1", Entity: "items", Operation: models.OperationUpdate, Data: data}

			out := PrepareForPush(change)

			assert.Equal(t, "synced", out["syncStatus"])
			assert.Equal(t, "X", out["title"])
			// Исходные данные не изменяются
			assert.Equal(t, tt.status, change.Data["syncStatus"])
		})
	}
}

func TestRecordError(t *testing.T) {
	change := models.SyncChange{ID: "2", Entity: "items", Operation: models.OperationDelete}

	got := RecordError(change, errors.New("boom"), "500")

	assert.Equal(t, models.SyncError{ID: "2", Entity: "items", Operation: models.OperationDelete, Message: "boom", Code: "500"}, got)
}

func TestCheckpoints_Memory(t *testing.T) {
	ctx := context.Background()
	c := NewCheckpoints(nil, "rest")

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	ts := models.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, c.Set(ctx, ts))

	got, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ts.String(), got.String())
}

func TestCheckpoints_Store(t *testing.T) {
	ctx := context.Background()
	ts := models.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	store := &storage.CheckpointStoreMock{
		GetCheckpointFunc: func(ctx context.Context, backend string) (*models.Timestamp, error) {
			return &ts, nil
		},
		SaveCheckpointFunc: func(ctx context.Context, backend string, ts models.Timestamp) error {
			return nil
		},
	}

	c := NewCheckpoints(store, "objectstore")

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, ts.String(), got.String())

	require.NoError(t, c.Set(ctx, ts))

	require.Len(t, store.GetCheckpointCalls(), 1)
	assert.Equal(t, "objectstore", store.GetCheckpointCalls()[0].Backend)
	require.Len(t, store.SaveCheckpointCalls(), 1)
	assert.Equal(t, "objectstore", store.SaveCheckpointCalls()[0].Backend)
}

func TestCheckpoints_StoreError(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("disk full")

	store := &storage.CheckpointStoreMock{
		GetCheckpointFunc: func(ctx context.Context, backend string) (*models.Timestamp, error) {
			return nil, failure
		},
		SaveCheckpointFunc: func(ctx context.Context, backend string, ts models.Timestamp) error {
			return failure
		},
	}

	c := NewCheckpoints(store, "rest")

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, failure)

	err = c.Set(ctx, models.NewTimestamp(time.Now()))
	assert.ErrorIs(t, err, failure)
}
