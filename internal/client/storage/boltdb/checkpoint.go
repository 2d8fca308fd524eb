package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

var _ storage.CheckpointStore = (*Storage)(nil)

// SaveCheckpoint saves the time of the last successful sync with the backend
func (s *Storage) SaveCheckpoint(ctx context.Context, backend string, ts models.Timestamp) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCheckpoints)
		if bucket == nil {
			return fmt.Errorf("checkpoints bucket not found")
		}

		// Храним строку фиксированной ширины, как и в SQLite
		if err := bucket.Put([]byte(backend), []byte(ts.String())); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}

		return nil
	})
}

// GetCheckpoint retrieves the time of the last successful sync with the backend
// Returns nil if no sync has been performed yet
func (s *Storage) GetCheckpoint(ctx context.Context, backend string) (*models.Timestamp, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var checkpoint *models.Timestamp

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCheckpoints)
		if bucket == nil {
			return fmt.Errorf("checkpoints bucket not found")
		}

		raw := bucket.Get([]byte(backend))
		if raw == nil {
			// Первая синхронизация
			return nil
		}

		ts, err := models.ParseTimestamp(string(raw))
		if err != nil {
			return fmt.Errorf("corrupted checkpoint: %w", err)
		}
		checkpoint = &ts
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	return checkpoint, nil
}

// DeleteCheckpoint forgets the checkpoint so the next pull is a full sync.
func (s *Storage) DeleteCheckpoint(ctx context.Context, backend string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCheckpoints)
		if bucket == nil {
			return fmt.Errorf("checkpoints bucket not found")
		}
		return bucket.Delete([]byte(backend))
	})
}
