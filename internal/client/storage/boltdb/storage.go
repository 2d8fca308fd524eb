// Package boltdb keeps client sync checkpoints in a BoltDB file.
package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// OpenTimeout bounds waiting for the file lock held by another process.
const OpenTimeout = time.Second

var bucketCheckpoints = []byte("checkpoints")

// Storage is the checkpoint database of one client.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the checkpoint database at dbPath.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint db %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCheckpoints)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create checkpoints bucket: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close releases the file lock. Repeated calls are no-ops.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
