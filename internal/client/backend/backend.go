// Package backend defines the contract every remote sync integration implements.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

var (
	// ErrConnection indicates that Connect could not establish a session
	ErrConnection = errors.New("backend connection failed")

	// ErrNotConnected indicates an operation on a backend that is not connected
	ErrNotConnected = errors.New("backend is not connected")
)

//go:generate moq -out backend_mock.go . Backend

// Backend is a remote the engine pushes local changes to and pulls remote changes from.
type Backend interface {
	// Name identifies the backend; also the checkpoint key
	Name() string

	// IsConnected returns the cached connectivity flag without network I/O
	IsConnected() bool

	// Connect establishes session state. On failure the backend stays disconnected
	// and the error wraps ErrConnection.
	Connect(ctx context.Context) error

	// Disconnect tears session state down
	Disconnect(ctx context.Context) error

	// Push sends changes best-effort: per-record failures are collected into
	// the result's Errors and never abort the batch. A returned error means
	// the whole call failed.
	Push(ctx context.Context, changes []models.SyncChange) (*models.SyncResult, error)

	// Pull returns one update change per remote record with updatedAt >= since
	// across all configured tables; nil since means everything.
	Pull(ctx context.Context, since *models.Timestamp) ([]models.SyncChange, error)

	// GetLastSyncTime returns the persisted checkpoint, nil before the first sync
	GetLastSyncTime(ctx context.Context) (*models.Timestamp, error)

	// SetLastSyncTime persists the checkpoint
	SetLastSyncTime(ctx context.Context, ts models.Timestamp) error
}

// PrepareForPush returns a copy of the change data with syncStatus forced to
// synced. pending and conflict are local bookkeeping and never leave the device.
func PrepareForPush(change models.SyncChange) models.Record {
	return change.Data.WithSyncStatus(models.SyncStatusSynced)
}

// RecordError builds the per-record error entry for a failed change.
func RecordError(change models.SyncChange, err error, code string) models.SyncError {
	return models.SyncError{
		ID:        change.ID,
		Entity:    change.Entity,
		Operation: change.Operation,
		Message:   err.Error(),
		Code:      code,
	}
}

// Checkpoints keeps the last sync time of one backend. With a nil store the
// value lives in memory only and a restart triggers a full pull.
type Checkpoints struct {
	store  storage.CheckpointStore
	memory *models.Timestamp
	name   string
	mu     sync.Mutex
}

// NewCheckpoints binds a checkpoint store to a backend name.
func NewCheckpoints(store storage.CheckpointStore, name string) *Checkpoints {
	return &Checkpoints{store: store, name: name}
}

// Get returns the checkpoint or nil.
func (c *Checkpoints) Get(ctx context.Context) (*models.Timestamp, error) {
	if c.store == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.memory == nil {
			return nil, nil
		}
		ts := *c.memory
		return &ts, nil
	}

	ts, err := c.store.GetCheckpoint(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	return ts, nil
}

// Set stores the checkpoint.
func (c *Checkpoints) Set(ctx context.Context, ts models.Timestamp) error {
	if c.store == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.memory = &ts
		return nil
	}

	if err := c.store.SaveCheckpoint(ctx, c.name, ts); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}
