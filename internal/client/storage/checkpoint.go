package storage

import (
	"context"

	"github.com/iudanet/gophsync/internal/models"
)

//go:generate moq -out checkpoint_mock.go . CheckpointStore

// CheckpointStore persists the last successful sync time per backend
type CheckpointStore interface {
	// SaveCheckpoint saves the time of the last successful sync with the backend
	SaveCheckpoint(ctx context.Context, backend string, ts models.Timestamp) error

	// GetCheckpoint retrieves the time of the last successful sync with the backend
	// Returns nil if no sync has been performed yet
	GetCheckpoint(ctx context.Context, backend string) (*models.Timestamp, error)
}
