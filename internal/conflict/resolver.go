// Package conflict resolves records mutated both locally and remotely
// since the last sync.
package conflict

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/iudanet/gophsync/internal/models"
)

var (
	// ErrInvalidConflict indicates that a conflict is missing one of its sides
	ErrInvalidConflict = errors.New("conflict must carry both local and remote data")

	// ErrConflictNotFound indicates that no queued conflict has the given id
	ErrConflictNotFound = errors.New("conflict not found")
)

// Resolver turns a detected (local, remote) pair into the winning record.
type Resolver interface {
	Resolve(ctx context.Context, c models.SyncConflict) (models.Record, error)
}

// Clock stamps updatedAt on merged records.
type Clock interface {
	Now() models.Timestamp
}

type wallClock struct{}

func (wallClock) Now() models.Timestamp { return models.NewTimestamp(time.Now()) }

// immutableFields are never taken from the remote side during a field merge.
var immutableFields = []string{models.FieldID, models.FieldCreatedAt, models.FieldSyncStatus}

// LastWriteWins picks the side with the later timestamp. Local wins on tie.
type LastWriteWins struct{}

// Resolve implements Resolver.
func (LastWriteWins) Resolve(_ context.Context, c models.SyncConflict) (models.Record, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	if localIsNewer(c) {
		return c.LocalData.Clone(), nil
	}
	return c.RemoteData.Clone(), nil
}

// LocalWins always keeps the local record.
type LocalWins struct{}

// Resolve implements Resolver.
func (LocalWins) Resolve(_ context.Context, c models.SyncConflict) (models.Record, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	return c.LocalData.Clone(), nil
}

// RemoteWins always takes the remote record.
type RemoteWins struct{}

// Resolve implements Resolver.
func (RemoteWins) Resolve(_ context.Context, c models.SyncConflict) (models.Record, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	return c.RemoteData.Clone(), nil
}

// FieldMerge starts from the local record and decides every differing
// remote field separately.
type FieldMerge struct {
	// Clock stamps updatedAt on the result. Wall clock when nil.
	Clock Clock
	// Fallback decides fields outside Mergeable: local-wins, remote-wins,
	// anything else is last-write-wins.
	Fallback models.ConflictStrategy
	// Mergeable fields keep the local value.
	Mergeable []string
}

// Resolve implements Resolver.
func (m FieldMerge) Resolve(_ context.Context, c models.SyncConflict) (models.Record, error) {
	if err := validate(c); err != nil {
		return nil, err
	}

	merged := c.LocalData.Clone()
	localNewer := localIsNewer(c)

	for key, remoteValue := range c.RemoteData {
		if slices.Contains(immutableFields, key) {
			continue
		}

		localValue := c.LocalData[key]
		if models.JSONEqual(localValue, remoteValue) {
			continue
		}

		// TODO: per-field merge functions for mergeable fields (text append, set union)
		if slices.Contains(m.Mergeable, key) {
			merged[key] = localValue
			continue
		}

		switch m.Fallback {
		case models.StrategyLocalWins:
			merged[key] = localValue
		case models.StrategyRemoteWins:
			merged[key] = remoteValue
		default:
			if localNewer {
				merged[key] = localValue
			} else {
				merged[key] = remoteValue
			}
		}
	}

	clk := m.Clock
	if clk == nil {
		clk = wallClock{}
	}
	merged[models.FieldUpdatedAt] = clk.Now().String()

	return merged, nil
}

// Option configures the resolver built by NewResolver.
type Option func(*FieldMerge)

// WithFallback sets the per-field fallback strategy of field-merge.
func WithFallback(s models.ConflictStrategy) Option {
	return func(m *FieldMerge) { m.Fallback = s }
}

// WithMergeableFields sets the fields field-merge always keeps local.
func WithMergeableFields(fields ...string) Option {
	return func(m *FieldMerge) { m.Mergeable = append(m.Mergeable, fields...) }
}

// WithClock sets the clock field-merge uses for updatedAt.
func WithClock(c Clock) Option {
	return func(m *FieldMerge) { m.Clock = c }
}

// NewResolver maps a strategy to its resolver. Unknown, empty and manual
// strategies get last-write-wins; manual conflicts are queued by the caller
// before any resolver runs.
func NewResolver(strategy models.ConflictStrategy, opts ...Option) Resolver {
	switch strategy {
	case models.StrategyLocalWins:
		return LocalWins{}
	case models.StrategyRemoteWins:
		return RemoteWins{}
	case models.StrategyFieldMerge:
		m := FieldMerge{Fallback: models.StrategyLastWriteWins}
		for _, opt := range opts {
			opt(&m)
		}
		return m
	default:
		return LastWriteWins{}
	}
}

func validate(c models.SyncConflict) error {
	if c.LocalData == nil || c.RemoteData == nil {
		return ErrInvalidConflict
	}
	return nil
}

// localIsNewer compares the conflict timestamps as epoch milliseconds.
// A side whose timestamp does not parse loses; if neither parses local wins.
func localIsNewer(c models.SyncConflict) bool {
	local, errL := models.ParseTimestamp(c.LocalTimestamp)
	remote, errR := models.ParseTimestamp(c.RemoteTimestamp)

	switch {
	case errL != nil && errR != nil:
		return true
	case errL != nil:
		return false
	case errR != nil:
		return true
	}

	return local.UnixMilli() >= remote.UnixMilli()
}
