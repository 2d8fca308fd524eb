// Package objectstore implements the sync backend on top of an S3-compatible
// bucket: one JSON object per record.
package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"

	"github.com/iudanet/gophsync/internal/client/backend"
	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
)

// Name is the backend name and checkpoint key.
const Name = "objectstore"

const objectExt = ".json"

// Config selects the bucket layout.
type Config struct {
	Bucket string
	Prefix string
	Tables []string
	// CreateBucket создает бакет при Connect, если его нет
	CreateBucket bool
}

// Backend stores records as objects.
type Backend struct {
	store       ObjectStore
	checkpoints *backend.Checkpoints
	logger      *slog.Logger
	cfg         Config
	connected   atomic.Bool
}

var _ backend.Backend = (*Backend)(nil)

// New creates an object-store backend.
func New(store ObjectStore, cfg Config, checkpoints storage.CheckpointStore, logger *slog.Logger) *Backend {
	if len(cfg.Tables) == 0 {
		cfg.Tables = []string{models.ItemsTable}
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")

	return &Backend{
		store:       store,
		cfg:         cfg,
		checkpoints: backend.NewCheckpoints(checkpoints, Name),
		logger:      logger,
	}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return Name }

// IsConnected implements backend.Backend.
func (b *Backend) IsConnected() bool { return b.connected.Load() }

// Connect verifies the bucket exists.
func (b *Backend) Connect(ctx context.Context) error {
	b.logger.Info("Connecting to object store", "bucket", b.cfg.Bucket)

	exists, err := b.store.BucketExists(ctx, b.cfg.Bucket)
	if err != nil {
		b.connected.Store(false)
		return fmt.Errorf("%w: %w", backend.ErrConnection, err)
	}

	if !exists {
		if !b.cfg.CreateBucket {
			b.connected.Store(false)
			return fmt.Errorf("%w: bucket %q does not exist", backend.ErrConnection, b.cfg.Bucket)
		}
		if err := b.store.MakeBucket(ctx, b.cfg.Bucket); err != nil {
			b.connected.Store(false)
			return fmt.Errorf("%w: failed to create bucket: %w", backend.ErrConnection, err)
		}
	}

	b.connected.Store(true)
	return nil
}

// Disconnect implements backend.Backend.
func (b *Backend) Disconnect(ctx context.Context) error {
	b.connected.Store(false)
	return nil
}

// Push writes or removes one object per change.
func (b *Backend) Push(ctx context.Context, changes []models.SyncChange) (*models.SyncResult, error) {
	result := models.NewSyncResult()

	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := b.objectKey(change.Entity, change.ID)
		var err error
		if change.IsDelete() {
			err = b.store.RemoveObject(ctx, b.cfg.Bucket, key)
		} else {
			var data []byte
			data, err = json.Marshal(backend.PrepareForPush(change))
			if err == nil {
				err = b.store.PutObject(ctx, b.cfg.Bucket, key, data)
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.Error("Push failed", "key", key, "error", err)
			result.Errors = append(result.Errors, backend.RecordError(change, err, ""))
			continue
		}
		result.PushedCount++
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

// Pull lists every object of the configured tables and keeps the ones with
// updatedAt >= since.
func (b *Backend) Pull(ctx context.Context, since *models.Timestamp) ([]models.SyncChange, error) {
	changes := []models.SyncChange{}

	for _, table := range b.cfg.Tables {
		tableChanges, err := b.pullTable(ctx, table, since)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.Error("Pull failed for table", "table", table, "error", err)
			continue
		}
		changes = append(changes, tableChanges...)
	}

	return changes, nil
}

func (b *Backend) pullTable(ctx context.Context, table string, since *models.Timestamp) ([]models.SyncChange, error) {
	keys, err := b.store.ListObjects(ctx, b.cfg.Bucket, b.tablePrefix(table))
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	var changes []models.SyncChange
	for _, key := range keys {
		if !strings.HasSuffix(key, objectExt) {
			continue
		}

		data, err := b.store.ReadObject(ctx, b.cfg.Bucket, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		rec, err := models.DecodeRecord(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}

		updatedAt, ok := rec.UpdatedAt()
		if since != nil && (!ok || updatedAt.Before(since.Time)) {
			continue
		}

		id := rec.ID()
		if id == "" {
			id = strings.TrimSuffix(path.Base(key), objectExt)
		}
		ts, _ := rec[models.FieldUpdatedAt].(string)
		changes = append(changes, models.SyncChange{
			ID:        id,
			Entity:    table,
			Operation: models.OperationUpdate,
			Data:      rec,
			Timestamp: ts,
		})
	}

	return changes, nil
}

// GetLastSyncTime implements backend.Backend.
func (b *Backend) GetLastSyncTime(ctx context.Context) (*models.Timestamp, error) {
	return b.checkpoints.Get(ctx)
}

// SetLastSyncTime implements backend.Backend.
func (b *Backend) SetLastSyncTime(ctx context.Context, ts models.Timestamp) error {
	return b.checkpoints.Set(ctx, ts)
}

func (b *Backend) tablePrefix(table string) string {
	if b.cfg.Prefix == "" {
		return table + "/"
	}
	return b.cfg.Prefix + "/" + table + "/"
}

func (b *Backend) objectKey(table, id string) string {
	return b.tablePrefix(table) + id + objectExt
}
