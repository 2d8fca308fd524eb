package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/gophsync/internal/conflict"
	"github.com/iudanet/gophsync/internal/models"
)

// ErrUnknownTable is reported for changes of a table with no registered adapter.
var ErrUnknownTable = errors.New("table is not registered for sync")

//go:generate moq -out changeset_mock.go . ChangeSet

// ChangeSet maps local storage to sync changes and back.
type ChangeSet interface {
	// PendingChanges returns every local record waiting to be pushed
	PendingChanges(ctx context.Context) ([]models.SyncChange, error)

	// MarkChangesSynced marks pushed records as synced
	MarkChangesSynced(ctx context.Context, changes []models.SyncChange) error

	// ApplyRemoteChanges writes pulled changes locally. A nil resolver leaves
	// detected conflicts unresolved and marks the local rows as conflict.
	ApplyRemoteChanges(ctx context.Context, changes []models.SyncChange, resolver conflict.Resolver) (*ApplyResult, error)

	// StoreResolved writes a manually resolved record as is
	StoreResolved(ctx context.Context, entity string, rec models.Record) error
}

// ApplyResult is the outcome of ApplyRemoteChanges.
type ApplyResult struct {
	// Conflicts detected while applying, resolved or not
	Conflicts []models.SyncConflict
	Errors    []models.SyncError
	Applied   int
}

//go:generate moq -out table_adapter_mock.go . TableAdapter

// TableAdapter is the record-level view of one table. *sqlite.Repository
// satisfies it.
type TableAdapter interface {
	Table() string
	PendingRecords(ctx context.Context) ([]models.Record, error)
	FindRecord(ctx context.Context, id string, includeDeleted bool) (models.Record, bool, error)
	UpsertRecord(ctx context.Context, rec models.Record) error
	HardDelete(ctx context.Context, id string) (bool, error)
	MarkSyncedIfUnchanged(ctx context.Context, id, updatedAt string) (bool, error)
	MarkConflict(ctx context.Context, id string) error
}

// Observer is told about every remote timestamp so local writes never go
// backwards relative to the remote.
type Observer interface {
	Observe(ts models.Timestamp)
}

// RepositoryChangeSet implements ChangeSet over registered tables.
type RepositoryChangeSet struct {
	observer Observer
	logger   *slog.Logger
	tables   map[string]TableAdapter
	order    []string
}

var _ ChangeSet = (*RepositoryChangeSet)(nil)

// NewRepositoryChangeSet registers adapters in the given order. observer may be nil.
func NewRepositoryChangeSet(logger *slog.Logger, observer Observer, adapters ...TableAdapter) *RepositoryChangeSet {
	cs := &RepositoryChangeSet{
		observer: observer,
		logger:   logger,
		tables:   make(map[string]TableAdapter, len(adapters)),
	}
	for _, a := range adapters {
		if _, exists := cs.tables[a.Table()]; !exists {
			cs.order = append(cs.order, a.Table())
		}
		cs.tables[a.Table()] = a
	}
	return cs
}

// Tables returns the registered table names.
func (cs *RepositoryChangeSet) Tables() []string {
	return append([]string(nil), cs.order...)
}

// PendingChanges implements ChangeSet. Soft-deleted rows become delete changes.
func (cs *RepositoryChangeSet) PendingChanges(ctx context.Context) ([]models.SyncChange, error) {
	var changes []models.SyncChange

	for _, table := range cs.order {
		records, err := cs.tables[table].PendingRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending %s: %w", table, err)
		}

		for _, rec := range records {
			op := models.OperationUpdate
			if rec.IsDeleted() {
				op = models.OperationDelete
			}
			ts, _ := rec[models.FieldUpdatedAt].(string)
			changes = append(changes, models.SyncChange{
				ID:        rec.ID(),
				Entity:    table,
				Operation: op,
				Data:      rec,
				Timestamp: ts,
			})
		}
	}

	if len(changes) > 0 {
		cs.logger.Debug("Collected pending changes", "count", len(changes))
	}
	return changes, nil
}

// MarkChangesSynced implements ChangeSet. A row edited after it was read for
// the push keeps its pending status.
func (cs *RepositoryChangeSet) MarkChangesSynced(ctx context.Context, changes []models.SyncChange) error {
	var errs []error
	marked := 0

	for _, change := range changes {
		adapter, ok := cs.tables[change.Entity]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownTable, change.Entity))
			continue
		}

		updated, err := adapter.MarkSyncedIfUnchanged(ctx, change.ID, change.Timestamp)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !updated {
			cs.logger.Debug("Record changed during push, keeping pending", "entity", change.Entity, "id", change.ID)
			continue
		}
		marked++
	}

	if marked > 0 {
		cs.logger.Debug("Marked changes as synced", "count", marked)
	}
	return errors.Join(errs...)
}

// ApplyRemoteChanges implements ChangeSet. Per-record failures are collected
// and never abort the batch.
func (cs *RepositoryChangeSet) ApplyRemoteChanges(ctx context.Context, changes []models.SyncChange, resolver conflict.Resolver) (*ApplyResult, error) {
	result := &ApplyResult{}

	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := cs.apply(ctx, change, resolver)
		if c != nil {
			result.Conflicts = append(result.Conflicts, *c)
		}
		if err != nil {
			cs.logger.Error("Failed to apply remote change", "entity", change.Entity, "id", change.ID, "error", err)
			result.Errors = append(result.Errors, models.SyncError{
				ID:        change.ID,
				Entity:    change.Entity,
				Operation: change.Operation,
				Message:   err.Error(),
			})
			continue
		}
		if c != nil && resolver == nil {
			// ожидает ручного разрешения
			continue
		}
		result.Applied++
	}

	return result, nil
}

func (cs *RepositoryChangeSet) apply(ctx context.Context, change models.SyncChange, resolver conflict.Resolver) (*models.SyncConflict, error) {
	adapter, ok := cs.tables[change.Entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, change.Entity)
	}

	remote := change.Data.Clone()
	if remote == nil {
		remote = models.Record{}
	}
	id := remote.ID()
	if id == "" {
		id = change.ID
		remote[models.FieldID] = id
	}

	if ts, ok := remote.UpdatedAt(); ok && cs.observer != nil {
		cs.observer.Observe(ts)
	}

	if change.IsDelete() {
		if _, err := adapter.HardDelete(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	}

	local, found, err := adapter.FindRecord(ctx, id, true)
	if err != nil {
		return nil, err
	}

	// Строка в статусе conflict ждёт ручного решения только при manual
	status := local.SyncStatus()
	unresolved := status == models.SyncStatusPending ||
		(resolver == nil && status == models.SyncStatusConflict)
	if !found || !unresolved {
		return nil, adapter.UpsertRecord(ctx, remote.WithSyncStatus(models.SyncStatusSynced))
	}

	c := &models.SyncConflict{
		ID:              id,
		Entity:          change.Entity,
		LocalData:       local,
		RemoteData:      remote,
		LocalTimestamp:  stringField(local, models.FieldUpdatedAt),
		RemoteTimestamp: stringField(remote, models.FieldUpdatedAt),
	}
	if c.RemoteTimestamp == "" {
		c.RemoteTimestamp = change.Timestamp
	}

	if resolver == nil {
		cs.logger.Info("Conflict queued for manual resolution", "entity", change.Entity, "id", id)
		return c, adapter.MarkConflict(ctx, id)
	}

	resolved, err := resolver.Resolve(ctx, *c)
	if err != nil {
		return c, fmt.Errorf("failed to resolve conflict: %w", err)
	}
	cs.logger.Info("Conflict resolved", "entity", change.Entity, "id", id)

	return c, adapter.UpsertRecord(ctx, resolved.WithSyncStatus(models.SyncStatusSynced))
}

// StoreResolved implements ChangeSet.
func (cs *RepositoryChangeSet) StoreResolved(ctx context.Context, entity string, rec models.Record) error {
	adapter, ok := cs.tables[entity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, entity)
	}
	return adapter.UpsertRecord(ctx, rec)
}

func stringField(r models.Record, field string) string {
	s, _ := r[field].(string)
	return s
}
