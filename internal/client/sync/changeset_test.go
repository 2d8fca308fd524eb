package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/storage/sqlite"
	"github.com/iudanet/gophsync/internal/clock"
	"github.com/iudanet/gophsync/internal/conflict"
	"github.com/iudanet/gophsync/internal/models"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stepSource возвращает время, которое сдвигается на шаг при каждом вызове
func stepSource(start time.Time, step time.Duration) func() time.Time {
	var mu stdsync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(step)
		return t
	}
}

type testEnv struct {
	repo    *sqlite.Repository[models.Item]
	clock   *clock.Clock
	changes *RepositoryChangeSet
}

func setupTestEnv(t *testing.T) *testEnv {
	ctx := context.Background()

	s, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clk := clock.NewWithSource(stepSource(testEpoch, time.Second))
	repo, err := sqlite.NewRepository[models.Item](ctx, s, models.ItemsTable, clk)
	require.NoError(t, err)

	return &testEnv{
		repo:    repo,
		clock:   clk,
		changes: NewRepositoryChangeSet(testLogger(), clk, repo),
	}
}

func remoteItem(id, title, updatedAt string) models.Record {
	return models.Record{
		"id":         id,
		"title":      title,
		"content":    "",
		"priority":   int64(0),
		"createdAt":  "2024-01-01T00:00:00.000Z",
		"updatedAt":  updatedAt,
		"deletedAt":  nil,
		"syncStatus": "synced",
	}
}

func remoteChange(rec models.Record) models.SyncChange {
	ts, _ := rec["updatedAt"].(string)
	return models.SyncChange{
		ID:        rec.ID(),
		Entity:    models.ItemsTable,
		Operation: models.OperationUpdate,
		Data:      rec,
		Timestamp: ts,
	}
}

func TestRepositoryChangeSet_PendingRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	item, err := env.repo.Create(ctx, models.Item{Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, item.SyncStatus)

	pending, err := env.changes.PendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, item.ID, pending[0].ID)
	assert.Equal(t, models.ItemsTable, pending[0].Entity)
	assert.Equal(t, models.OperationUpdate, pending[0].Operation)
	assert.Equal(t, item.UpdatedAt.String(), pending[0].Timestamp)
	assert.Equal(t, "X", pending[0].Data["title"])

	require.NoError(t, env.changes.MarkChangesSynced(ctx, pending))

	pending, err = env.changes.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, found, err := env.repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
}

func TestRepositoryChangeSet_SoftDeleteBecomesDelete(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	item, err := env.repo.Create(ctx, models.Item{Title: "X"})
	require.NoError(t, err)
	deleted, err := env.repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	pending, err := env.changes.PendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.OperationDelete, pending[0].Operation)
	assert.True(t, pending[0].IsDelete())
}

func TestRepositoryChangeSet_MarkSyncedKeepsNewerEdit(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	item, err := env.repo.Create(ctx, models.Item{Title: "X"})
	require.NoError(t, err)

	pending, err := env.changes.PendingChanges(ctx)
	require.NoError(t, err)

	// Запись меняется, пока push в полете
	_, _, err = env.repo.Update(ctx, item.ID, map[string]any{"title": "Y"})
	require.NoError(t, err)

	require.NoError(t, env.changes.MarkChangesSynced(ctx, pending))

	got, _, err := env.repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
	assert.Equal(t, "Y", got.Title)
}

func TestRepositoryChangeSet_MarkSyncedUnknownTable(t *testing.T) {
	env := setupTestEnv(t)

	err := env.changes.MarkChangesSynced(context.Background(), []models.SyncChange{{ID: "1", Entity: "notes"}})
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRepositoryChangeSet_ApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	change := remoteChange(remoteItem("r1", "remote", "2024-02-01T00:00:00.000Z"))

	for i := 0; i < 2; i++ {
		result, err := env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{change}, conflict.LastWriteWins{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Applied)
		assert.Empty(t, result.Conflicts)
		assert.Empty(t, result.Errors)
	}

	n, err := env.repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, found, err := env.repo.FindByID(ctx, "r1", false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "remote", got.Title)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", got.UpdatedAt.String())
}

func TestRepositoryChangeSet_ApplyDelete(t *testing.T) {
	tests := []struct {
		name   string
		change func(id string) models.SyncChange
	}{
		{
			name: "explicit delete",
			change: func(id string) models.SyncChange {
				return models.SyncChange{ID: id, Entity: models.ItemsTable, Operation: models.OperationDelete}
			},
		},
		{
			name: "update carrying deletedAt",
			change: func(id string) models.SyncChange {
				rec := remoteItem(id, "gone", "2024-02-01T00:00:00.000Z")
				rec["deletedAt"] = "2024-02-01T00:00:00.000Z"
				return remoteChange(rec)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := setupTestEnv(t)

			item, err := env.repo.Create(ctx, models.Item{Title: "X"})
			require.NoError(t, err)

			result, err := env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{tt.change(item.ID)}, conflict.LastWriteWins{})
			require.NoError(t, err)
			assert.Equal(t, 1, result.Applied)
			assert.Empty(t, result.Conflicts)

			_, found, err := env.repo.FindByID(ctx, item.ID, true)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestRepositoryChangeSet_ApplyConflict(t *testing.T) {
	tests := []struct {
		name          string
		resolver      conflict.Resolver
		remoteUpdated string
		markSynced    bool
		markConflict  bool
		wantTitle     string
		wantConflicts int
	}{
		{
			name:          "remote newer wins",
			resolver:      conflict.LastWriteWins{},
			remoteUpdated: "2024-06-01T00:00:00.000Z",
			wantTitle:     "remote",
			wantConflicts: 1,
		},
		{
			name:          "local newer wins",
			resolver:      conflict.LastWriteWins{},
			remoteUpdated: "2023-06-01T00:00:00.000Z",
			wantTitle:     "local",
			wantConflicts: 1,
		},
		{
			name:          "remote wins strategy",
			resolver:      conflict.RemoteWins{},
			remoteUpdated: "2023-06-01T00:00:00.000Z",
			wantTitle:     "remote",
			wantConflicts: 1,
		},
		{
			name:          "synced local is overwritten",
			resolver:      conflict.LastWriteWins{},
			remoteUpdated: "2023-06-01T00:00:00.000Z",
			markSynced:    true,
			wantTitle:     "remote",
			wantConflicts: 0,
		},
		{
			name:          "conflict row is overwritten by automatic strategy",
			resolver:      conflict.LastWriteWins{},
			remoteUpdated: "2023-06-01T00:00:00.000Z",
			markConflict:  true,
			wantTitle:     "remote",
			wantConflicts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := setupTestEnv(t)

			item, err := env.repo.Create(ctx, models.Item{Title: "local"})
			require.NoError(t, err)
			if tt.markSynced {
				require.NoError(t, env.repo.MarkSynced(ctx, item.ID))
			}
			if tt.markConflict {
				require.NoError(t, env.repo.MarkConflict(ctx, item.ID))
			}

			change := remoteChange(remoteItem(item.ID, "remote", tt.remoteUpdated))
			result, err := env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{change}, tt.resolver)
			require.NoError(t, err)

			assert.Equal(t, 1, result.Applied)
			assert.Empty(t, result.Errors)
			require.Len(t, result.Conflicts, tt.wantConflicts)
			if tt.wantConflicts > 0 {
				c := result.Conflicts[0]
				assert.Equal(t, item.ID, c.ID)
				assert.Equal(t, models.ItemsTable, c.Entity)
				assert.Equal(t, item.UpdatedAt.String(), c.LocalTimestamp)
				assert.Equal(t, tt.remoteUpdated, c.RemoteTimestamp)
			}

			got, found, err := env.repo.FindByID(ctx, item.ID, false)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.wantTitle, got.Title)
			// Автоматическое разрешение всегда заканчивается synced
			assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
		})
	}
}

func TestRepositoryChangeSet_ApplyManual(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	item, err := env.repo.Create(ctx, models.Item{Title: "local"})
	require.NoError(t, err)

	change := remoteChange(remoteItem(item.ID, "remote", "2024-06-01T00:00:00.000Z"))
	result, err := env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{change}, nil)
	require.NoError(t, err)

	assert.Zero(t, result.Applied)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "remote", result.Conflicts[0].RemoteData["title"])

	got, _, err := env.repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "local", got.Title)
	assert.Equal(t, models.SyncStatusConflict, got.SyncStatus)

	// Повторный pull снова обнаруживает конфликт, а не перезаписывает запись
	result, err = env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{change}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Conflicts, 1)
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, models.SyncConflict) (models.Record, error) {
	return nil, errors.New("cannot decide")
}

func TestRepositoryChangeSet_ApplyCollectsErrors(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	item, err := env.repo.Create(ctx, models.Item{Title: "local"})
	require.NoError(t, err)

	changes := []models.SyncChange{
		{ID: "n1", Entity: "notes", Operation: models.OperationUpdate, Data: models.Record{"id": "n1"}},
		remoteChange(remoteItem(item.ID, "remote", "2024-06-01T00:00:00.000Z")),
		remoteChange(remoteItem("r2", "fresh", "2024-06-01T00:00:00.000Z")),
	}

	result, err := env.changes.ApplyRemoteChanges(ctx, changes, failingResolver{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Len(t, result.Conflicts, 1)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "n1", result.Errors[0].ID)
	assert.Contains(t, result.Errors[0].Message, ErrUnknownTable.Error())
	assert.Equal(t, item.ID, result.Errors[1].ID)

	// Локальная запись не тронута
	got, _, err := env.repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
}

func TestRepositoryChangeSet_ObservesRemoteTime(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	future := "2030-01-01T00:00:00.000Z"
	_, err := env.changes.ApplyRemoteChanges(ctx, []models.SyncChange{remoteChange(remoteItem("r1", "remote", future))}, conflict.LastWriteWins{})
	require.NoError(t, err)

	item, err := env.repo.Create(ctx, models.Item{Title: "after"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, item.UpdatedAt.String(), future)
}

func TestRepositoryChangeSet_StoreResolved(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	rec := remoteItem("r1", "chosen", "2024-06-01T00:00:00.000Z").WithSyncStatus(models.SyncStatusPending)
	require.NoError(t, env.changes.StoreResolved(ctx, models.ItemsTable, rec))

	got, found, err := env.repo.FindByID(ctx, "r1", false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "chosen", got.Title)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)

	err = env.changes.StoreResolved(ctx, "notes", rec)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRepositoryChangeSet_AdapterErrors(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("disk I/O error")

	adapter := &TableAdapterMock{
		TableFunc: func() string { return "items" },
		PendingRecordsFunc: func(ctx context.Context) ([]models.Record, error) {
			return nil, failure
		},
		FindRecordFunc: func(ctx context.Context, id string, includeDeleted bool) (models.Record, bool, error) {
			assert.True(t, includeDeleted)
			return nil, false, failure
		},
	}

	cs := NewRepositoryChangeSet(testLogger(), nil, adapter)
	assert.Equal(t, []string{"items"}, cs.Tables())

	_, err := cs.PendingChanges(ctx)
	assert.ErrorIs(t, err, failure)

	result, err := cs.ApplyRemoteChanges(ctx, []models.SyncChange{remoteChange(remoteItem("1", "x", "2024-01-01T00:00:00.000Z"))}, conflict.LastWriteWins{})
	require.NoError(t, err)
	assert.Zero(t, result.Applied)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, failure.Error(), result.Errors[0].Message)
}
