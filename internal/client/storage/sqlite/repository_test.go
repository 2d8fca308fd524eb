package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/clock"
	"github.com/iudanet/gophsync/internal/models"
)

// stepSource возвращает время, которое сдвигается на шаг при каждом вызове
func stepSource(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(step)
		return t
	}
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupTestStorage(t *testing.T) *Storage {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func setupItemsRepository(t *testing.T) *Repository[models.Item] {
	s := setupTestStorage(t)

	repo, err := NewRepository[models.Item](context.Background(), s, models.ItemsTable,
		clock.NewWithSource(stepSource(testEpoch, time.Second)))
	require.NoError(t, err)

	return repo
}

func TestNew_FileDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "local.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Повторное открытие не должно повторно применять миграции
	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 0, n)

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestNewRepository_UnknownTable(t *testing.T) {
	s := setupTestStorage(t)

	_, err := NewRepository[models.Item](context.Background(), s, "notes", clock.New())
	assert.ErrorIs(t, err, storage.ErrStorage)
}

func TestSchema_SyncStatusConstraint(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.DB().Exec(`INSERT INTO items (id, title, createdAt, updatedAt, syncStatus)
		VALUES ('x', 't', '2024-01-01T00:00:00.000Z', '2024-01-01T00:00:00.000Z', 'dirty')`)
	assert.Error(t, err)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "X", Priority: 2})
	require.NoError(t, err)

	_, err = uuid.Parse(item.ID)
	assert.NoError(t, err, "id must be a UUID")
	assert.Equal(t, "X", item.Title)
	assert.Equal(t, int64(2), item.Priority)
	assert.Equal(t, models.SyncStatusPending, item.SyncStatus)
	assert.Nil(t, item.DeletedAt)
	assert.True(t, item.CreatedAt.Equal(item.UpdatedAt.Time))

	stored, found, err := repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, item.ID, stored.ID)
	assert.Equal(t, "X", stored.Title)
	assert.Equal(t, "", stored.Content)
	assert.Equal(t, item.CreatedAt.String(), stored.CreatedAt.String())
}

func TestRepository_CreateGeneratesDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	seen := make(map[string]bool)
	for range 20 {
		item, err := repo.Create(ctx, models.Item{Title: "t"})
		require.NoError(t, err)
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	first, err := repo.Create(ctx, models.Item{Title: "first", Priority: 3})
	require.NoError(t, err)
	second, err := repo.Create(ctx, models.Item{Title: "second", Priority: 1})
	require.NoError(t, err)
	third, err := repo.Create(ctx, models.Item{Title: "third", Priority: 2})
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     QueryOptions
		expected []string
	}{
		{
			name:     "default newest first",
			opts:     QueryOptions{},
			expected: []string{third.ID, second.ID, first.ID},
		},
		{
			name:     "order by priority asc",
			opts:     QueryOptions{OrderBy: "priority ASC"},
			expected: []string{second.ID, third.ID, first.ID},
		},
		{
			name:     "limit and offset",
			opts:     QueryOptions{OrderBy: "createdAt", Limit: 1, Offset: 1},
			expected: []string{second.ID},
		},
		{
			name:     "offset only",
			opts:     QueryOptions{OrderBy: "createdAt", Offset: 2},
			expected: []string{third.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.FindAll(ctx, tt.opts)
			require.NoError(t, err)

			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestRepository_FindAll_RejectsUnknownOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	_, err := repo.FindAll(ctx, QueryOptions{OrderBy: "title; DROP TABLE items"})
	assert.ErrorIs(t, err, storage.ErrStorage)
	assert.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestRepository_FindBy(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	a, err := repo.Create(ctx, models.Item{Title: "a", Priority: 5})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Item{Title: "b", Priority: 1})
	require.NoError(t, err)
	c, err := repo.Create(ctx, models.Item{Title: "c", Priority: 5})
	require.NoError(t, err)

	items, err := repo.FindBy(ctx, "priority", 5, QueryOptions{OrderBy: "title"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	// Удалённые записи исключаются по умолчанию
	_, err = repo.Delete(ctx, c.ID)
	require.NoError(t, err)

	items, err = repo.FindBy(ctx, "priority", 5, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = repo.FindBy(ctx, "priority", 5, QueryOptions{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = repo.FindBy(ctx, "password", "x", QueryOptions{})
	assert.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestRepository_SoftDeleteVisibility(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "doomed"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkSynced(ctx, item.ID))

	deleted, err := repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.False(t, found)

	got, found, err := repo.FindByID(ctx, item.ID, true)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, got.DeletedAt.String(), got.UpdatedAt.String())
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)

	all, err := repo.FindAll(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)

	all, err = repo.FindAll(ctx, QueryOptions{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Повторное удаление - no-op
	deleted, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "old"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkSynced(ctx, item.ID))

	updated, found, err := repo.Update(ctx, item.ID, map[string]any{"title": "new", "priority": 9})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, int64(9), updated.Priority)
	assert.Equal(t, models.SyncStatusPending, updated.SyncStatus)
	assert.True(t, updated.UpdatedAt.After(item.UpdatedAt.Time))
	assert.Equal(t, item.CreatedAt.String(), updated.CreatedAt.String())

	_, found, err = repo.Update(ctx, "missing", map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_Update_RejectsFields(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "t"})
	require.NoError(t, err)

	_, _, err = repo.Update(ctx, item.ID, map[string]any{"syncStatus": "synced"})
	assert.ErrorIs(t, err, storage.ErrReadOnlyField)

	_, _, err = repo.Update(ctx, item.ID, map[string]any{"color": "red"})
	assert.ErrorIs(t, err, storage.ErrUnknownField)
	assert.ErrorIs(t, err, storage.ErrStorage)
}

func TestRepository_Update_DeletedIsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "t"})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)

	_, found, err := repo.Update(ctx, item.ID, map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_Restore(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "t"})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkSynced(ctx, item.ID))

	restored, found, err := repo.Restore(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, restored.DeletedAt)
	assert.Equal(t, models.SyncStatusPending, restored.SyncStatus)

	_, found, err = repo.Restore(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_PendingRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "X"})
	require.NoError(t, err)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, item.ID, pending[0].ID)

	require.NoError(t, repo.MarkSynced(ctx, item.ID))

	pending, err = repo.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, _, err := repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	assert.Equal(t, item.UpdatedAt.String(), got.UpdatedAt.String(), "status change must not touch timestamps")
}

func TestRepository_FindPending_OldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	a, err := repo.Create(ctx, models.Item{Title: "a"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, models.Item{Title: "b"})
	require.NoError(t, err)

	// a изменена позже b и должна оказаться последней
	_, _, err = repo.Update(ctx, a.ID, map[string]any{"title": "a2"})
	require.NoError(t, err)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, b.ID, pending[0].ID)
	assert.Equal(t, a.ID, pending[1].ID)
}

func TestRepository_MarkConflict(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "t"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkConflict(ctx, item.ID))

	conflicts, err := repo.FindConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.SyncStatusConflict, conflicts[0].SyncStatus)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRepository_MarkSyncedIfUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	item, err := repo.Create(ctx, models.Item{Title: "t"})
	require.NoError(t, err)
	pushed := item.UpdatedAt.String()

	// Запись изменена, пока push был в полёте
	_, _, err = repo.Update(ctx, item.ID, map[string]any{"title": "edited"})
	require.NoError(t, err)

	marked, err := repo.MarkSyncedIfUnchanged(ctx, item.ID, pushed)
	require.NoError(t, err)
	assert.False(t, marked)

	got, _, err := repo.FindByID(ctx, item.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)

	marked, err = repo.MarkSyncedIfUnchanged(ctx, item.ID, got.UpdatedAt.String())
	require.NoError(t, err)
	assert.True(t, marked)
}

func TestRepository_HardDeleteAndCount(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	a, err := repo.Create(ctx, models.Item{Title: "a"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, models.Item{Title: "b"})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)

	n, err := repo.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := repo.HardDelete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.HardDelete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	n, err = repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_UpsertRecord_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := setupItemsRepository(t)

	rec := models.Record{
		"id":         "remote-1",
		"title":      "from remote",
		"content":    "body",
		"priority":   int64(4),
		"createdAt":  "2024-01-01T00:00:00.000Z",
		"updatedAt":  "2024-01-02T00:00:00.000Z",
		"deletedAt":  nil,
		"syncStatus": "synced",
		"extra":      "ignored column",
	}

	require.NoError(t, repo.UpsertRecord(ctx, rec))
	first, found, err := repo.FindRecord(ctx, "remote-1", true)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, repo.UpsertRecord(ctx, rec))
	second, found, err := repo.FindRecord(ctx, "remote-1", true)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, first, second)

	n, err := repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_ClosedStorage(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	repo, err := NewRepository[models.Item](ctx, s, models.ItemsTable, clock.New())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = repo.Create(ctx, models.Item{Title: "t"})
	assert.ErrorIs(t, err, storage.ErrStorage)

	_, err = repo.Count(ctx, false)
	assert.ErrorIs(t, err, storage.ErrStorage)

	err = repo.MarkSynced(ctx, "x")
	assert.ErrorIs(t, err, storage.ErrStorage)
}
