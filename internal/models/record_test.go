package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord_Item(t *testing.T) {
	created := NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	item := Item{
		Base: Base{
			ID:         "item-1",
			CreatedAt:  created,
			UpdatedAt:  created,
			SyncStatus: SyncStatusPending,
		},
		Title:    "X",
		Content:  "body",
		Priority: 3,
	}

	rec, err := ToRecord(item)
	require.NoError(t, err)

	assert.Equal(t, "item-1", rec.ID())
	assert.Equal(t, "X", rec["title"])
	assert.Equal(t, int64(3), rec["priority"])
	assert.Equal(t, "2024-01-01T00:00:00.000Z", rec[FieldCreatedAt])
	assert.Nil(t, rec[FieldDeletedAt])
	assert.False(t, rec.IsDeleted())
	assert.Equal(t, SyncStatusPending, rec.SyncStatus())

	var back Item
	require.NoError(t, FromRecord(rec, &back))
	assert.Equal(t, item.ID, back.ID)
	assert.Equal(t, item.Title, back.Title)
	assert.Equal(t, item.Priority, back.Priority)
	assert.True(t, item.CreatedAt.Equal(back.CreatedAt.Time))
	assert.Nil(t, back.DeletedAt)
}

func TestRecord_IsDeleted(t *testing.T) {
	tests := []struct {
		rec      Record
		name     string
		expected bool
	}{
		{name: "missing column", rec: Record{}, expected: false},
		{name: "null", rec: Record{FieldDeletedAt: nil}, expected: false},
		{name: "empty string", rec: Record{FieldDeletedAt: ""}, expected: false},
		{name: "timestamp string", rec: Record{FieldDeletedAt: "2024-01-01T00:00:00.000Z"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rec.IsDeleted())
		})
	}
}

func TestRecord_WithSyncStatus_DoesNotMutate(t *testing.T) {
	rec := Record{FieldID: "a", FieldSyncStatus: "pending"}

	out := rec.WithSyncStatus(SyncStatusSynced)

	assert.Equal(t, SyncStatusSynced, out.SyncStatus())
	assert.Equal(t, SyncStatusPending, rec.SyncStatus())
}

func TestRecord_UpdatedAt(t *testing.T) {
	rec := Record{FieldUpdatedAt: "2024-02-02T10:00:00.250Z"}

	ts, ok := rec.UpdatedAt()
	require.True(t, ok)
	assert.Equal(t, int64(1706868000250), ts.UnixMilli())

	_, ok = Record{FieldUpdatedAt: "garbage"}.UpdatedAt()
	assert.False(t, ok)
}

func TestDecodeRecord_Numbers(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"id":"a","priority":5,"score":1.5,"deletedAt":null}`))
	require.NoError(t, err)

	assert.Equal(t, int64(5), rec["priority"])
	assert.Equal(t, 1.5, rec["score"])
	assert.Nil(t, rec[FieldDeletedAt])

	_, err = DecodeRecord([]byte(`null`))
	assert.Error(t, err)

	_, err = DecodeRecord([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestJSONEqual(t *testing.T) {
	assert.True(t, JSONEqual(int64(1), float64(1)))
	assert.True(t, JSONEqual("a", "a"))
	assert.True(t, JSONEqual(nil, nil))
	assert.False(t, JSONEqual("1", int64(1)))
	assert.False(t, JSONEqual("a", "b"))
}

func TestSyncChange_IsDelete(t *testing.T) {
	assert.True(t, SyncChange{Operation: OperationDelete, Data: Record{}}.IsDelete())
	assert.True(t, SyncChange{Operation: OperationUpdate, Data: Record{FieldDeletedAt: "2024-01-01T00:00:00.000Z"}}.IsDelete())
	assert.False(t, SyncChange{Operation: OperationUpdate, Data: Record{FieldDeletedAt: nil}}.IsDelete())
}

func TestSyncResult_HasError(t *testing.T) {
	res := NewSyncResult()
	res.Errors = append(res.Errors, SyncError{ID: "2", Entity: "items", Operation: OperationUpdate, Message: "boom"})

	assert.True(t, res.HasError("items", "2"))
	assert.False(t, res.HasError("items", "1"))
	assert.False(t, res.HasError("notes", "2"))
}
