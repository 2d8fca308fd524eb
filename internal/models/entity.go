package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SyncStatus отражает состояние синхронизации записи
type SyncStatus string

const (
	SyncStatusSynced   SyncStatus = "synced"   // локальная копия совпадает с удалённой
	SyncStatusPending  SyncStatus = "pending"  // есть локальные изменения, ещё не отправленные
	SyncStatusConflict SyncStatus = "conflict" // конфликт ожидает ручного разрешения
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusSynced, SyncStatusPending, SyncStatusConflict:
		return true
	}
	return false
}

// Base entity column names. Every synced table carries them.
const (
	FieldID         = "id"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
	FieldDeletedAt  = "deletedAt"
	FieldSyncStatus = "syncStatus"
)

// TimestampLayout is the wire and storage format of every timestamp.
// The width is fixed so that string order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a UTC instant with millisecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC milliseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses an ISO-8601 timestamp. Both the fixed layout and
// RFC 3339 with arbitrary fractional seconds are accepted.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, fmt.Errorf("empty timestamp")
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	return NewTimestamp(t), nil
}

// String formats the timestamp in TimestampLayout.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Value implements driver.Valuer, timestamps are stored as TEXT.
func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimestamp(v)
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
	return nil
}

// Base содержит общие поля всех синхронизируемых сущностей
type Base struct {
	ID         string     `json:"id"`         // ID генерируется клиентом при создании (UUID v4)
	CreatedAt  Timestamp  `json:"createdAt"`  // CreatedAt время создания
	UpdatedAt  Timestamp  `json:"updatedAt"`  // UpdatedAt время последнего изменения, используется для LWW
	DeletedAt  *Timestamp `json:"deletedAt"`  // DeletedAt время soft delete (nil = запись активна)
	SyncStatus SyncStatus `json:"syncStatus"` // SyncStatus состояние синхронизации
}

// IsDeleted reports whether the entity is soft-deleted.
func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}
