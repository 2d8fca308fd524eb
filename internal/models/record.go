package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Record is a full snapshot of one row, keyed by column name.
// It is the unit that crosses the local/remote boundary.
type Record map[string]any

// ID returns the primary key of the record.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// UpdatedAt returns the parsed updatedAt column.
func (r Record) UpdatedAt() (Timestamp, bool) {
	return r.timestamp(FieldUpdatedAt)
}

// DeletedAt returns the parsed deletedAt column.
func (r Record) DeletedAt() (Timestamp, bool) {
	return r.timestamp(FieldDeletedAt)
}

// IsDeleted reports whether deletedAt is set.
func (r Record) IsDeleted() bool {
	switch v := r[FieldDeletedAt].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case *Timestamp:
		return v != nil
	default:
		return true
	}
}

// SyncStatus returns the syncStatus column.
func (r Record) SyncStatus() SyncStatus {
	switch v := r[FieldSyncStatus].(type) {
	case string:
		return SyncStatus(v)
	case SyncStatus:
		return v
	}
	return ""
}

// Clone returns a shallow copy. Column values are scalars, so this is enough.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// WithSyncStatus returns a copy of r with syncStatus replaced.
func (r Record) WithSyncStatus(status SyncStatus) Record {
	out := r.Clone()
	if out == nil {
		out = Record{}
	}
	out[FieldSyncStatus] = string(status)
	return out
}

func (r Record) timestamp(field string) (Timestamp, bool) {
	switch v := r[field].(type) {
	case string:
		ts, err := ParseTimestamp(v)
		if err != nil {
			return Timestamp{}, false
		}
		return ts, true
	case Timestamp:
		return v, true
	case *Timestamp:
		if v == nil {
			return Timestamp{}, false
		}
		return *v, true
	case time.Time:
		return NewTimestamp(v), true
	}
	return Timestamp{}, false
}

// ToRecord converts a typed entity into a Record through its JSON shape.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return DecodeRecord(data)
}

// FromRecord fills the typed entity v from r.
func FromRecord(r Record, v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}

// DecodeRecord parses a JSON object. Integral numbers become int64,
// other numbers float64, matching what the SQLite driver returns.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("record is null")
	}

	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = normalizeValue(v)
	}
	return rec, nil
}

func normalizeValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// JSONEqual compares two column values by their JSON encoding.
func JSONEqual(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}
