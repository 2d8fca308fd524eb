package models

import "time"

// SyncOperation тип операции синхронизации
type SyncOperation string

const (
	OperationCreate SyncOperation = "create"
	OperationUpdate SyncOperation = "update"
	OperationDelete SyncOperation = "delete"
)

// ConnectionState состояние подключения движка синхронизации к backend
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateError        ConnectionState = "error"
)

// ConflictStrategy selects how a detected conflict is resolved.
type ConflictStrategy string

const (
	StrategyLastWriteWins ConflictStrategy = "last-write-wins"
	StrategyLocalWins     ConflictStrategy = "local-wins"
	StrategyRemoteWins    ConflictStrategy = "remote-wins"
	StrategyFieldMerge    ConflictStrategy = "field-merge"
	StrategyManual        ConflictStrategy = "manual"
)

// Resolution records which side won a manually resolved conflict.
type Resolution string

const (
	ResolutionLocal  Resolution = "local"
	ResolutionRemote Resolution = "remote"
	ResolutionMerged Resolution = "merged"
)

// SyncChange is one unit of work crossing the local/remote boundary.
type SyncChange struct {
	ID        string        `json:"id"`
	Entity    string        `json:"entity"` // имя таблицы
	Operation SyncOperation `json:"operation"`
	Data      Record        `json:"data"` // полный снимок записи
	Timestamp string        `json:"timestamp"`
}

// IsDelete reports whether the change removes the record. Both an explicit
// delete operation and a payload carrying deletedAt count as deletion.
func (c SyncChange) IsDelete() bool {
	return c.Operation == OperationDelete || c.Data.IsDeleted()
}

// SyncConflict describes a record mutated on both sides since the last sync.
type SyncConflict struct {
	ID              string     `json:"id"`
	Entity          string     `json:"entity"`
	LocalData       Record     `json:"localData"`
	RemoteData      Record     `json:"remoteData"`
	LocalTimestamp  string     `json:"localTimestamp"`
	RemoteTimestamp string     `json:"remoteTimestamp"`
	Resolution      Resolution `json:"resolution,omitempty"`
	ResolvedAt      string     `json:"resolvedAt,omitempty"`
}

// SyncError is a per-record failure inside a batch.
type SyncError struct {
	ID        string        `json:"id"`
	Entity    string        `json:"entity"`
	Operation SyncOperation `json:"operation"`
	Message   string        `json:"message"`
	Code      string        `json:"code,omitempty"`
}

// SyncResult is the outcome of a push or of a full sync cycle.
type SyncResult struct {
	Success       bool        `json:"success"`
	PushedCount   int         `json:"pushedCount"`
	PulledCount   int         `json:"pulledCount"`
	ConflictCount int         `json:"conflictCount"`
	Errors        []SyncError `json:"errors"`
	Timestamp     string      `json:"timestamp"`
}

// NewSyncResult returns an empty successful result stamped with now.
func NewSyncResult() *SyncResult {
	return &SyncResult{
		Success:   true,
		Errors:    []SyncError{},
		Timestamp: NewTimestamp(time.Now()).String(),
	}
}

// HasError reports whether the result lists an error for the given record.
func (r *SyncResult) HasError(entity, id string) bool {
	for _, e := range r.Errors {
		if e.ID == id && (e.Entity == "" || e.Entity == entity) {
			return true
		}
	}
	return false
}
