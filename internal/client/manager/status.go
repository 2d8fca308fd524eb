package manager

import (
	"sync"

	"github.com/iudanet/gophsync/internal/models"
)

// Snapshot is the application-visible sync state.
type Snapshot struct {
	LastSyncResult  *models.SyncResult     `json:"lastSyncResult,omitempty"`
	ConnectionState models.ConnectionState `json:"connectionState"`
	LastSyncTime    string                 `json:"lastSyncTime,omitempty"`
	LastError       string                 `json:"lastError,omitempty"`
	PendingChanges  int                    `json:"pendingChangesCount"`
	Conflicts       int                    `json:"conflictsCount"`
	Online          bool                   `json:"isOnline"`
	Syncing         bool                   `json:"isSyncing"`
}

// HasPendingChanges reports whether local changes wait for a push.
func (s Snapshot) HasPendingChanges() bool { return s.PendingChanges > 0 }

// HasConflicts reports whether the last sync met conflicts.
func (s Snapshot) HasConflicts() bool { return s.Conflicts > 0 }

// IsConnected reports whether the backend session is up.
func (s Snapshot) IsConnected() bool { return s.ConnectionState == models.StateConnected }

// StatusText returns a short human-readable state.
func (s Snapshot) StatusText() string {
	if s.Syncing {
		return "Syncing..."
	}

	switch s.ConnectionState {
	case models.StateConnected:
		return "Connected"
	case models.StateConnecting:
		return "Connecting..."
	case models.StateDisconnected:
		return "Offline"
	case models.StateError:
		return "Connection error"
	default:
		return "Unknown"
	}
}

func initialSnapshot() Snapshot {
	return Snapshot{
		ConnectionState: models.StateDisconnected,
		Online:          true,
	}
}

// Status holds the current Snapshot and notifies subscribers on every change.
type Status struct {
	subs   map[uint64]func(Snapshot)
	snap   Snapshot
	nextID uint64
	mu     sync.Mutex
}

// NewStatus returns a store in the initial state.
func NewStatus() *Status {
	return &Status{
		snap: initialSnapshot(),
		subs: make(map[uint64]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Status) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers fn for every subsequent change.
func (s *Status) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// update применяет изменение и уведомляет подписчиков вне блокировки
func (s *Status) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// SetConnectionState records the connection state.
func (s *Status) SetConnectionState(state models.ConnectionState) {
	s.update(func(snap *Snapshot) { snap.ConnectionState = state })
}

// SetOnline records network reachability.
func (s *Status) SetOnline(online bool) {
	s.update(func(snap *Snapshot) { snap.Online = online })
}

// SetSyncing records whether a cycle is running.
func (s *Status) SetSyncing(syncing bool) {
	s.update(func(snap *Snapshot) { snap.Syncing = syncing })
}

// SetLastSync records the outcome of a completed cycle.
func (s *Status) SetLastSync(result *models.SyncResult) {
	s.update(func(snap *Snapshot) {
		snap.LastSyncTime = result.Timestamp
		snap.LastSyncResult = result
	})
}

// SetPendingCount records the number of pending local changes.
func (s *Status) SetPendingCount(n int) {
	s.update(func(snap *Snapshot) { snap.PendingChanges = n })
}

// SetConflictsCount records the number of conflicts.
func (s *Status) SetConflictsCount(n int) {
	s.update(func(snap *Snapshot) { snap.Conflicts = n })
}

// SetError records the last error message; empty clears it.
func (s *Status) SetError(msg string) {
	s.update(func(snap *Snapshot) { snap.LastError = msg })
}

// Reset returns the store to its initial state.
func (s *Status) Reset() {
	s.update(func(snap *Snapshot) { *snap = initialSnapshot() })
}
