package sync

import (
	"log/slog"
	stdsync "sync"

	"github.com/iudanet/gophsync/internal/models"
)

// EventType identifies an engine event.
type EventType string

// Типы событий движка
const (
	EventSyncStarted       EventType = "sync-started"
	EventSyncCompleted     EventType = "sync-completed"
	EventSyncFailed        EventType = "sync-failed"
	EventConflictDetected  EventType = "conflict-detected"
	EventConnectionChanged EventType = "connection-changed"
	EventPushProgress      EventType = "push-progress"
	EventPullProgress      EventType = "pull-progress"
)

// Event is delivered to listeners. Only the fields of its Type are set:
// Result for sync-completed, Err for sync-failed, Conflict for
// conflict-detected, State for connection-changed, Current and Total for
// the progress events.
type Event struct {
	Result   *models.SyncResult
	Err      error
	Conflict *models.SyncConflict
	Type     EventType
	State    models.ConnectionState
	Current  int
	Total    int
}

// Listener receives engine events synchronously.
type Listener func(Event)

type listenerEntry struct {
	fn Listener
	id uint64
}

// listeners is an ordered subscription registry.
type listeners struct {
	logger  *slog.Logger
	entries []listenerEntry
	nextID  uint64
	mu      stdsync.Mutex
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	l.mu.Unlock()

	var once stdsync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, e := range l.entries {
				if e.id == id {
					l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *listeners) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// emit calls every listener in registration order. A panicking listener is
// logged and does not stop delivery to the rest.
func (l *listeners) emit(ev Event) {
	l.mu.Lock()
	entries := append([]listenerEntry(nil), l.entries...)
	l.mu.Unlock()

	for _, e := range entries {
		l.call(e.fn, ev)
	}
}

func (l *listeners) call(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Sync event listener panicked", "event", ev.Type, "panic", r)
		}
	}()
	fn(ev)
}
