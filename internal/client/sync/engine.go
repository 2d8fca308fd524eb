// Package sync orchestrates the push/pull cycle between local storage and a
// remote backend.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/iudanet/gophsync/internal/client/backend"
	"github.com/iudanet/gophsync/internal/conflict"
	"github.com/iudanet/gophsync/internal/models"
)

var (
	// ErrSyncDisabled is reported in the result of a sync attempted while disabled
	ErrSyncDisabled = errors.New("sync is disabled")

	// ErrNoBackend is returned by Sync when no backend is registered
	ErrNoBackend = errors.New("no sync backend configured")
)

// DisabledErrorID is the id of the pseudo-error in a disabled sync result.
const DisabledErrorID = "disabled"

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to stamp merged and manually resolved records.
func WithClock(c conflict.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithWallClock sets the time source for checkpoints and result timestamps.
func WithWallClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithQueue sets the queue manual conflicts are kept in.
func WithQueue(q *conflict.Queue) Option {
	return func(e *Engine) { e.queue = q }
}

// Engine runs sync cycles. It is safe for concurrent use; cycles never overlap.
type Engine struct {
	backend   backend.Backend
	changes   ChangeSet
	clock     conflict.Clock
	queue     *conflict.Queue
	logger    *slog.Logger
	now       func() time.Time
	events    *listeners
	inFlight  chan struct{}
	stopTimer context.CancelFunc
	timerDone chan struct{}
	state     models.ConnectionState
	cfg       Config
	mu        stdsync.Mutex
}

// NewEngine creates an engine. b may be nil and set later with SetBackend.
func NewEngine(b backend.Backend, changes ChangeSet, cfg Config, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		backend:  b,
		changes:  changes,
		cfg:      cfg.clone(),
		state:    models.StateDisconnected,
		logger:   logger,
		now:      time.Now,
		events:   &listeners{logger: logger},
		inFlight: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.queue == nil {
		e.queue = conflict.NewQueue()
	}
	return e
}

// SetBackend registers the backend.
func (e *Engine) SetBackend(b backend.Backend) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.backend = b
}

// Backend returns the registered backend or nil.
func (e *Engine) Backend() backend.Backend {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.backend
}

// ConnectionState returns the current state.
func (e *Engine) ConnectionState() models.ConnectionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Config returns a copy of the configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.clone()
}

// Conflicts returns the conflicts waiting for manual resolution.
func (e *Engine) Conflicts() []models.SyncConflict {
	return e.queue.GetAll()
}

// UpdateConfig applies a partial configuration. A running timer is stopped
// and started again only if the new configuration still asks for it; a
// connected engine that gets re-enabled starts the timer.
func (e *Engine) UpdateConfig(p ConfigPatch) {
	e.mu.Lock()
	e.cfg = e.cfg.Apply(p)
	cfg := e.cfg.clone()
	connected := e.state == models.StateConnected
	e.mu.Unlock()

	e.StopAutoSync()
	if connected && cfg.timerEnabled() {
		e.StartAutoSync()
	}
}

// AddEventListener subscribes fn and returns its unsubscribe function.
func (e *Engine) AddEventListener(fn Listener) func() {
	return e.events.add(fn)
}

func (e *Engine) setConnectionState(state models.ConnectionState) {
	e.mu.Lock()
	if e.state == state {
		e.mu.Unlock()
		return
	}
	e.state = state
	e.mu.Unlock()

	e.events.emit(Event{Type: EventConnectionChanged, State: state})
}

// Initialize connects the backend. It does nothing when sync is disabled or
// no backend is registered. A connect failure moves the engine to the error
// state and is not returned.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	b := e.backend
	cfg := e.cfg.clone()
	e.mu.Unlock()

	if !cfg.Enabled || b == nil {
		e.logger.Info("Sync disabled or no backend configured")
		return
	}

	e.setConnectionState(models.StateConnecting)
	if err := b.Connect(ctx); err != nil {
		e.logger.Error("Failed to initialize sync", "backend", b.Name(), "error", err)
		e.setConnectionState(models.StateError)
		return
	}
	e.setConnectionState(models.StateConnected)

	if cfg.timerEnabled() {
		e.StartAutoSync()
	}
}

// StartAutoSync starts the interval timer unless it is already running.
func (e *Engine) StartAutoSync() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopTimer != nil || e.cfg.SyncInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.stopTimer = cancel
	e.timerDone = done

	go e.runTimer(ctx, e.cfg.SyncInterval, done)
	e.logger.Debug("Auto sync started", "interval", e.cfg.SyncInterval)
}

// runTimer ticks until ctx is cancelled. A started cycle runs with a context
// the stop signal does not cancel, so stopping the timer never aborts it.
func (e *Engine) runTimer(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cycleCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Sync(cycleCtx); err != nil {
				e.logger.Error("Auto sync failed", "error", err)
			}
		}
	}
}

// StopAutoSync stops the timer and waits for a timer-triggered cycle to
// finish. The cycle itself is not cancelled.
func (e *Engine) StopAutoSync() {
	e.mu.Lock()
	cancel := e.stopTimer
	done := e.timerDone
	e.stopTimer = nil
	e.timerDone = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// AutoSyncRunning reports whether the interval timer is running.
func (e *Engine) AutoSyncRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopTimer != nil
}

// Sync runs one push/pull cycle. While disabled it returns an unsuccessful
// result without any I/O. Concurrent calls wait for the running cycle.
func (e *Engine) Sync(ctx context.Context) (*models.SyncResult, error) {
	e.mu.Lock()
	b := e.backend
	cfg := e.cfg.clone()
	e.mu.Unlock()

	if b == nil {
		return nil, ErrNoBackend
	}
	if !cfg.Enabled {
		return e.disabledResult(), nil
	}

	select {
	case e.inFlight <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-e.inFlight }()

	e.events.emit(Event{Type: EventSyncStarted})

	result, err := e.runCycle(ctx, b, cfg)
	if err != nil {
		e.logger.Error("Sync failed", "backend", b.Name(), "error", err)
		e.events.emit(Event{Type: EventSyncFailed, Err: err})
		return nil, err
	}

	e.logger.Info("Sync completed",
		"pushed", result.PushedCount,
		"pulled", result.PulledCount,
		"conflicts", result.ConflictCount,
		"errors", len(result.Errors))
	e.events.emit(Event{Type: EventSyncCompleted, Result: result})
	return result, nil
}

func (e *Engine) runCycle(ctx context.Context, b backend.Backend, cfg Config) (*models.SyncResult, error) {
	result := &models.SyncResult{Errors: []models.SyncError{}}

	// 1. Push
	pending, err := e.changes.PendingChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending changes: %w", err)
	}
	pending = filterTables(pending, cfg)

	if len(pending) > 0 {
		if err := e.push(ctx, b, cfg, pending, result); err != nil {
			return nil, err
		}
	}

	// 2. Pull
	since, err := b.GetLastSyncTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync time: %w", err)
	}

	remote, err := b.Pull(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}
	remote = filterTables(remote, cfg)

	if len(remote) > 0 {
		var resolver conflict.Resolver
		if !cfg.manual() {
			resolver = cfg.resolver(e.clock)
		}

		applied, err := e.changes.ApplyRemoteChanges(ctx, remote, resolver)
		if err != nil {
			return nil, fmt.Errorf("failed to apply remote changes: %w", err)
		}

		for i := range applied.Conflicts {
			c := applied.Conflicts[i]
			if cfg.manual() {
				e.queue.Add(c)
			}
			e.events.emit(Event{Type: EventConflictDetected, Conflict: &c})
		}

		result.PulledCount = applied.Applied
		result.ConflictCount += len(applied.Conflicts)
		result.Errors = append(result.Errors, applied.Errors...)
		e.events.emit(Event{Type: EventPullProgress, Current: applied.Applied, Total: len(remote)})
	}

	// 3. Checkpoint: время завершения pull, а не максимальный updatedAt
	now := models.NewTimestamp(e.now())
	if err := b.SetLastSyncTime(ctx, now); err != nil {
		return nil, fmt.Errorf("failed to save last sync time: %w", err)
	}

	result.Timestamp = now.String()
	result.Success = len(result.Errors) == 0
	return result, nil
}

// push sends pending changes in chunks of BatchSize and marks every change
// without a reported error as synced.
func (e *Engine) push(ctx context.Context, b backend.Backend, cfg Config, pending []models.SyncChange, result *models.SyncResult) error {
	size := cfg.batchSize()
	total := len(pending)

	for start := 0; start < total; start += size {
		batch := pending[start:min(start+size, total)]

		pushed, err := b.Push(ctx, batch)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		result.PushedCount += pushed.PushedCount
		result.ConflictCount += pushed.ConflictCount
		result.Errors = append(result.Errors, pushed.Errors...)

		synced := make([]models.SyncChange, 0, len(batch))
		for _, c := range batch {
			if !pushed.HasError(c.Entity, c.ID) {
				synced = append(synced, c)
			}
		}
		if err := e.changes.MarkChangesSynced(ctx, synced); err != nil {
			return fmt.Errorf("failed to mark changes synced: %w", err)
		}

		e.events.emit(Event{Type: EventPushProgress, Current: start + len(batch), Total: total})
	}

	return nil
}

func (e *Engine) disabledResult() *models.SyncResult {
	return &models.SyncResult{
		Success: false,
		Errors: []models.SyncError{{
			ID:        DisabledErrorID,
			Operation: models.OperationUpdate,
			Message:   ErrSyncDisabled.Error(),
		}},
		Timestamp: models.NewTimestamp(e.now()).String(),
	}
}

// ResolveConflict settles a queued conflict. local and merged are stored as
// pending with a fresh updatedAt so they are pushed on the next cycle;
// remote is stored as synced. data is required only for merged.
func (e *Engine) ResolveConflict(ctx context.Context, id string, resolution models.Resolution, data models.Record) (models.Record, error) {
	c, ok := e.queue.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", conflict.ErrConflictNotFound, id)
	}

	var chosen models.Record
	status := models.SyncStatusPending
	switch resolution {
	case models.ResolutionLocal:
		chosen = c.LocalData
	case models.ResolutionRemote:
		chosen = c.RemoteData
		status = models.SyncStatusSynced
	case models.ResolutionMerged:
		if data == nil {
			return nil, fmt.Errorf("%w: merged resolution without data", conflict.ErrInvalidConflict)
		}
		chosen = data
	default:
		return nil, fmt.Errorf("%w: unknown resolution %q", conflict.ErrInvalidConflict, resolution)
	}

	rec := chosen.WithSyncStatus(status)
	rec[models.FieldID] = c.ID
	if status == models.SyncStatusPending {
		rec[models.FieldUpdatedAt] = e.stamp().String()
	}

	if err := e.changes.StoreResolved(ctx, c.Entity, rec); err != nil {
		return nil, fmt.Errorf("failed to store resolved conflict: %w", err)
	}

	resolved, err := e.queue.Resolve(id, resolution, rec)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Conflict resolved manually",
		"entity", resolved.Conflict.Entity,
		"id", id,
		"resolution", resolved.Conflict.Resolution,
		"resolvedAt", resolved.Conflict.ResolvedAt)

	return resolved.Data, nil
}

func (e *Engine) stamp() models.Timestamp {
	if e.clock != nil {
		return e.clock.Now()
	}
	return models.NewTimestamp(e.now())
}

// Shutdown stops the timer, disconnects the backend and drops every
// listener. It is safe to call more than once.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.StopAutoSync()

	var err error
	if b := e.Backend(); b != nil {
		if err = b.Disconnect(ctx); err != nil {
			e.logger.Warn("Failed to disconnect backend", "backend", b.Name(), "error", err)
		}
	}

	e.setConnectionState(models.StateDisconnected)
	e.events.clear()
	return err
}

func filterTables(changes []models.SyncChange, cfg Config) []models.SyncChange {
	if len(cfg.Tables) == 0 {
		return changes
	}
	out := changes[:0:0]
	for _, c := range changes {
		if cfg.includesTable(c.Entity) {
			out = append(out, c)
		}
	}
	return out
}
