// Package manager binds a backend, network reachability and the status store
// to the sync engine.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/gophsync/internal/client/backend"
	syncengine "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/models"
)

// BackendFactory builds the configured backend. A nil backend without error
// means sync is not configured and the app runs offline-only.
type BackendFactory func() (backend.Backend, error)

// PendingCounter reports local changes waiting for a push.
type PendingCounter interface {
	PendingChanges(ctx context.Context) ([]models.SyncChange, error)
}

// Manager owns the sync lifecycle of the application.
type Manager struct {
	engine      *syncengine.Engine
	factory     BackendFactory
	reach       Reachability
	status      *Status
	pending     PendingCounter
	logger      *slog.Logger
	ctx         context.Context
	online      *bool
	unsubReach  func()
	unsubEvents func()
	mu          sync.Mutex
}

// New creates a manager. pending may be nil.
func New(engine *syncengine.Engine, factory BackendFactory, reach Reachability, status *Status, pending PendingCounter, logger *slog.Logger) *Manager {
	return &Manager{
		engine:  engine,
		factory: factory,
		reach:   reach,
		status:  status,
		pending: pending,
		logger:  logger,
		ctx:     context.Background(),
	}
}

// Status returns the status store.
func (m *Manager) Status() *Status {
	return m.status
}

// Start selects the backend, connects, runs the first sync and starts
// following reachability. Without a backend it only marks the status
// disconnected. ctx bounds every cycle the manager triggers later.
func (m *Manager) Start(ctx context.Context) error {
	b, err := m.factory()
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}
	if b == nil {
		m.logger.Info("No backend configured, running offline-only")
		m.status.SetConnectionState(models.StateDisconnected)
		return nil
	}

	m.mu.Lock()
	m.ctx = ctx
	if m.unsubEvents != nil {
		m.unsubEvents()
	}
	m.mu.Unlock()

	m.engine.SetBackend(b)
	unsubEvents := m.engine.AddEventListener(m.onEvent)

	m.engine.Initialize(ctx)
	if m.engine.ConnectionState() == models.StateConnected {
		m.runSync(ctx)
	}
	m.refreshPending(ctx)

	// Предыдущая подписка снимается до установки новой
	m.mu.Lock()
	if m.unsubReach != nil {
		m.unsubReach()
		m.unsubReach = nil
	}
	m.unsubEvents = unsubEvents
	m.mu.Unlock()

	unsubReach := m.reach.Subscribe(m.onReachability)

	m.mu.Lock()
	m.unsubReach = unsubReach
	m.mu.Unlock()

	return nil
}

// onReachability reacts to transitions only; repeated values are ignored.
func (m *Manager) onReachability(online bool) {
	m.mu.Lock()
	prev := m.online
	m.online = &online
	ctx := m.ctx
	m.mu.Unlock()

	if prev != nil && *prev == online {
		return
	}

	m.engine.UpdateConfig(syncengine.ConfigPatch{Enabled: &online})
	m.status.SetOnline(online)

	if !online {
		m.logger.Info("Network offline, sync paused")
		m.status.SetConnectionState(models.StateDisconnected)
		return
	}

	// Первое значение: Start уже подключился и синхронизировался
	if prev == nil {
		return
	}

	switch m.engine.ConnectionState() {
	case models.StateConnected:
		m.status.SetConnectionState(models.StateConnected)
	default:
		m.logger.Info("Network online, reconnecting")
		m.engine.Initialize(ctx)
		if m.engine.ConnectionState() != models.StateConnected {
			return
		}
	}

	m.runSync(ctx)
}

func (m *Manager) runSync(ctx context.Context) {
	if _, err := m.engine.Sync(ctx); err != nil {
		m.logger.Error("Sync failed", "error", err)
		m.status.SetError(err.Error())
	}
}

func (m *Manager) onEvent(ev syncengine.Event) {
	switch ev.Type {
	case syncengine.EventConnectionChanged:
		m.status.SetConnectionState(ev.State)

	case syncengine.EventSyncStarted:
		m.status.SetSyncing(true)
		m.status.SetError("")

	case syncengine.EventSyncCompleted:
		if ev.Result.PushedCount > 0 || ev.Result.PulledCount > 0 {
			m.logger.Info("Sync summary",
				"pushed", ev.Result.PushedCount,
				"pulled", ev.Result.PulledCount,
				"conflicts", ev.Result.ConflictCount)
		}
		m.status.SetSyncing(false)
		m.status.SetLastSync(ev.Result)
		m.status.SetConflictsCount(ev.Result.ConflictCount)
		m.refreshPending(m.context())

	case syncengine.EventSyncFailed:
		m.logger.Warn("Sync summary", "error", ev.Err)
		m.status.SetSyncing(false)
		m.status.SetError(ev.Err.Error())
	}
}

func (m *Manager) refreshPending(ctx context.Context) {
	if m.pending == nil {
		return
	}
	changes, err := m.pending.PendingChanges(ctx)
	if err != nil {
		m.logger.Warn("Failed to count pending changes", "error", err)
		return
	}
	m.status.SetPendingCount(len(changes))
}

func (m *Manager) context() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

// Shutdown stops following reachability and shuts the engine down.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	unsubReach := m.unsubReach
	unsubEvents := m.unsubEvents
	m.unsubReach = nil
	m.unsubEvents = nil
	m.mu.Unlock()

	if unsubReach != nil {
		unsubReach()
	}
	if unsubEvents != nil {
		unsubEvents()
	}

	return m.engine.Shutdown(ctx)
}
