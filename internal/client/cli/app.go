package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/gophsync/internal/client/backend"
	"github.com/iudanet/gophsync/internal/client/backend/objectstore"
	"github.com/iudanet/gophsync/internal/client/backend/rest"
	"github.com/iudanet/gophsync/internal/client/storage/boltdb"
	"github.com/iudanet/gophsync/internal/client/storage/sqlite"
	syncengine "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/clock"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/conflict"
	"github.com/iudanet/gophsync/internal/models"
)

// App is the composition root of one client process: local stores, the
// conflict queue and the sync engine.
type App struct {
	cfg         *config.Client
	logger      *slog.Logger
	storage     *sqlite.Storage
	checkpoints *boltdb.Storage
	clock       *clock.Clock
	items       *sqlite.Repository[models.Item]
	changes     *syncengine.RepositoryChangeSet
	queue       *conflict.Queue
	engine      *syncengine.Engine
}

// Open opens the local database and the checkpoint store and builds the
// engine without a backend.
func Open(ctx context.Context, cfg *config.Client, logger *slog.Logger) (*App, error) {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	checkpoints, err := boltdb.New(ctx, cfg.CheckpointPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to open checkpoint store: %w", err)
	}

	clk := clock.New()
	items, err := sqlite.NewRepository[models.Item](ctx, store, models.ItemsTable, clk)
	if err != nil {
		_ = checkpoints.Close()
		_ = store.Close()
		return nil, fmt.Errorf("failed to open items: %w", err)
	}

	changes := syncengine.NewRepositoryChangeSet(logger, clk, items)
	queue := conflict.NewQueue()
	engine := syncengine.NewEngine(nil, changes, cfg.Sync.EngineConfig(), logger,
		syncengine.WithClock(clk), syncengine.WithQueue(queue))

	return &App{
		cfg:         cfg,
		logger:      logger,
		storage:     store,
		checkpoints: checkpoints,
		clock:       clk,
		items:       items,
		changes:     changes,
		queue:       queue,
		engine:      engine,
	}, nil
}

// Items returns the items repository.
func (a *App) Items() *sqlite.Repository[models.Item] {
	return a.items
}

// Engine returns the sync engine.
func (a *App) Engine() *syncengine.Engine {
	return a.engine
}

// Changes returns the change set registered with the engine.
func (a *App) Changes() *syncengine.RepositoryChangeSet {
	return a.changes
}

// Storage returns the local database.
func (a *App) Storage() *sqlite.Storage {
	return a.storage
}

// Checkpoints returns the checkpoint store.
func (a *App) Checkpoints() *boltdb.Storage {
	return a.checkpoints
}

// NewBackend builds the configured backend. It returns nil without error
// when the backend section is incomplete, which means offline-only.
func (a *App) NewBackend() (backend.Backend, error) {
	bc := a.cfg.Backend
	if !bc.Enabled() {
		return nil, nil
	}

	tables := a.cfg.Sync.Tables
	if len(tables) == 0 {
		tables = a.changes.Tables()
	}

	switch bc.Kind {
	case config.BackendREST:
		return rest.New(rest.Config{
			URL:     bc.URL,
			AnonKey: bc.AnonKey,
			Tables:  tables,
			Timeout: bc.Timeout,
		}, a.checkpoints, a.logger), nil

	case config.BackendObjectStore:
		store, err := objectstore.NewMinioStore(objectstore.MinioConfig{
			Endpoint:  bc.URL,
			AccessKey: bc.AccessKey,
			SecretKey: bc.SecretKey,
			Region:    bc.Region,
		})
		if err != nil {
			return nil, err
		}
		return objectstore.New(store, objectstore.Config{
			Bucket:       bc.Bucket,
			Prefix:       bc.Prefix,
			Tables:       tables,
			CreateBucket: bc.CreateBucket,
		}, a.checkpoints, a.logger), nil

	default:
		return nil, fmt.Errorf("%w: unknown backend kind %q", config.ErrInvalidConfig, bc.Kind)
	}
}

// Close shuts the engine down and closes both stores.
func (a *App) Close() error {
	ctx := context.Background()
	return errors.Join(
		a.engine.Shutdown(ctx),
		a.checkpoints.Close(),
		a.storage.Close(),
	)
}
