package sync

import (
	"slices"
	"time"

	"github.com/iudanet/gophsync/internal/conflict"
	"github.com/iudanet/gophsync/internal/models"
)

// Значения конфигурации по умолчанию
const (
	DefaultSyncInterval = 30 * time.Second
	DefaultBatchSize    = 50
)

// Config controls the engine. A zero SyncInterval means manual sync only,
// empty Tables means every registered table.
type Config struct {
	Enabled          bool
	AutoSync         bool
	SyncInterval     time.Duration
	ConflictStrategy models.ConflictStrategy
	Tables           []string
	BatchSize        int

	// field-merge: поля, которые всегда сохраняют локальное значение
	MergeFields []string
	// field-merge: стратегия для остальных полей
	MergeFallback models.ConflictStrategy
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		AutoSync:         true,
		SyncInterval:     DefaultSyncInterval,
		ConflictStrategy: models.StrategyLastWriteWins,
		BatchSize:        DefaultBatchSize,
		MergeFallback:    models.StrategyLastWriteWins,
	}
}

// ConfigPatch is a partial update. Nil fields are left unchanged.
type ConfigPatch struct {
	Enabled          *bool
	AutoSync         *bool
	SyncInterval     *time.Duration
	ConflictStrategy *models.ConflictStrategy
	Tables           *[]string
	BatchSize        *int
	MergeFields      *[]string
	MergeFallback    *models.ConflictStrategy
}

// Apply returns c with the patch applied.
func (c Config) Apply(p ConfigPatch) Config {
	if p.Enabled != nil {
		c.Enabled = *p.Enabled
	}
	if p.AutoSync != nil {
		c.AutoSync = *p.AutoSync
	}
	if p.SyncInterval != nil {
		c.SyncInterval = *p.SyncInterval
	}
	if p.ConflictStrategy != nil {
		c.ConflictStrategy = *p.ConflictStrategy
	}
	if p.Tables != nil {
		c.Tables = slices.Clone(*p.Tables)
	}
	if p.BatchSize != nil {
		c.BatchSize = *p.BatchSize
	}
	if p.MergeFields != nil {
		c.MergeFields = slices.Clone(*p.MergeFields)
	}
	if p.MergeFallback != nil {
		c.MergeFallback = *p.MergeFallback
	}
	return c
}

// timerEnabled reports whether the interval timer should run.
func (c Config) timerEnabled() bool {
	return c.Enabled && c.AutoSync && c.SyncInterval > 0
}

// includesTable reports whether table takes part in sync.
func (c Config) includesTable(table string) bool {
	return len(c.Tables) == 0 || slices.Contains(c.Tables, table)
}

// manual reports whether conflicts are left for the user.
func (c Config) manual() bool {
	return c.ConflictStrategy == models.StrategyManual
}

// resolver builds the automatic resolver for the configured strategy.
func (c Config) resolver(clk conflict.Clock) conflict.Resolver {
	opts := []conflict.Option{conflict.WithMergeableFields(c.MergeFields...)}
	if c.MergeFallback != "" {
		opts = append(opts, conflict.WithFallback(c.MergeFallback))
	}
	if clk != nil {
		opts = append(opts, conflict.WithClock(clk))
	}
	return conflict.NewResolver(c.ConflictStrategy, opts...)
}

// batchSize returns the push chunk size.
func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

func (c Config) clone() Config {
	c.Tables = slices.Clone(c.Tables)
	c.MergeFields = slices.Clone(c.MergeFields)
	return c
}
