// Package config loads client and server configuration from a YAML file,
// GOPHSYNC_* environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	syncengine "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/validation"
)

// EnvPrefix prefixes every environment variable; nested keys use "_".
const EnvPrefix = "GOPHSYNC"

// Виды backend
const (
	BackendNone        = ""
	BackendREST        = "rest"
	BackendObjectStore = "objectstore"
)

// ErrInvalidConfig is returned when a value fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Log configures logging.
type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Backend selects and configures the remote.
type Backend struct {
	Kind    string        `mapstructure:"kind"`
	URL     string        `mapstructure:"url"`
	AnonKey string        `mapstructure:"anon_key"`
	Timeout time.Duration `mapstructure:"timeout"`

	// objectstore
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	Region       string `mapstructure:"region"`
	CreateBucket bool   `mapstructure:"create_bucket"`
}

// Enabled reports whether enough is configured to build a backend.
func (b Backend) Enabled() bool {
	switch b.Kind {
	case BackendREST:
		return b.URL != "" && b.AnonKey != ""
	case BackendObjectStore:
		return b.URL != "" && b.Bucket != "" && b.AccessKey != "" && b.SecretKey != ""
	default:
		return false
	}
}

// Sync mirrors the engine configuration.
type Sync struct {
	Enabled          bool          `mapstructure:"enabled"`
	AutoSync         bool          `mapstructure:"auto_sync"`
	Interval         time.Duration `mapstructure:"interval"`
	ConflictStrategy string        `mapstructure:"conflict_strategy"`
	Tables           []string      `mapstructure:"tables"`
	BatchSize        int           `mapstructure:"batch_size"`
	MergeFields      []string      `mapstructure:"merge_fields"`
	MergeFallback    string        `mapstructure:"merge_fallback"`
}

// EngineConfig converts to the engine configuration.
func (s Sync) EngineConfig() syncengine.Config {
	return syncengine.Config{
		Enabled:          s.Enabled,
		AutoSync:         s.AutoSync,
		SyncInterval:     s.Interval,
		ConflictStrategy: models.ConflictStrategy(s.ConflictStrategy),
		Tables:           slices.Clone(s.Tables),
		BatchSize:        s.BatchSize,
		MergeFields:      slices.Clone(s.MergeFields),
		MergeFallback:    models.ConflictStrategy(s.MergeFallback),
	}
}

// Patch returns the runtime-reloadable part of the configuration.
// Enabled is left out: at runtime it follows network reachability.
func (s Sync) Patch() syncengine.ConfigPatch {
	cfg := s.EngineConfig()
	return syncengine.ConfigPatch{
		AutoSync:         &cfg.AutoSync,
		SyncInterval:     &cfg.SyncInterval,
		ConflictStrategy: &cfg.ConflictStrategy,
		Tables:           &cfg.Tables,
		BatchSize:        &cfg.BatchSize,
		MergeFields:      &cfg.MergeFields,
		MergeFallback:    &cfg.MergeFallback,
	}
}

// Client is the client configuration.
type Client struct {
	Log            Log           `mapstructure:"log"`
	Backend        Backend       `mapstructure:"backend"`
	DBPath         string        `mapstructure:"db_path"`
	CheckpointPath string        `mapstructure:"checkpoint_path"`
	FeedAddr       string        `mapstructure:"feed_addr"`
	Sync           Sync          `mapstructure:"sync"`
	ProbeInterval  time.Duration `mapstructure:"probe_interval"`
}

// Server is the reference server configuration, read from server.* keys.
type Server struct {
	Log        Log           `mapstructure:"log"`
	Addr       string        `mapstructure:"addr"`
	DBPath     string        `mapstructure:"db_path"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

func setLogDefaults(v *viper.Viper, prefix string) {
	v.SetDefault(prefix+"log.level", "info")
	v.SetDefault(prefix+"log.format", "text")
	v.SetDefault(prefix+"log.file", "")
	v.SetDefault(prefix+"log.max_size_mb", 10)
	v.SetDefault(prefix+"log.max_backups", 3)
	v.SetDefault(prefix+"log.max_age_days", 28)
}

func setClientDefaults(v *viper.Viper) {
	setLogDefaults(v, "")

	v.SetDefault("db_path", "gophsync.db")
	v.SetDefault("checkpoint_path", "gophsync-checkpoints.db")
	v.SetDefault("feed_addr", "127.0.0.1:8787")
	v.SetDefault("probe_interval", 10*time.Second)

	v.SetDefault("backend.kind", BackendREST)
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.anon_key", "")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.bucket", "")
	v.SetDefault("backend.prefix", "")
	v.SetDefault("backend.access_key", "")
	v.SetDefault("backend.secret_key", "")
	v.SetDefault("backend.region", "")
	v.SetDefault("backend.create_bucket", false)

	def := syncengine.DefaultConfig()
	v.SetDefault("sync.enabled", def.Enabled)
	v.SetDefault("sync.auto_sync", def.AutoSync)
	v.SetDefault("sync.interval", def.SyncInterval)
	v.SetDefault("sync.conflict_strategy", string(def.ConflictStrategy))
	v.SetDefault("sync.tables", []string{})
	v.SetDefault("sync.batch_size", def.BatchSize)
	v.SetDefault("sync.merge_fields", []string{})
	v.SetDefault("sync.merge_fallback", string(def.MergeFallback))
}

func setServerDefaults(v *viper.Viper) {
	setLogDefaults(v, "server.")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.db_path", "gophsync-server.db")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.rate_limit", 600)
	v.SetDefault("server.rate_window", time.Minute)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// Отсутствующий файл не ошибка: работают env и значения по умолчанию
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return v, nil
}

var strategies = []models.ConflictStrategy{
	models.StrategyLastWriteWins,
	models.StrategyLocalWins,
	models.StrategyRemoteWins,
	models.StrategyFieldMerge,
	models.StrategyManual,
}

func (s Sync) validate() error {
	if !slices.Contains(strategies, models.ConflictStrategy(s.ConflictStrategy)) {
		return fmt.Errorf("%w: unknown conflict strategy %q", ErrInvalidConfig, s.ConflictStrategy)
	}
	if s.MergeFallback == string(models.StrategyFieldMerge) || s.MergeFallback == string(models.StrategyManual) ||
		!slices.Contains(strategies, models.ConflictStrategy(s.MergeFallback)) {
		return fmt.Errorf("%w: unsupported merge fallback %q", ErrInvalidConfig, s.MergeFallback)
	}
	if s.Interval < 0 {
		return fmt.Errorf("%w: negative sync interval", ErrInvalidConfig)
	}
	if s.BatchSize < 0 {
		return fmt.Errorf("%w: negative batch size", ErrInvalidConfig)
	}
	for _, table := range s.Tables {
		if err := validation.ValidateTableName(table); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (b Backend) validate() error {
	switch b.Kind {
	case BackendNone, BackendREST, BackendObjectStore:
		return nil
	default:
		return fmt.Errorf("%w: unknown backend kind %q", ErrInvalidConfig, b.Kind)
	}
}

// ClientLoader reads the client configuration and follows file changes.
type ClientLoader struct {
	v     *viper.Viper
	path  string
	mu    sync.Mutex
	watch bool
}

// NewClientLoader reads path (may be empty) with env overrides on top.
func NewClientLoader(path string) (*ClientLoader, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	setClientDefaults(v)
	return &ClientLoader{v: v, path: path}, nil
}

// Config decodes and validates the current configuration.
func (l *ClientLoader) Config() (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decode()
}

func (l *ClientLoader) decode() (*Client, error) {
	var cfg Client
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Sync.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch calls fn with the new configuration after every change of the file.
// Invalid edits are logged and skipped. Without a file it does nothing and
// returns false.
func (l *ClientLoader) Watch(logger *slog.Logger, fn func(*Client)) bool {
	if l.path == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watch {
		return true
	}
	l.watch = true

	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.mu.Lock()
		cfg, err := l.decode()
		l.mu.Unlock()

		if err != nil {
			logger.Warn("Ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		logger.Info("Config reloaded", "file", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	l.v.WatchConfig()
	return true
}

// LoadServer reads the server configuration.
func LoadServer(path string) (*Server, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	setServerDefaults(v)

	// Unmarshal целиком учитывает env-переопределения вложенных ключей
	var root struct {
		Server Server `mapstructure:"server"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	cfg := root.Server
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
