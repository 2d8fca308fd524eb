// Package rest implements the sync backend against a PostgREST-style HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/iudanet/gophsync/internal/client/backend"
	"github.com/iudanet/gophsync/internal/client/storage"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/pkg/api"
)

// Name is the backend name and checkpoint key.
const Name = "rest"

// DefaultTimeout bounds every HTTP request.
const DefaultTimeout = 30 * time.Second

// Config describes the remote endpoint.
type Config struct {
	URL     string
	AnonKey string
	// Tables pulled on every cycle
	Tables  []string
	Timeout time.Duration
}

// Backend talks to the remote over HTTP.
type Backend struct {
	httpClient  *http.Client
	checkpoints *backend.Checkpoints
	logger      *slog.Logger
	cfg         Config
	connected   atomic.Bool
}

var _ backend.Backend = (*Backend)(nil)

// New creates a REST backend. checkpoints may be nil to keep the checkpoint in memory.
func New(cfg Config, checkpoints storage.CheckpointStore, logger *slog.Logger) *Backend {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = []string{models.ItemsTable}
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")

	return &Backend{
		cfg:         cfg,
		checkpoints: backend.NewCheckpoints(checkpoints, Name),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки авторизации при редиректе
				if len(via) > 0 {
					req.Header.Set(api.HeaderAPIKey, via[0].Header.Get(api.HeaderAPIKey))
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return Name }

// IsConnected implements backend.Backend.
func (b *Backend) IsConnected() bool { return b.connected.Load() }

// Connect checks the health endpoint.
func (b *Backend) Connect(ctx context.Context) error {
	b.logger.Info("Connecting to backend", "url", b.cfg.URL)

	if err := b.doRequest(ctx, http.MethodGet, api.HealthPath, nil, nil, nil); err != nil {
		b.connected.Store(false)
		return fmt.Errorf("%w: %w", backend.ErrConnection, err)
	}

	b.connected.Store(true)
	b.logger.Info("Connected to backend", "url", b.cfg.URL)
	return nil
}

// Disconnect only drops the cached flag; HTTP is stateless.
func (b *Backend) Disconnect(ctx context.Context) error {
	b.connected.Store(false)
	return nil
}

// Push upserts or deletes every change one by one.
func (b *Backend) Push(ctx context.Context, changes []models.SyncChange) (*models.SyncResult, error) {
	b.logger.Debug("Pushing changes", "count", len(changes))

	result := models.NewSyncResult()
	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		if change.IsDelete() {
			err = b.doRequest(ctx, http.MethodDelete, api.TablePath(change.Entity),
				url.Values{"id": {"eq." + change.ID}}, nil, nil)
		} else {
			err = b.doRequest(ctx, http.MethodPost, api.TablePath(change.Entity),
				nil, []models.Record{backend.PrepareForPush(change)}, nil)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.Error("Push failed", "entity", change.Entity, "id", change.ID, "error", err)
			result.Errors = append(result.Errors, backend.RecordError(change, err, errorCode(err)))
			continue
		}
		result.PushedCount++
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

// Pull fetches every table with updatedAt >= since. A failing table is
// logged and skipped.
func (b *Backend) Pull(ctx context.Context, since *models.Timestamp) ([]models.SyncChange, error) {
	sinceLog := "beginning"
	if since != nil {
		sinceLog = since.String()
	}
	b.logger.Debug("Pulling changes", "since", sinceLog)

	changes := []models.SyncChange{}
	for _, table := range b.cfg.Tables {
		records, err := b.pullTable(ctx, table, since)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.Error("Pull failed for table", "table", table, "error", err)
			continue
		}

		for _, rec := range records {
			ts, _ := rec[models.FieldUpdatedAt].(string)
			changes = append(changes, models.SyncChange{
				ID:        rec.ID(),
				Entity:    table,
				Operation: models.OperationUpdate,
				Data:      rec,
				Timestamp: ts,
			})
		}
	}

	return changes, nil
}

func (b *Backend) pullTable(ctx context.Context, table string, since *models.Timestamp) ([]models.Record, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {models.FieldUpdatedAt + ".asc"},
	}
	if since != nil {
		// gte, а не gt: записи с тем же миллисекундным штампом не теряются
		query.Set(models.FieldUpdatedAt, "gte."+since.String())
	}

	var raw []json.RawMessage
	if err := b.doRequest(ctx, http.MethodGet, api.TablePath(table), query, nil, &raw); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(raw))
	for _, item := range raw {
		rec, err := models.DecodeRecord(item)
		if err != nil {
			return nil, err
		}
		if rec.ID() == "" {
			return nil, fmt.Errorf("remote row without %s", models.FieldID)
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetLastSyncTime implements backend.Backend.
func (b *Backend) GetLastSyncTime(ctx context.Context) (*models.Timestamp, error) {
	return b.checkpoints.Get(ctx)
}

// SetLastSyncTime implements backend.Backend.
func (b *Backend) SetLastSyncTime(ctx context.Context, ts models.Timestamp) error {
	return b.checkpoints.Set(ctx, ts)
}

// statusError is a non-2xx response.
type statusError struct {
	Message string
	Status  int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

func errorCode(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.Status)
	}
	return ""
}

// doRequest выполняет HTTP запрос
func (b *Backend) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	u := b.cfg.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(api.HeaderAPIKey, b.cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+b.cfg.AnonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(api.HeaderPrefer, api.PreferMergeDuplicates)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &statusError{Status: resp.StatusCode, Message: errResp.Message}
		}
		return &statusError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
