package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server"
	"github.com/iudanet/gophsync/internal/server/jwt"
	srvsqlite "github.com/iudanet/gophsync/internal/server/storage/sqlite"
	"github.com/iudanet/gophsync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type backendParams struct {
	url      string
	key      string
	strategy string
}

// writeConfig creates a client config in a fresh temp dir.
func writeConfig(t *testing.T, b backendParams) string {
	t.Helper()
	dir := t.TempDir()

	kind := ""
	if b.url != "" {
		kind = config.BackendREST
	}
	strategy := b.strategy
	if strategy == "" {
		strategy = string(models.StrategyLastWriteWins)
	}

	content := fmt.Sprintf(`log:
  level: error
db_path: %s
checkpoint_path: %s
feed_addr: ""
backend:
  kind: %q
  url: %q
  anon_key: %q
sync:
  auto_sync: false
  conflict_strategy: %s
`, filepath.Join(dir, "client.db"), filepath.Join(dir, "checkpoints.db"), kind, b.url, b.key, strategy)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs one CLI invocation and returns its output.
func execute(t *testing.T, configPath, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c := New(iocli.New(strings.NewReader(input), &out), VersionInfo{Version: "test", BuildDate: "today", GitCommit: "abc"})
	err := c.Execute(context.Background(), append([]string{"--config", configPath}, args...))
	return out.String(), err
}

func mustExecute(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, err := execute(t, configPath, "", args...)
	require.NoError(t, err, out)
	return out
}

func addItem(t *testing.T, configPath string, args ...string) models.Item {
	t.Helper()
	out := mustExecute(t, configPath, append([]string{"--json", "items", "add"}, args...)...)

	var item models.Item
	require.NoError(t, json.Unmarshal([]byte(out), &item))
	return item
}

// openApp opens the stores of configPath directly, bypassing the CLI.
func openApp(t *testing.T, configPath string) *App {
	t.Helper()
	loader, err := config.NewClientLoader(configPath)
	require.NoError(t, err)
	cfg, err := loader.Config()
	require.NoError(t, err)

	app, err := Open(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	return app
}

func startServer(t *testing.T) (url, key string) {
	t.Helper()
	store, err := srvsqlite.New(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	keys, err := jwt.NewService("cli-test-secret")
	require.NoError(t, err)
	key, err = keys.Issue(api.RoleAnon, 0)
	require.NoError(t, err)

	srv := server.New(server.Config{RateLimit: 1000, RateWindow: time.Minute}, store, keys, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts.URL, key
}

func TestCli_Version(t *testing.T) {
	// Конфиг не читается: путь не существует и не нужен
	out := mustExecute(t, filepath.Join(t.TempDir(), "missing.yaml"), "version")

	assert.Contains(t, out, "GophSync Client")
	assert.Contains(t, out, "Version:    test")
	assert.Contains(t, out, "Git Commit: abc")
}

func TestCli_ItemsLifecycle(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	item := addItem(t, cfg, "--title", "Milk", "--content", "2 litres", "--priority", "2")
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Milk", item.Title)
	assert.Equal(t, int64(2), item.Priority)
	assert.Equal(t, models.SyncStatusPending, item.SyncStatus)

	out := mustExecute(t, cfg, "items", "list")
	assert.Contains(t, out, "Found 1 item(s)")
	assert.Contains(t, out, "- Milk")
	assert.Contains(t, out, "Preview:  2 litres")

	out = mustExecute(t, cfg, "items", "get", item.ID)
	assert.Contains(t, out, "Title:    Milk")
	assert.Contains(t, out, "2 litres")

	mustExecute(t, cfg, "items", "update", item.ID, "--priority", "5")
	out = mustExecute(t, cfg, "--json", "items", "get", item.ID)
	var updated models.Item
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, int64(5), updated.Priority)
	assert.Equal(t, "Milk", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt.Time))

	out, err := execute(t, cfg, "yes\n", "items", "delete", item.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Item deleted")

	out = mustExecute(t, cfg, "items", "list")
	assert.Contains(t, out, "No items found.")

	out = mustExecute(t, cfg, "items", "list", "--all")
	assert.Contains(t, out, "- Milk (deleted)")

	mustExecute(t, cfg, "items", "restore", item.ID)
	out = mustExecute(t, cfg, "items", "list")
	assert.Contains(t, out, "- Milk")
	assert.NotContains(t, out, "(deleted)")
}

func TestCli_AddPromptsForTitle(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	out, err := execute(t, cfg, "Bread\n", "items", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: ")
	assert.Contains(t, out, "Item created")

	out = mustExecute(t, cfg, "items", "list")
	assert.Contains(t, out, "- Bread")
}

func TestCli_DeleteCancelled(t *testing.T) {
	cfg := writeConfig(t, backendParams{})
	item := addItem(t, cfg, "--title", "Keep me")

	out, err := execute(t, cfg, "no\n", "items", "delete", item.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	out = mustExecute(t, cfg, "items", "list")
	assert.Contains(t, out, "- Keep me")
}

func TestCli_ListOptions(t *testing.T) {
	cfg := writeConfig(t, backendParams{})
	addItem(t, cfg, "--title", "Low", "--priority", "1")
	addItem(t, cfg, "--title", "High", "--priority", "9")

	out := mustExecute(t, cfg, "--json", "items", "list", "--order", "priority DESC", "--limit", "1")
	var items []models.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "High", items[0].Title)

	out = mustExecute(t, cfg, "--json", "items", "list", "--pending")
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 2)
}

func TestCli_Errors(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	tests := []struct {
		name    string
		input   string
		args    []string
		wantErr string
	}{
		{name: "get unknown id", args: []string{"items", "get", "missing"}, wantErr: "item not found"},
		{name: "update without fields", args: []string{"items", "update", "missing"}, wantErr: "nothing to update"},
		{name: "update unknown id", args: []string{"items", "update", "missing", "--priority", "1"}, wantErr: "item not found"},
		{name: "update empty title", args: []string{"items", "update", "missing", "--title", ""}, wantErr: "title cannot be empty"},
		{name: "delete unknown id", args: []string{"items", "delete", "missing", "--yes"}, wantErr: "item not found"},
		{name: "restore unknown id", args: []string{"items", "restore", "missing"}, wantErr: "item not found"},
		{name: "empty title from prompt", input: "\n", args: []string{"items", "add"}, wantErr: "title cannot be empty"},
		{name: "unknown order column", args: []string{"items", "list", "--order", "nope"}, wantErr: "unknown field"},
		{name: "negative limit", args: []string{"items", "list", "--limit", "-1"}, wantErr: "cannot be negative"},
		{name: "get without id", args: []string{"items", "get"}, wantErr: "accepts 1 arg"},
		{name: "keep-local unknown id", args: []string{"conflicts", "keep-local", "missing"}, wantErr: "item not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, cfg, tt.input, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCli_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  conflict_strategy: coin-flip\n"), 0600))

	_, err := execute(t, path, "", "items", "list")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCli_StatusOffline(t *testing.T) {
	cfg := writeConfig(t, backendParams{})
	addItem(t, cfg, "--title", "Milk")

	out := mustExecute(t, cfg, "status")
	assert.Contains(t, out, "none (offline-only)")
	assert.Contains(t, out, "Last sync:       never")
	assert.Contains(t, out, "Pending sync: 1 record(s)")
	assert.Contains(t, out, "Schema version:  1")
}

func TestCli_SyncNotConfigured(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	_, err := execute(t, cfg, "", "sync")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCli_SyncConnectionError(t *testing.T) {
	// Порт закрыт сразу после выделения
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	cfg := writeConfig(t, backendParams{url: url, key: "key"})

	_, err := execute(t, cfg, "", "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to rest backend")
}

func TestCli_SyncBetweenClients(t *testing.T) {
	url, key := startServer(t)
	first := writeConfig(t, backendParams{url: url, key: key})
	second := writeConfig(t, backendParams{url: url, key: key})

	item := addItem(t, first, "--title", "Shared", "--priority", "3")

	out := mustExecute(t, first, "sync")
	assert.Contains(t, out, "Synchronization completed successfully")
	assert.Contains(t, out, "Pushed to backend:   1 change(s)")

	out = mustExecute(t, first, "status")
	assert.Contains(t, out, "rest "+url)
	assert.NotContains(t, out, "never")
	assert.Contains(t, out, "All data synchronized")

	out = mustExecute(t, second, "--json", "sync")
	var result models.SyncResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.PulledCount)

	out = mustExecute(t, second, "--json", "items", "get", item.ID)
	var pulled models.Item
	require.NoError(t, json.Unmarshal([]byte(out), &pulled))
	assert.Equal(t, "Shared", pulled.Title)
	assert.Equal(t, int64(3), pulled.Priority)
	assert.Equal(t, models.SyncStatusSynced, pulled.SyncStatus)

	// Удаление со второго клиента удаляет строку на сервере
	mustExecute(t, second, "items", "delete", item.ID, "--yes")
	out = mustExecute(t, second, "--json", "sync")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.PushedCount)

	third := writeConfig(t, backendParams{url: url, key: key})
	out = mustExecute(t, third, "--json", "sync")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Zero(t, result.PulledCount)
}

func TestCli_ConflictsKeepLocal(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	app := openApp(t, cfg)
	item, err := app.Items().Create(context.Background(), models.Item{Title: "Disputed"})
	require.NoError(t, err)
	require.NoError(t, app.Items().MarkConflict(context.Background(), item.ID))
	require.NoError(t, app.Close())

	out := mustExecute(t, cfg, "conflicts", "list")
	assert.Contains(t, out, "1 item(s) wait for resolution")
	assert.Contains(t, out, "- Disputed")

	out = mustExecute(t, cfg, "conflicts", "keep-local", item.ID)
	assert.Contains(t, out, "will be pushed on the next sync")

	out = mustExecute(t, cfg, "conflicts", "list")
	assert.Contains(t, out, "No conflicts.")

	out = mustExecute(t, cfg, "--json", "items", "get", item.ID)
	var resolved models.Item
	require.NoError(t, json.Unmarshal([]byte(out), &resolved))
	assert.Equal(t, models.SyncStatusPending, resolved.SyncStatus)

	// Повторное разрешение невозможно
	_, err = execute(t, cfg, "", "conflicts", "keep-local", item.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not in conflict")
}

func TestCli_RunStopsOnCancel(t *testing.T) {
	cfg := writeConfig(t, backendParams{})

	var out bytes.Buffer
	c := New(iocli.New(strings.NewReader(""), &out), VersionInfo{})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Execute(ctx, []string{"--config", cfg, "run"}) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "short", content: "hello", want: "hello"},
		{name: "multiline", content: "first\nsecond", want: "first..."},
		{name: "long", content: strings.Repeat("я", 60), want: strings.Repeat("я", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.content))
		})
	}
}
