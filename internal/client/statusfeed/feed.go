// Package statusfeed streams sync status snapshots to WebSocket clients.
package statusfeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/iudanet/gophsync/internal/client/manager"
)

// MessageTypeStatus marks a status snapshot message.
const MessageTypeStatus = "status"

const (
	writeTimeout = 5 * time.Second
	queueSize    = 64
)

// Message is a single broadcast frame.
type Message struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      string           `json:"type"`
	Status    manager.Snapshot `json:"status"`
}

// Feed broadcasts every change of a manager.Status to connected clients.
type Feed struct {
	status  *manager.Status
	logger  *slog.Logger
	clients map[*websocket.Conn]struct{}
	queue   chan manager.Snapshot
	cancel  context.CancelFunc
	unsub   func()
	wg      sync.WaitGroup
	mu      sync.RWMutex
}

// New creates a feed over status.
func New(status *manager.Status, logger *slog.Logger) *Feed {
	return &Feed{
		status:  status,
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
		queue:   make(chan manager.Snapshot, queueSize),
		cancel:  func() {},
		unsub:   func() {},
	}
}

// Handler returns the HTTP routes of the feed.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", f.handleWebSocket)
	mux.HandleFunc("GET /status", f.handleStatus)
	mux.HandleFunc("GET /health", f.handleHealth)
	return mux
}

// Start subscribes to the status store and starts the broadcast loop.
func (f *Feed) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	f.unsub = f.status.Subscribe(func(snap manager.Snapshot) {
		select {
		case f.queue <- snap:
		default:
			f.logger.Warn("Status feed queue full, dropping snapshot")
		}
	})

	f.wg.Add(1)
	go f.broadcastLoop(ctx)
}

// Close stops broadcasting and disconnects every client.
func (f *Feed) Close() {
	f.unsub()
	f.cancel()
	f.wg.Wait()

	f.mu.Lock()
	for conn := range f.clients {
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
		delete(f.clients, conn)
	}
	f.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (f *Feed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

func (f *Feed) broadcastLoop(ctx context.Context) {
	defer f.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-f.queue:
			data, err := encode(snap)
			if err != nil {
				f.logger.Error("Failed to encode status", "error", err)
				continue
			}

			f.mu.RLock()
			clients := make([]*websocket.Conn, 0, len(f.clients))
			for conn := range f.clients {
				clients = append(clients, conn)
			}
			f.mu.RUnlock()

			for _, conn := range clients {
				if err := write(ctx, conn, data); err != nil {
					f.logger.Debug("Failed to send status", "error", err)
					f.removeClient(conn)
				}
			}
		}
	}
}

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		f.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	count := len(f.clients)
	f.mu.Unlock()
	f.logger.Debug("Status client connected", "clients", count)

	// Новый клиент сразу получает текущее состояние
	data, err := encode(f.status.Snapshot())
	if err == nil {
		err = write(r.Context(), conn, data)
	}
	if err != nil {
		f.removeClient(conn)
		return
	}

	f.readLoop(r.Context(), conn)
}

// readLoop держит соединение до отключения клиента; входящие кадры игнорируются
func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer f.removeClient(conn)
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (f *Feed) removeClient(conn *websocket.Conn) {
	f.mu.Lock()
	_, ok := f.clients[conn]
	delete(f.clients, conn)
	count := len(f.clients)
	f.mu.Unlock()

	if ok {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		f.logger.Debug("Status client disconnected", "clients", count)
	}
}

func (f *Feed) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f.status.Snapshot()); err != nil {
		f.logger.Error("Failed to write status", "error", err)
	}
}

func (f *Feed) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": f.ClientCount(),
	})
}

func encode(snap manager.Snapshot) ([]byte, error) {
	return json.Marshal(Message{
		Type:      MessageTypeStatus,
		Timestamp: time.Now().UTC(),
		Status:    snap,
	})
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
