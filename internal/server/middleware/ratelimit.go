package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/gophsync/pkg/api"
)

// Заголовки квоты в каждом ответе
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
)

// RateLimiter limits requests per client address with a fixed window.
type RateLimiter struct {
	windows map[string]*window
	logger  *slog.Logger
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
	limit   int
	size    time.Duration
	mu      sync.Mutex
}

type window struct {
	start time.Time
	used  int
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// NewRateLimiter allows limit requests per client in every window of size.
// Stop releases the sweeper goroutine.
func NewRateLimiter(limit int, size time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
		logger:  logger,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go rl.sweepLoop()

	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.size * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep забывает клиентов, молчавших дольше двух окон
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.Sub(w.start) > rl.size*2 {
			delete(rl.windows, key)
		}
	}
}

// Stop ends the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// Allow counts one request for key.
func (rl *RateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.size {
		w = &window{start: now}
		rl.windows[key] = w
	}

	if w.used >= rl.limit {
		return Decision{RetryAfter: w.start.Add(rl.size).Sub(now)}
	}
	w.used++
	return Decision{Allowed: true, Remaining: rl.limit - w.used}
}

// Middleware answers 429 with Retry-After once a client exhausts its window.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		d := rl.Allow(client)

		w.Header().Set(HeaderRateLimit, strconv.Itoa(rl.limit))
		w.Header().Set(HeaderRateRemaining, strconv.Itoa(d.Remaining))

		if !d.Allowed {
			rl.logger.Warn("Rate limit exceeded", "client", client, "method", r.Method, "path", r.URL.Path)

			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(d.RetryAfter)))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{
				Error:   "rate_limited",
				Message: "rate limit exceeded, please try again later",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func retrySeconds(d time.Duration) int {
	s := int(d.Round(time.Second) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// clientAddr returns the first X-Forwarded-For hop, X-Real-IP or the remote
// host without port, in that order.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
