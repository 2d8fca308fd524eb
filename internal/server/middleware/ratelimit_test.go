package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNow управляемые часы для limiter
type fakeNow struct {
	t  time.Time
	mu sync.Mutex
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *fakeNow) {
	clock := &fakeNow{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rate, window, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		d := rl.Allow("10.0.0.1")
		assert.True(t, d.Allowed, fmt.Sprintf("request %d should be allowed", i+1))
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := rl.Allow("10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	// Другой клиент не затронут
	assert.True(t, rl.Allow("10.0.0.2").Allowed)

	clock.Advance(40 * time.Second)
	d = rl.Allow("10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 20*time.Second, d.RetryAfter)

	// Новое окно восстанавливает лимит
	clock.Advance(20 * time.Second)
	d = rl.Allow("10.0.0.1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)

	rl.Allow("10.0.0.1")
	clock.Advance(30 * time.Second)
	rl.Allow("10.0.0.2")

	clock.Advance(100 * time.Second)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.windows, "10.0.0.1")
	assert.Contains(t, rl.windows, "10.0.0.2")
}

func TestRetrySeconds(t *testing.T) {
	assert.Equal(t, 1, retrySeconds(0))
	assert.Equal(t, 1, retrySeconds(200*time.Millisecond))
	assert.Equal(t, 20, retrySeconds(19600*time.Millisecond))
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/rest/v1/items", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	// Разные порты одного адреса делят лимит
	w := send("192.168.1.1:1000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(HeaderRateLimit))
	assert.Equal(t, "1", w.Header().Get(HeaderRateRemaining))
	assert.Equal(t, http.StatusOK, send("192.168.1.1:1001").Code)

	w = send("192.168.1.1:1002")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	assert.Equal(t, http.StatusOK, send("192.168.1.2:1000").Code)
}

func TestClientAddr(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded list", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, remote: "10.0.0.1:1", want: "203.0.113.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "203.0.113.2"}, remote: "10.0.0.1:1", want: "203.0.113.2"},
		{name: "remote addr", remote: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "ipv6", remote: "[::1]:8080", want: "::1"},
		{name: "no port", remote: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientAddr(req))
		})
	}
}
