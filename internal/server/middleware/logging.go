package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/gophsync/pkg/api"
)

// accessEntry собирает поля строки access log по мере прохождения цепочки
type accessEntry struct {
	http.ResponseWriter
	status  int
	written int64
	role    string
}

func (e *accessEntry) WriteHeader(code int) {
	e.status = code
	e.ResponseWriter.WriteHeader(code)
}

func (e *accessEntry) Write(b []byte) (int, error) {
	n, err := e.ResponseWriter.Write(b)
	e.written += int64(n)
	return n, err
}

type accessKey struct{}

// noteRole records the authenticated role for the access log line.
func noteRole(ctx context.Context, role string) {
	if e, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		e.role = role
	}
}

// LoggingMiddleware writes one access log line per request: table filters
// with apikey masked, upsert mode, the caller's role and the response size.
// Paths in skipPaths are not logged.
func LoggingMiddleware(logger *slog.Logger, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			entry := &accessEntry{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(entry, r.WithContext(context.WithValue(r.Context(), accessKey{}, entry)))

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"query", maskedQuery(r.URL.Query()),
				"status", entry.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_written", entry.written,
				"remote_addr", r.RemoteAddr,
			}
			if entry.role != "" {
				attrs = append(attrs, "role", entry.role)
			}
			if r.Header.Get(api.HeaderPrefer) == api.PreferMergeDuplicates {
				attrs = append(attrs, "upsert", true)
			}

			logger.Log(r.Context(), levelForStatus(entry.status), "HTTP request", attrs...)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// maskedQuery скрывает ключ, переданный в query
func maskedQuery(q url.Values) string {
	if q.Has(api.HeaderAPIKey) {
		q.Set(api.HeaderAPIKey, "***")
	}
	return q.Encode()
}
