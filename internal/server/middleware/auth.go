package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophsync/internal/server/handlers"
	"github.com/iudanet/gophsync/internal/server/jwt"
	"github.com/iudanet/gophsync/pkg/api"
)

// KeyValidator проверяет anon key
type KeyValidator interface {
	Validate(key string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки anon key.
// Ключ берется из заголовка apikey, иначе из Authorization: Bearer.
// Если заданы оба, они должны совпадать.
func AuthMiddleware(logger *slog.Logger, keys KeyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := extractKey(r)
			if !ok {
				logger.Warn("Missing or inconsistent API key", "path", r.URL.Path)
				unauthorized(w, "missing or inconsistent api key")
				return
			}

			claims, err := keys.Validate(key)
			if err != nil {
				logger.Warn("Invalid API key", "error", err)
				unauthorized(w, "invalid api key")
				return
			}

			logger.Debug("Request authenticated", "role", claims.Role)
			noteRole(r.Context(), claims.Role)

			next.ServeHTTP(w, r.WithContext(handlers.WithRole(r.Context(), claims.Role)))
		})
	}
}

func extractKey(r *http.Request) (string, bool) {
	apiKey := r.Header.Get(api.HeaderAPIKey)

	var bearer string
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Ожидаем формат: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		bearer = strings.TrimSpace(parts[1])
	}

	switch {
	case apiKey != "" && bearer != "" && apiKey != bearer:
		return "", false
	case apiKey != "":
		return apiKey, true
	case bearer != "":
		return bearer, true
	default:
		return "", false
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unauthorized", Message: message})
}
