package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gophsync/internal/server/jwt"
	"github.com/iudanet/gophsync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// RoleKey ключ для хранения роли ключа в контексте
const RoleKey contextKey = "role"

// WithRole возвращает контекст с ролью
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRole извлекает роль из контекста запроса
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// KeyIssuer выпускает anon keys
type KeyIssuer interface {
	Issue(role string, ttl time.Duration) (string, error)
}

// KeyRequest представляет запрос на выпуск ключа
type KeyRequest struct {
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"` // секунды, 0 = бессрочно
}

// KeyHandler выпускает ключи по запросу service_role
type KeyHandler struct {
	logger *slog.Logger
	issuer KeyIssuer
}

// NewKeyHandler создает handler выпуска ключей
func NewKeyHandler(logger *slog.Logger, issuer KeyIssuer) *KeyHandler {
	return &KeyHandler{logger: logger, issuer: issuer}
}

// Issue обрабатывает POST /auth/v1/keys
func (h *KeyHandler) Issue(w http.ResponseWriter, r *http.Request) {
	if role, _ := GetRole(r.Context()); role != api.RoleService {
		writeError(w, http.StatusForbidden, "forbidden", "service_role key required")
		return
	}

	var req KeyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.Role == "" {
		req.Role = api.RoleAnon
	}
	if req.ExpiresIn < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "expires_in must not be negative")
		return
	}

	key, err := h.issuer.Issue(req.Role, time.Duration(req.ExpiresIn)*time.Second)
	if err != nil {
		if errors.Is(err, jwt.ErrUnknownRole) {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		h.logger.Error("Failed to issue key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	h.logger.Info("Key issued", "role", req.Role, "expires_in", req.ExpiresIn)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(api.KeyResponse{Key: key, Role: req.Role, ExpiresIn: req.ExpiresIn})
}
