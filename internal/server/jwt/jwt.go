// Package jwt issues and validates anon keys: HS256 tokens carrying a role claim.
package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/gophsync/pkg/api"
)

// Issuer is written into every key.
const Issuer = "gophsync"

// Ошибки ключей
var (
	ErrInvalidKey  = errors.New("invalid key")
	ErrUnknownRole = errors.New("unknown role")
	ErrNoSecret    = errors.New("signing secret is empty")
)

// Claims представляет claims anon key
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and validates keys with one shared secret.
type Service struct {
	now    func() time.Time
	secret []byte
}

// NewService creates a key service.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Service{secret: []byte(secret), now: time.Now}, nil
}

// KnownRole reports whether role may be issued.
func KnownRole(role string) bool {
	return slices.Contains([]string{api.RoleAnon, api.RoleService}, role)
}

// Issue signs a key for role. ttl <= 0 issues a key without expiry.
func (s *Service) Issue(role string, ttl time.Duration) (string, error) {
	if !KnownRole(role) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign key: %w", err)
	}
	return signed, nil
}

// Validate parses key and checks signature, expiry, issuer and role.
func (s *Service) Validate(key string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(key, &Claims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidKey
	}
	if !KnownRole(claims.Role) {
		return nil, fmt.Errorf("%w: %w %q", ErrInvalidKey, ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
