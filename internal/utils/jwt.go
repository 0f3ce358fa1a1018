package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskhub/backend/internal/config"
)

// DefaultTokenTTL is used when the configuration does not specify a lifetime.
const DefaultTokenTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the authenticated identity inside a bearer token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed bearer tokens. It is constructed
// once at startup from configuration and injected where needed; there is no
// package-level secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	ttl := DefaultTokenTTL
	if cfg.ExpireMinutes > 0 {
		ttl = time.Duration(cfg.ExpireMinutes) * time.Minute
	}
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate creates a signed token for the given user, returning the token and
// its absolute expiry time.
func (m *TokenManager) Generate(userID uint, username string) (string, time.Time, error) {
	now := time.Now()
	expireAt := now.Add(m.ttl)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

// Parse verifies signature and expiry and returns the embedded claims.
// Malformed, expired, and badly signed tokens all yield ErrInvalidToken.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
