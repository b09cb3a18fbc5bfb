// Package token issues and verifies signed bearer tokens carrying
// user identity and role claims.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, wrong signing method, expiry, or malformed input.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims embedded in every issued token.
type Claims struct {
	// UserID is the id of the authenticated user.
	UserID int64 `json:"uid"`
	// Username is the login name of the authenticated user.
	Username string `json:"username"`
	// Role is the user's role at issue time.
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager. The secret must be non-empty; a missing
// secret is a configuration error, never substituted with a default.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues an HS256 token for the given user with a bounded expiry.
func (m *Manager) Sign(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify parses and validates a raw token string. It enforces the HS256
// signing method and the expiry claim; any failure yields ErrInvalidToken.
func (m *Manager) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
