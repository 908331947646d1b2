package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/sunrise-cafe/models"
)

// SessionCookie carries the signed session token.
const SessionCookie = "sunrise_session"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrSessionRevoked = errors.New("session has been revoked")

// Claims identify the user behind a session. ID (jti) is unique per login and is the
// revocation key.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues, verifies and revokes session tokens.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, revoked RevocationStore) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// TTL is the lifetime of newly issued sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session token for user.
func (m *SessionManager) Issue(user models.User) (string, *Claims, error) {
	role := RoleUser
	if user.IsAdmin {
		role = RoleAdmin
	}

	now := m.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature, expiry and revocation state of a session token.
func (m *SessionManager) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token claims")
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke invalidates the session until it would have expired anyway.
func (m *SessionManager) Revoke(ctx context.Context, claims *Claims) error {
	ttl := m.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(m.now())
	}
	if ttl <= 0 {
		return nil
	}
	return m.revoked.Revoke(ctx, claims.ID, ttl)
}
