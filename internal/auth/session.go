package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mfonseca/acamp/internal/models"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrMissingSession = errors.New("session required")
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "acamp_session"

// SessionManager issues and verifies the signed tokens stored in the
// session cookie. Tokens carry identity only; the caller's role is always
// resolved server-side from the profile table, never read from the token.
type SessionManager struct {
	secretKey []byte
	ttl       time.Duration
}

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager with the given secret and
// session lifetime. secretKey should be a strong random string (e.g. 32
// bytes).
func NewSessionManager(secretKey string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// TTL returns the configured session lifetime, used for cookie expiry.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a new signed session token for the given user.
func (m *SessionManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning the claims if
// valid.
func (m *SessionManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
