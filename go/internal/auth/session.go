package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSessionExpired is returned when the bearer token's expiry has passed.
// The user has to sign in again; nothing here refreshes tokens.
var ErrSessionExpired = errors.New("session expired")

// ErrInvalidToken is returned when the bearer token cannot be decoded.
var ErrInvalidToken = errors.New("invalid token")

// Session is the current user's identity, decoded from the bearer token.
// Signature verification is the backend's job; the client only reads the
// claims it needs to know who it is acting as.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// NewSession decodes a bearer token into a session.
func NewSession(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	s := &Session{
		Token:  token,
		UserID: sub,
	}

	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s, nil
}

// Valid reports whether the session is usable at the given instant. A
// token without an expiry claim never expires client-side.
func (s *Session) Valid(now time.Time) error {
	if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}
