package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestNewSession_DecodesClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub":   "coach-1",
		"email": "coach@teamsync.com",
		"exp":   exp.Unix(),
	})

	session, err := NewSession(token)

	require.NoError(t, err)
	assert.Equal(t, "coach-1", session.UserID)
	assert.Equal(t, "coach@teamsync.com", session.Email)
	assert.True(t, session.ExpiresAt.Equal(exp))
	assert.Equal(t, token, session.Token)
}

func TestNewSession_MissingSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "coach@teamsync.com"})

	_, err := NewSession(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSession_Garbage(t *testing.T) {
	_, err := NewSession("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSession_Valid(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	expired := &Session{ExpiresAt: now.Add(-time.Minute)}
	assert.ErrorIs(t, expired.Valid(now), ErrSessionExpired)

	live := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.NoError(t, live.Valid(now))

	noExpiry := &Session{}
	assert.NoError(t, noExpiry.Valid(now))
}
