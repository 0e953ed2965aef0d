// Session management.
//
// WHY A SERVER-SIDE SESSION STORE AND NOT A JWT?
// A JWT is stateless: once issued, it stays valid until it expires, and the
// server has no way to revoke it short of a denylist. For a browser app
// where "log out" must mean logged out, a server-side store is simpler and
// strictly more capable — logout deletes the row and every copy of the
// cookie dies with it. The cost is one indexed primary-key lookup per
// request, which SQLite does in microseconds.
//
// The token itself is 32 bytes of crypto/rand, base64url-encoded. It carries
// no information; it is only a key into the sessions table.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/repository"
)

// SessionTTL is how long a session stays valid after login. There is no
// sliding renewal — after seven days the user logs in again.
const SessionTTL = 7 * 24 * time.Hour

// CookieName is the name of the session cookie set on login.
const CookieName = "session"

// SessionManager issues, validates, and revokes sessions against the
// server-side store.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

// NewSessionManager creates a SessionManager with the default TTL.
func NewSessionManager(sessions repository.SessionRepository) *SessionManager {
	return &SessionManager{sessions: sessions, ttl: SessionTTL}
}

// NewSessionManagerWithTTL creates a SessionManager with a custom TTL.
// Used in tests to exercise expiry without sleeping for a week.
func NewSessionManagerWithTTL(sessions repository.SessionRepository, ttl time.Duration) *SessionManager {
	return &SessionManager{sessions: sessions, ttl: ttl}
}

// Issue creates a new session for userID and returns the opaque token to be
// set as a cookie. It also opportunistically sweeps expired rows — a failed
// sweep is ignored, since expired sessions are rejected at validation time
// anyway.
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	session := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.sessions.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("auth: storing session: %w", err)
	}

	_ = m.sessions.DeleteExpiredSessions(ctx, time.Now())

	return token, nil
}

// Validate looks the token up in the store and returns the user ID it was
// issued for. An unknown or expired token yields apperror.ErrUnauthorized;
// an expired row is deleted on sight.
func (m *SessionManager) Validate(ctx context.Context, token string) (string, error) {
	session, err := m.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("session is not valid")
		}
		return "", fmt.Errorf("auth: looking up session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = m.sessions.DeleteSession(ctx, token)
		return "", apperror.Unauthorized("session has expired")
	}

	return session.UserID, nil
}

// Revoke deletes the session row. Idempotent: revoking a token that was
// never issued, or was already revoked, succeeds.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if err := m.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("auth: revoking session: %w", err)
	}
	return nil
}

// newToken returns 32 bytes of crypto/rand as a URL-safe string.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
