package domain

import (
	"context"
	"time"
)

// Session is a server-side login session. The token is handed to the
// client as an opaque HttpOnly cookie.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetByToken returns the session only while it is unexpired;
	// a missing or expired token is ErrNotFound.
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
