package model

import "context"

// SessionStore persists per-user sessions between turns. The caller
// serialises turns per user; the store itself performs no locking.
type SessionStore interface {
	// Get returns the stored session, or the canonical initial session when
	// none exists.
	Get(ctx context.Context, userID string) (Session, error)

	// Put stores the session and refreshes its TTL.
	Put(ctx context.Context, userID string, s Session) error

	// Delete removes the session entirely.
	Delete(ctx context.Context, userID string) error
}

// SessionConfig holds session-store parameters, sourced from environment
// variables.
type SessionConfig struct {
	TTL string `envconfig:"SESSION_TTL" default:"30m"`
}
