// Package store holds the two pieces of shared mutable state: long-lived
// GitHub credentials and short-lived OAuth login state. Both are accessed
// only through these interfaces with atomic per-key operations, so the
// broker process itself stays stateless and replicable.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or its entry has expired.
var ErrNotFound = errors.New("store: not found")

// StateTTL bounds how long a login may stay pending before the callback.
const StateTTL = 300 * time.Second

// PendingAuth is the context parked between the login redirect and its
// callback, keyed by the random state token.
type PendingAuth struct {
	UserID         string `json:"user_id"`
	RedirectOrigin string `json:"redirect_origin"`
}

// CredentialStore maps a user identity to its GitHub access token.
// One token per user, last write wins, no TTL.
type CredentialStore interface {
	SaveToken(ctx context.Context, userID, accessToken string) error
	GetToken(ctx context.Context, userID string) (string, error)
	DeleteToken(ctx context.Context, userID string) error
}

// StateStore maps state tokens to pending logins. Entries expire after ttl
// and are deleted explicitly on successful completion.
type StateStore interface {
	SaveState(ctx context.Context, state string, pending PendingAuth, ttl time.Duration) error
	GetState(ctx context.Context, state string) (PendingAuth, error)
	DeleteState(ctx context.Context, state string) error
}

// Store is the combined persistence surface backing the broker.
type Store interface {
	CredentialStore
	StateStore

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
}
