// Package session persists admin unlock markers. A marker is written when
// the access gate opens and deleted on logout; the dashboard route guard
// treats a missing marker as a locked gate, so revocation takes effect even
// while a signed token is still circulating.
package session

import (
	"context"
	"time"
)

// Store holds unlock markers keyed by session ID.
type Store interface {
	Put(ctx context.Context, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}
