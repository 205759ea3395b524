package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns an in-process marker store. Markers do not survive
// a restart, which matches the original single-browser semantics.
func NewMemoryStore(cleanupInterval time.Duration) Store {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	return &memoryStore{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (s *memoryStore) Put(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.cache.Set(sessionID, struct{}{}, ttl)
	return nil
}

func (s *memoryStore) Exists(_ context.Context, sessionID string) (bool, error) {
	_, found := s.cache.Get(sessionID)
	return found, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
