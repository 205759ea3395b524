package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memoryStore is an in-process backend for tests and local development. It
// deep-copies documents through the shared codec so it round-trips values the
// same way the remote backends do.
type memoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]map[string]interface{}
}

// NewMemoryStore returns an empty in-memory document store.
func NewMemoryStore() Store {
	return &memoryStore{
		collections: make(map[string]map[uuid.UUID]map[string]interface{}),
	}
}

func (s *memoryStore) Create(_ context.Context, collection string, id uuid.UUID, doc interface{}) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}
	fields["id"] = id.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[uuid.UUID]map[string]interface{})
	}
	s.collections[collection][id] = fields
	return nil
}

func (s *memoryStore) Get(_ context.Context, collection string, id uuid.UUID, out interface{}) error {
	// Decode while still holding the lock; Update mutates documents in place.
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	return fromDocument(doc, out)
}

func (s *memoryStore) Update(_ context.Context, collection string, id uuid.UUID, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *memoryStore) List(_ context.Context, collection string, filters []Filter, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]map[string]interface{}, 0)
	for _, doc := range s.collections[collection] {
		if matchesFilters(doc, filters) {
			docs = append(docs, doc)
		}
	}
	return fromDocuments(docs, out)
}

func matchesFilters(doc map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, ok := doc[f.Field].(string)
		if !ok || value != f.Value {
			return false
		}
	}
	return true
}

func (s *memoryStore) Close(context.Context) error {
	return nil
}
