// Package store is the client for the external document database. The rest
// of the system depends on exactly four primitives scoped to named
// collections: create, get-by-id, update, and list with an equality filter.
// Nothing above this package knows which backend is configured.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound signals that no document matched. It is a valid branch of the
// intake routing decision, distinct from transport failure.
var ErrNotFound = errors.New("document not found")

// Collections names the three collections the service reads and writes.
// Identifiers come from configuration so deployments can point at existing
// databases.
type Collections struct {
	Users        string `mapstructure:"users"`
	Patients     string `mapstructure:"patients"`
	Appointments string `mapstructure:"appointments"`
}

// DefaultCollections returns the conventional collection names.
func DefaultCollections() Collections {
	return Collections{
		Users:        "users",
		Patients:     "patients",
		Appointments: "appointments",
	}
}

// Filter is an equality constraint on a document field. Equality is the only
// filter capability the system depends on.
type Filter struct {
	Field string
	Value string
}

// Store exposes the four document primitives. Documents are opaque to the
// store; identifiers are assigned by the caller before Create.
type Store interface {
	Create(ctx context.Context, collection string, id uuid.UUID, doc interface{}) error
	Get(ctx context.Context, collection string, id uuid.UUID, out interface{}) error
	Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]interface{}) error
	List(ctx context.Context, collection string, filters []Filter, out interface{}) error
	Close(ctx context.Context) error
}

// toDocument flattens v into a field map using its JSON representation, which
// keeps field names identical across backends.
func toDocument(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// fromDocuments decodes a slice of field maps into out, a pointer to a slice.
func fromDocuments(docs []map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}

// fromDocument decodes a single field map into out.
func fromDocument(doc map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
