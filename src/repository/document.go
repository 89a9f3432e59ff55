package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type (
	// Document is one schemaless record of a collection. Fields are decoded
	// into the typed models with per-field defaults, see decode.go.
	Document struct {
		ID     string
		Fields map[string]any
	}

	// DocumentStore is the document-collection collaborator the repositories
	// run on. The mongo implementation lives in mongostore.go; MemoryStore
	// below backs the tests.
	DocumentStore interface {
		List(ctx context.Context, collection string) ([]Document, error)
		Get(ctx context.Context, collection, id string) (Document, bool, error)
		Add(ctx context.Context, collection string, fields map[string]any) (string, error)
		Set(ctx context.Context, collection, id string, fields map[string]any) error
		Update(ctx context.Context, collection, id string, fields map[string]any) error
		Delete(ctx context.Context, collection, id string) error
	}

	// MemoryStore keeps collections in process memory.
	MemoryStore struct {
		mu          sync.RWMutex
		collections map[string]map[string]map[string]any
	}
)

const (
	collListings    = "listings"
	collDealerships = "dealerships"
	collUsers       = "users"
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (m *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]Document, 0, len(m.collections[collection]))
	for id, fields := range m.collections[collection] {
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}
	return docs, nil
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.collections[collection][id]
	if !ok {
		return Document{}, false, nil
	}
	return Document{ID: id, Fields: copyFields(fields)}, true, nil
}

func (m *MemoryStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]map[string]any)
	}
	m.collections[collection][id] = copyFields(fields)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		existing[key] = value
	}
	return nil
}

// Delete removes the record if present. Deleting a missing record is not an
// error, matching the backing store's behavior.
func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return out
}
