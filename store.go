package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDocExists is returned by Create when the document key is taken.
	ErrDocExists = errors.New("document already exists")
	// ErrDocMissing is returned by Update when there is nothing to patch.
	ErrDocMissing = errors.New("document not found")
)

// DocumentStore is the persistence collaborator: a keyed document store with
// atomic per-document operations. There are no cross-document transactions;
// the lifecycles are written to stay correct without them.
type DocumentStore interface {
	// Get reads the document into dest and reports whether it exists.
	Get(ctx context.Context, collection, id string, dest any) (bool, error)
	// Set writes the full document, overwriting any previous version.
	Set(ctx context.Context, collection, id string, doc any) error
	// Create writes the document only if the key is absent, otherwise
	// returns ErrDocExists.
	Create(ctx context.Context, collection, id string, doc any) error
	// Update merges the patch into an existing document, or returns
	// ErrDocMissing.
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	// List calls each for every document in the collection, in key order.
	List(ctx context.Context, collection string, each func(raw []byte) error) error
}

// MemoryStore is an in-process DocumentStore holding raw JSON documents.
// Used in tests and as a zero-setup default.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

func storeKey(collection, id string) string {
	return collection + "/" + id
}

// Get reads a document into dest, reporting whether it exists.
func (m *MemoryStore) Get(_ context.Context, collection, id string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.docs[storeKey(collection, id)]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// Set writes the full document, overwriting any previous version.
func (m *MemoryStore) Set(_ context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	m.mu.Lock()
	m.docs[storeKey(collection, id)] = raw
	m.mu.Unlock()
	return nil
}

// Create writes the document only if the key is absent.
func (m *MemoryStore) Create(_ context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storeKey(collection, id)
	if _, ok := m.docs[key]; ok {
		return ErrDocExists
	}
	m.docs[key] = raw
	return nil
}

// Update merges the patch into an existing document.
func (m *MemoryStore) Update(_ context.Context, collection, id string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storeKey(collection, id)
	raw, ok := m.docs[key]
	if !ok {
		return ErrDocMissing
	}
	merged, err := mergePatch(raw, patch)
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", collection, id, err)
	}
	m.docs[key] = merged
	return nil
}

// List calls each for every document in the collection, in key order.
func (m *MemoryStore) List(_ context.Context, collection string, each func(raw []byte) error) error {
	prefix := collection + "/"
	m.mu.RLock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	rows := make([]json.RawMessage, len(keys))
	for i, k := range keys {
		rows[i] = m.docs[k]
	}
	m.mu.RUnlock()

	for _, raw := range rows {
		if err := each(raw); err != nil {
			return err
		}
	}
	return nil
}

// mergePatch applies a shallow field merge onto a raw JSON document.
func mergePatch(raw []byte, patch map[string]any) ([]byte, error) {
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range patch {
		doc[k] = v
	}
	return json.Marshal(doc)
}
