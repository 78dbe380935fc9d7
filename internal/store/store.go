package store

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned by Load for a slot that was never saved.
var ErrNotFound = errors.New("save slot not found")

// Store keeps one opaque blob per save slot.
type Store interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, blob []byte) error
	Delete(ctx context.Context, slot string) error
	Close() error
}

// MemoryStore keeps saves in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.saves[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(b), nil
}

func (m *MemoryStore) Save(_ context.Context, slot string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[slot] = slices.Clone(blob)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saves, slot)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
