package store

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process Backend, used by tests.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: map[string]string{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = value
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
