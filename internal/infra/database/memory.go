package database

import (
	"context"
	"sync"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

// MemoryKV is the in-process backend used by tests and local dev.
type MemoryKV struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.buckets[bucket]
	if !ok {
		return nil, entity.ErrNotFound
	}
	value, ok := b[key]
	if !ok {
		return nil, entity.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[bucket] = b
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	b[key] = stored
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, bucket, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		return false, nil
	}
	_, existed := b[key]
	delete(b, key)
	return existed, nil
}
