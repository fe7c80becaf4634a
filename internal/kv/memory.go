package kv

import (
	"context"
	"sync"

	"skillexify/pkg/platform/sentinel"
)

// Memory is an in-memory Store. It keeps the default deployment and the test
// suite free of external services; it intentionally favors clarity over
// performance.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	return nil, sentinel.ErrNotFound
}

// Commit applies every write under one lock so readers never observe a
// partially applied batch.
func (m *Memory) Commit(_ context.Context, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		v := make([]byte, len(w.Value))
		copy(v, w.Value)
		m.data[w.Key] = v
	}
	return nil
}

// Len reports the number of stored keys. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
