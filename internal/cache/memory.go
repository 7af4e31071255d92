package cache

import (
	"sync"

	"StockBoard/internal/model"
)

// MemoryStore is a mutex-guarded in-process map. The default backend.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]model.PriceSeries
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]model.PriceSeries)}
}

func (m *MemoryStore) Get(key Key) (model.PriceSeries, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.entries[key]
	return s, ok, nil
}

func (m *MemoryStore) Put(key Key, series model.PriceSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = series
	return nil
}

func (m *MemoryStore) Close() error { return nil }
