package storage

import (
	"slices"
	"strings"
	"sync"
)

// MemoryDB is a DB held in a map. Used for tests and throwaway vaults.
type MemoryDB struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory returns an empty MemoryDB.
func NewMemory() *MemoryDB {
	return &MemoryDB{records: make(map[string][]byte)}
}

func (m *MemoryDB) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryDB) Put(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.records[key] = v
	m.mu.Unlock()
	return nil
}

func (m *MemoryDB) Delete(key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryDB) Has(key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.records[key]
	m.mu.RUnlock()
	return ok, nil
}

// Scan works on a snapshot taken under the read lock, so fn may write to m.
func (m *MemoryDB) Scan(prefix string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	snapshot := make(map[string][]byte)
	for k, v := range m.records {
		if strings.HasPrefix(k, prefix) {
			snapshot[k] = slices.Clone(v)
		}
	}
	m.mu.RUnlock()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := fn(k, snapshot[k]); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op; the data is dropped with the MemoryDB.
func (m *MemoryDB) Close() error {
	return nil
}
