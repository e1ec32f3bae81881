package storage

import "sync"

// Memory is an in-process Adapter. Values are lost on Close.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty Memory adapter.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Read implements Adapter.
func (m *Memory) Read(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Write implements Adapter.
func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements Adapter.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	return nil
}
