// Package testutil provides testing utilities.
package testutil

import (
	"sync"
)

// FakeAdapter is an in-memory storage.Adapter for testing.
// It records every write so tests can assert on persistence.
type FakeAdapter struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
	closed bool

	// Error injection for testing
	ReadErr  error
	WriteErr error
	CloseErr error
}

// NewFakeAdapter creates an empty FakeAdapter.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{values: make(map[string]string)}
}

// Seed stores value under key without counting it as a write.
func (f *FakeAdapter) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the raw value under key.
func (f *FakeAdapter) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Writes returns the number of Write calls, including failed ones.
func (f *FakeAdapter) Writes() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writes
}

// Closed reports whether Close was called.
func (f *FakeAdapter) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Read implements storage.Adapter.
func (f *FakeAdapter) Read(key string) (string, bool, error) {
	if f.ReadErr != nil {
		return "", false, f.ReadErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Write implements storage.Adapter.
func (f *FakeAdapter) Write(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.values[key] = value
	return nil
}

// Close implements storage.Adapter.
func (f *FakeAdapter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}
