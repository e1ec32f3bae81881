// Package storage provides the key-value persistence adapters used by the
// task store.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendNutsDB = "nutsdb"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Adapter is a string key-value store.
// Every Write replaces the whole value stored under key.
type Adapter interface {
	// Read returns the value stored under key.
	// ok is false if the key has never been written.
	Read(key string) (value string, ok bool, err error)

	// Write stores value under key, replacing any previous value.
	Write(key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and locates a backend.
type Options struct {
	// Backend is one of BackendNutsDB, BackendSQLite, BackendMemory.
	Backend string

	// Path is the database directory (nutsdb) or file (sqlite).
	// Ignored by the memory backend.
	Path string
}

// Open creates the adapter described by opts.
func Open(opts Options) (Adapter, error) {
	switch opts.Backend {
	case BackendNutsDB:
		if err := os.MkdirAll(opts.Path, 0700); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		return NewNutsDB(opts.Path)
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		return NewSQLite(opts.Path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
