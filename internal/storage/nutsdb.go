package storage

import (
	"errors"
	"fmt"

	"github.com/nutsdb/nutsdb"
)

const nutsBucket = "todo"

// NutsDB is an Adapter backed by an embedded NutsDB database.
type NutsDB struct {
	db *nutsdb.DB
}

// NewNutsDB opens (or creates) a NutsDB database in dir.
func NewNutsDB(dir string) (*NutsDB, error) {
	opts := nutsdb.DefaultOptions
	opts.Dir = dir
	db, err := nutsdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open nutsdb: %w", err)
	}

	if err := db.Update(func(tx *nutsdb.Tx) error {
		return tx.NewBucket(nutsdb.DataStructureBTree, nutsBucket)
	}); err != nil && !errors.Is(err, nutsdb.ErrBucketAlreadyExist) {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &NutsDB{db: db}, nil
}

// Read implements Adapter.
func (s *NutsDB) Read(key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(tx *nutsdb.Tx) error {
		v, err := tx.Get(nutsBucket, []byte(key))
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if errors.Is(err, nutsdb.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(value), true, nil
}

// Write implements Adapter.
func (s *NutsDB) Write(key, value string) error {
	err := s.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(nutsBucket, []byte(key), []byte(value), nutsdb.Persistent)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close implements Adapter.
func (s *NutsDB) Close() error {
	return s.db.Close()
}
