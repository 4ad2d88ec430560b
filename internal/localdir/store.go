// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package localdir provides reference, in-process implementations of
// the directory package's three capability interfaces: a file-backed
// private key vault, and KV-backed company and group directories.
// These are what the CLI and the reference storage/group services
// (internal/storageservice, internal/groupservice) use; the engine
// itself never imports this package.
package localdir

import (
	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
)

// Store wraps luxfi/database's KV interface, the way the teacher's
// pkg/storage.Storage wraps it for ad-exchange records; here it backs
// the company and group directories instead.
type Store struct {
	db database.Database
}

// NewStore opens a store. kind is "memory" for an ephemeral in-process
// store (tests, demos) or "badger" for a durable on-disk store at
// path.
func NewStore(kind, path string) (*Store, error) {
	var db database.Database
	var err error

	switch kind {
	case "memory":
		db = memdb.New()
	default:
		db, err = badgerdb.New(path, nil, "", nil)
		if err != nil {
			return nil, err
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Put(key, value []byte) error       { return s.db.Put(key, value) }
func (s *Store) Get(key []byte) ([]byte, error)     { return s.db.Get(key) }
func (s *Store) Has(key []byte) (bool, error)       { return s.db.Has(key) }
func (s *Store) Delete(key []byte) error            { return s.db.Delete(key) }
func (s *Store) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return s.db.NewIteratorWithPrefix(prefix)
}
func (s *Store) Close() error { return s.db.Close() }
