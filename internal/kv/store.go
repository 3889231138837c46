// Package kv adapts an embedded ordered key/value store (goleveldb) to the
// narrow interface the chain package needs: create-exclusive, open, get,
// and atomic durable batch writes. The interface shape and the
// "copy before returning" discipline are carried from the teacher's
// in-memory Store; the backing engine here is goleveldb instead of a map,
// and Destroy replaces a bare map clear.
package kv

import (
	"errors"
	"fmt"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// ErrAlreadyOpen is returned by Create/Open when the Store already holds
// an open handle, matching Storage::create/open's "DB already open" guard.
var ErrAlreadyOpen = errors.New("store already open")

// ErrNotOpen is returned by Get/Set/Close when no handle is open.
var ErrNotOpen = errors.New("store not open")

// ErrExists is returned by Create when the store directory already exists,
// matching options.error_if_exists in the original.
var ErrExists = errors.New("store already exists")

// Store wraps a single goleveldb database directory. It is not safe for
// concurrent use by multiple goroutines without external synchronization;
// callers (internal/chain.Chain) open, use, and close one per operation.
type Store struct {
	db   *leveldb.DB
	path string
}

// New returns a Store bound to path. The store is not yet open.
func New(path string) *Store {
	return &Store{path: path}
}

// Create opens a brand-new database at the store's path, failing if one
// already exists there. This matches Storage::create's
// create_if_missing=true, error_if_exists=true option pair.
func (s *Store) Create() error {
	if s.db != nil {
		return ErrAlreadyOpen
	}

	db, err := leveldb.OpenFile(s.path, &opt.Options{
		ErrorIfExist: true,
		Strict:       opt.StrictAll,
	})
	if err != nil {
		if errors.Is(err, storage.ErrExist) || errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create store %q: %w", s.path, ErrExists)
		}
		return fmt.Errorf("create store %q: %w", s.path, err)
	}

	s.db = db
	return nil
}

// Open opens an existing database at the store's path, matching
// Storage::open (paranoid_checks on, no compression).
func (s *Store) Open() error {
	if s.db != nil {
		return ErrAlreadyOpen
	}

	db, err := leveldb.OpenFile(s.path, &opt.Options{
		ErrorIfMissing: true,
		Strict:         opt.StrictAll,
		Compression:    opt.NoCompression,
	})
	if err != nil {
		return fmt.Errorf("open store %q: %w", s.path, err)
	}

	s.db = db
	return nil
}

// Close releases the underlying database handle, matching Storage::close.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrNotOpen
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get reads a single value, verifying checksums on the read path
// (Storage::get's readOptions.verify_checksums = true).
func (s *Store) Get(key []byte) ([]byte, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	v, err := s.db.Get(key, &opt.ReadOptions{Strict: opt.StrictBlockChecksum})
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("get %q: %w", key, leveldb.ErrNotFound)
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	// Return a copy: goleveldb may reuse the backing buffer on cache
	// eviction, and callers hold these bytes past the call.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// KeyValue is one pair in a SetBatch call.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// SetBatch writes every pair in pairs atomically and durably in a single
// write batch, matching Storage::set (WriteBatch + writeOptions.sync =
// true). This is the sole atomicity boundary in the storage layer: either
// every pair in the batch lands, or none do.
func (s *Store) SetBatch(pairs []KeyValue) error {
	if s.db == nil {
		return ErrNotOpen
	}

	batch := new(leveldb.Batch)
	for _, kv := range pairs {
		batch.Put(kv.Key, kv.Value)
	}

	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// Destroy removes the entire database directory, matching
// Storage::remove (DB::DestroyDB). It is safe to call on a path that
// does not exist; this makes chain removal idempotent (spec requires
// removeChain on an absent chain to report SUCCESS).
func Destroy(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("destroy store %q: %w", path, err)
	}
	return nil
}
