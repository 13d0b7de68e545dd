// Package service contains the business logic for the Tripbook API.
// Services validate inputs, enforce ownership, mutate the repo collections,
// and flush a full snapshot to disk before reporting success. No HTTP and no
// file formats live here — services depend on small interfaces instead.
package service

import (
	"sync"

	"github.com/mkoval/tripbook/backend/internal/domain"
	"github.com/mkoval/tripbook/backend/internal/repo"
)

// Flusher persists full snapshots of both collections.
// *store.FileStore is the production implementation; tests substitute a stub
// to simulate disk failures.
type Flusher interface {
	Flush(users []domain.User, trips []domain.Trip) error
}

// DB bundles the in-memory collections with the flat-file flusher and the
// single mutation lock. Request handlers run on concurrent goroutines, so
// every mutating operation must hold mu for its whole check → mutate → flush
// sequence: a trip append reads a copy, modifies it, and writes the whole
// trip back, and without the lock two concurrent appends would read the same
// base copy and the later write would erase the earlier one. The lock also
// covers the duplicate-email check on registration and keeps a flush-failure
// rollback from wiping out a concurrent mutation.
//
// Reads only need the collections' own locks: they return consistent copies.
type DB struct {
	mu    sync.Mutex
	users *repo.Users
	trips *repo.Trips
	files Flusher
}

// NewDB builds the shared state handed to every service. Construct exactly
// one per process so all services serialize against the same lock.
func NewDB(users *repo.Users, trips *repo.Trips, files Flusher) *DB {
	return &DB{users: users, trips: trips, files: files}
}

// flush writes the current state of both collections to disk.
// Callers must hold mu.
func (db *DB) flush() error {
	return db.files.Flush(db.users.Snapshot(), db.trips.Snapshot())
}
