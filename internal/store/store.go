// Package store persists the in-memory collections as flat JSON files.
// Both collections are rewritten in full on every flush; there is no
// incremental or append persistence.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkoval/tripbook/backend/internal/domain"
)

const (
	usersFile = "users.json"
	tripsFile = "trips.json"
)

// FileStore reads and writes the users and trips collections under a single
// data directory. Writes are atomic: content goes to a temp file in the same
// directory which is then renamed over the target, so a crash mid-write can
// never leave a truncated file behind.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating the directory if
// it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.NewFileStore: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads both collections from disk.
// A missing or unparsable file yields an empty collection rather than a
// startup failure; the condition is logged and the file will be rewritten on
// the first mutation.
func (s *FileStore) Load() ([]domain.User, []domain.Trip, error) {
	var users []domain.User
	if err := s.readJSON(usersFile, &users); err != nil {
		slog.Warn("starting with empty users collection", "file", usersFile, "error", err)
		users = nil
	}

	var trips []domain.Trip
	if err := s.readJSON(tripsFile, &trips); err != nil {
		slog.Warn("starting with empty trips collection", "file", tripsFile, "error", err)
		trips = nil
	}

	return users, trips, nil
}

// Flush writes both collections to disk as complete snapshots.
// Both files are staged as temp files before either rename, so a write
// failure on one collection leaves the previous pair on disk instead of a
// users.json from one snapshot next to a trips.json from another.
// Callers must not report a mutation as successful until Flush returns nil.
func (s *FileStore) Flush(users []domain.User, trips []domain.Trip) error {
	if users == nil {
		users = []domain.User{}
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	usersTmp, err := s.stageJSON(usersFile, users)
	if err != nil {
		return fmt.Errorf("store.FileStore.Flush: %w", err)
	}
	defer os.Remove(usersTmp) // no-op after a successful rename

	tripsTmp, err := s.stageJSON(tripsFile, trips)
	if err != nil {
		return fmt.Errorf("store.FileStore.Flush: %w", err)
	}
	defer os.Remove(tripsTmp)

	if err := os.Rename(usersTmp, filepath.Join(s.dir, usersFile)); err != nil {
		return fmt.Errorf("store.FileStore.Flush: rename %s: %w", usersFile, err)
	}
	if err := os.Rename(tripsTmp, filepath.Join(s.dir, tripsFile)); err != nil {
		return fmt.Errorf("store.FileStore.Flush: rename %s: %w", tripsFile, err)
	}
	return nil
}

// readJSON decodes the named file into v. fs.ErrNotExist is passed through so
// Load can treat first-run and unreadable states the same way.
func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// stageJSON writes v to a synced temp file next to the named target and
// returns the temp path. The caller renames it into place once every staged
// file has been written.
func (s *FileStore) stageJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return tmpName, nil
}
