// Package repo holds the in-memory collections backing the API.
// Each resource has its own slice-backed collection guarded by a RWMutex so
// concurrent handlers see serialized access. All lookups are O(n) linear
// scans; listings always come back in insertion order.
package repo

import (
	"fmt"
	"sync"

	"github.com/mkoval/tripbook/backend/internal/domain"
)

// Users is the in-memory user collection.
type Users struct {
	mu    sync.RWMutex
	items []domain.User
}

// NewUsers builds a collection seeded with the loaded snapshot.
func NewUsers(seed []domain.User) *Users {
	return &Users{items: append([]domain.User(nil), seed...)}
}

// Insert appends a new user. The caller is responsible for uniqueness checks;
// Insert itself never fails.
func (c *Users) Insert(u domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, u)
}

// FindByID returns the user with the given id.
// Returns domain.ErrNotFound if no such user exists.
func (c *Users) FindByID(id string) (domain.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.items {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.Users.FindByID: %w", domain.ErrNotFound)
}

// FindByEmail returns the user with the given email (case-sensitive, matching
// how emails are stored). Returns domain.ErrNotFound if no such user exists.
func (c *Users) FindByEmail(email string) (domain.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.items {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.Users.FindByEmail: %w", domain.ErrNotFound)
}

// Snapshot returns a copy of the collection in insertion order.
// The copy is safe to hand to the persistence layer or to Restore later.
func (c *Users) Snapshot() []domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.User(nil), c.items...)
}

// Restore replaces the collection contents with a previously taken snapshot.
// Services call this to roll back a mutation whose disk flush failed.
func (c *Users) Restore(snapshot []domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]domain.User(nil), snapshot...)
}
