package repo

import (
	"fmt"
	"sync"

	"github.com/mkoval/tripbook/backend/internal/domain"
)

// Trips is the in-memory trip collection.
// Returned trips are deep copies, so callers can never mutate stored state
// except through Insert/Replace/Remove.
type Trips struct {
	mu    sync.RWMutex
	items []domain.Trip
}

// NewTrips builds a collection seeded with the loaded snapshot.
func NewTrips(seed []domain.Trip) *Trips {
	items := make([]domain.Trip, 0, len(seed))
	for _, t := range seed {
		items = append(items, t.Clone())
	}
	return &Trips{items: items}
}

// Insert appends a new trip.
func (c *Trips) Insert(t domain.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, t.Clone())
}

// FindByID returns the trip with the given id.
// Returns domain.ErrNotFound if no such trip exists.
func (c *Trips) FindByID(id string) (domain.Trip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.items {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.Trips.FindByID: %w", domain.ErrNotFound)
}

// FindByOwner returns all trips owned by userID in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (c *Trips) FindByOwner(userID string) []domain.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	owned := []domain.Trip{}
	for _, t := range c.items {
		if t.UserID == userID {
			owned = append(owned, t.Clone())
		}
	}
	return owned
}

// Replace overwrites the stored trip with the same id, keeping its position.
// Returns domain.ErrNotFound if no such trip exists.
func (c *Trips) Replace(t domain.Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == t.ID {
			c.items[i] = t.Clone()
			return nil
		}
	}
	return fmt.Errorf("repo.Trips.Replace: %w", domain.ErrNotFound)
}

// Remove deletes the trip with the given id and returns the removed record.
// Returns domain.ErrNotFound if no such trip exists.
func (c *Trips) Remove(id string) (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			removed := c.items[i]
			c.items = append(c.items[:i], c.items[i+1:]...)
			return removed, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.Trips.Remove: %w", domain.ErrNotFound)
}

// Snapshot returns a deep copy of the collection in insertion order.
func (c *Trips) Snapshot() []domain.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Trip, 0, len(c.items))
	for _, t := range c.items {
		out = append(out, t.Clone())
	}
	return out
}

// Restore replaces the collection contents with a previously taken snapshot.
func (c *Trips) Restore(snapshot []domain.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.Trip, 0, len(snapshot))
	for _, t := range snapshot {
		items = append(items, t.Clone())
	}
	c.items = items
}
