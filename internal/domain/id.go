package domain

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for any entity.
// IDs are assigned exactly once, at creation, and never reassigned.
func NewID() string {
	return uuid.NewString()
}
