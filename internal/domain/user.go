// Package domain contains the core data types for the Tripbook application.
// This package has zero external dependencies beyond id generation and is
// imported by every other internal package (store, repo, service, handler).
package domain

import "time"

// User represents a registered account.
// PasswordHash is a bcrypt hash; the plaintext password is never stored.
// The json tags match the persisted flat-file format — handlers must map a
// User through handler.UserResponse before returning it, so the hash never
// leaves the process.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
