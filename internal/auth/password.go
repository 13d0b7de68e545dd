// Package auth implements credential hashing and bearer token issuance for
// the Tripbook API. It is the only package that touches bcrypt or JWT
// internals; services depend on it through small interfaces.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt hash of the plaintext password.
// bcrypt embeds the salt and cost in the hash, so Verify needs no extra state.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth.HashPassword: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// Returns a non-nil error on mismatch or on a malformed hash; callers treat
// both identically as invalid credentials.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
