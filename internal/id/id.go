// Package id generates the document identifiers used across the store.
package id

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// New returns a short, URL-safe identifier: the Base58 form of a random UUID.
func New() string {
	u := uuid.New()
	return base58.Encode(u[:])
}

// NewWithPrefix returns New() prefixed with the given resource tag, e.g. "mbr_".
func NewWithPrefix(prefix string) string {
	return prefix + New()
}

// Secret creates a random secret encoded as Base58(SHA256(random_bytes)).
// Used for signing keys handed out by the admin CLI.
func Secret() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	hash := sha256.Sum256(randomBytes)
	return base58.Encode(hash[:]), nil
}

// Valid reports whether s decodes as a Base58 identifier produced by New.
func Valid(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == len(uuid.UUID{})
}
