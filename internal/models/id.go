package models

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the length of every entity identifier in the system.
const IDLength = 24

// NewID returns a fresh 24-character hex identifier.
func NewID() string {
	buf := make([]byte, IDLength/2)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

// ValidID reports whether s has the expected identifier length.
func ValidID(s string) bool {
	return len(s) == IDLength
}
