package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes generates a SHA-256 hex digest of b
func HashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// HashString generates a SHA-256 hex digest of a string
func HashString(s string) string {
	return HashBytes([]byte(s))
}
