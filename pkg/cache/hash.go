package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey returns prefix:sha256(parts joined by NUL).
func hashKey(prefix string, parts ...string) string {
	return prefix + ":" + Hash([]byte(strings.Join(parts, "\x00")))
}

// Hash computes a SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
