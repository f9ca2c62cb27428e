package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a fixed-length hex name for an arbitrary cache key.
// Hashing tolerates any key characters (path separators, unicode, length)
// so keys can be used directly as file names or remote store keys.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
