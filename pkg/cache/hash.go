package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a `prefix:sha256(parts)` cache key. The parts are the
// inputs that determine a layout or artifact (notation, format, style
// hash), JSON-encoded so ordering and types are stable across runs.
// The full 256-bit digest is kept: keys are content addresses and a
// truncated hash would make distinct structures collide.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// The pipeline hashes the serialized style this way so artifacts are
// keyed by the exact rendering options.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
