package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data. Tree and layout documents are
// hashed in their canonical JSON form, so equal content gives equal keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey joins a key-space prefix with the digest of the JSON-encoded
// parts, e.g. "layout:3f2a…".
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Key parts are plain option structs; fall back to their printed form.
		data = []byte(fmt.Sprint(parts...))
	}
	return prefix + ":" + Hash(data)
}
