package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex-encoded SHA-256 digest of data.
//
// Backends that have no native change token use it as the file ETag:
// equal content yields an equal ETag, which is all the structure diff needs.
//
// Example usage:
//
//	etag := utils.ContentHash([]byte(`[{"id":"a"}]`))
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
