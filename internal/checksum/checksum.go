// Package checksum fingerprints article content. The digest doubles as the
// If-Match validator on article updates and as the ETag of snapshot exports,
// so it must stay stable for identical content across processes.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
