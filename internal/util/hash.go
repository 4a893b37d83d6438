package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentDigest returns the hex SHA-256 of b. Uploads are correlated in logs by
// digest, never by content.
func ContentDigest(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}
