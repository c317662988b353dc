package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// hashToken creates a SHA256 hash of a bearer token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}

// tokensEqual compares hashes so the comparison time does not depend on
// the length of the presented token.
func tokensEqual(presented, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(hashToken(presented)), []byte(hashToken(expected))) == 1
}

// truncateHash returns a truncated hash for display/logging
func truncateHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
