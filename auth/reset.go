package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// NewResetToken generates a random single-use reset token. The raw value is
// what the user receives by email; only its hash ever touches the database.
func NewResetToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	// URL-safe base64 without padding
	raw = strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the hex-encoded SHA-256 of a raw token value.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
