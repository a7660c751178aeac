package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const ResetTokenTTL = 15 * time.Minute

// GenerateResetToken creates a random password-reset token. The plaintext is
// delivered to the user out-of-band; only the hash and expiry are persisted.
func GenerateResetToken() (plaintext, hashed string, expiresAt time.Time, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), time.Now().Add(ResetTokenTTL), nil
}

// HashResetToken recomputes the stored one-way hash for a plaintext reset
// token so it can be matched against the persisted value.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
