// -----------------------------------------------------------------------------
// Token Generation Utility
// -----------------------------------------------------------------------------
// Cryptographically secure random token generation. Used for payment
// transaction references, idempotency suffixes and voucher codes.
// -----------------------------------------------------------------------------

package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// GenerateSecureToken generates a random token of the given byte length,
// base64 URL-encoded so it is safe to embed in URLs and JSON.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}

	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(bytes), nil
}

// MustGenerateSecureToken is like GenerateSecureToken but panics on error.
// crypto/rand failing means the host is broken; treat it as fatal.
func MustGenerateSecureToken(length int) string {
	token, err := GenerateSecureToken(length)
	if err != nil {
		panic(fmt.Sprintf("failed to generate secure token: %v", err))
	}
	return token
}

// GenerateSecureTokenHex is the hex-encoded variant. Hex produces a longer
// string (2 characters per byte) but avoids base64 padding characters.
func GenerateSecureTokenHex(length int) (string, error) {
	if length <= 0 {
		length = 32
	}

	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
