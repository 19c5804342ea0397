// Package credential implements the password hashing scheme used for
// student accounts. A stored credential is the string
// "<hash_hex>:<salt_hex>" where salt is the first 16 hex characters of
// SHA-256(password) and hash is SHA-256(salt + password).
//
// The salt is derived from the password itself rather than generated
// randomly, so two accounts with the same password store the same
// credential. This is a known weakness of the scheme; it is kept as-is
// because the encoded form is part of the on-disk store format and
// changing it would invalidate existing store files.
package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	saltLength = 16
	separator  = ":"
)

// ErrMalformedCredential indicates a stored credential that cannot be
// split into hash and salt. This is a corruption condition, distinct
// from a password that simply fails to verify.
var ErrMalformedCredential = errors.New("malformed stored credential")

// Hash derives a storable credential from a plaintext password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	salt := hex.EncodeToString(sum[:])[:saltLength]
	return digest(salt+password) + separator + salt
}

// Verify checks a candidate password against a stored credential.
func Verify(stored, candidate string) (bool, error) {
	hash, salt, found := strings.Cut(stored, separator)
	if !found {
		return false, ErrMalformedCredential
	}
	return hash == digest(salt+candidate), nil
}

func digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
